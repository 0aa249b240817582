// Package state owns the draft/committed filter state machine behind a filter panel.
//
// Lifecycle:
//
//	Closed --Open--> Open --UpdateField/TypeInto/...--> Open
//	Open --Apply--> Closed   (commit draft, emit once)
//	Open --Cancel--> Closed  (discard draft, no emit)
//	any  --Reset--> same phase (clear draft and committed, emit {} immediately)
//
// The controller is owned by a single UI loop and is not safe for concurrent use.
package state

import (
	"agrofleet/internal/filters/registry"
)

// Phase is the panel phase.
type Phase uint8

const (
	Closed Phase = iota
	Open
)

func (p Phase) String() string {
	if p == Open {
		return "open"
	}
	return "closed"
}

// SuggestionState is the transient autocomplete state of one text field.
type SuggestionState struct {
	Visible   bool
	InputEcho string
}

// ChangeFunc receives each newly committed snapshot. Panics are not recovered.
type ChangeFunc func(Filters)

// Controller mediates open/apply/reset/cancel for one section.
type Controller struct {
	section string
	fields  []registry.FieldSpec

	phase     Phase
	committed Filters
	draft     map[string]Value
	search    string

	suggestions map[string]SuggestionState
	onChange    ChangeFunc
}

// NewController creates a closed controller with nothing committed.
func NewController(section string, fields []registry.FieldSpec, onChange ChangeFunc) *Controller {
	return &Controller{
		section:     section,
		fields:      append([]registry.FieldSpec(nil), fields...),
		committed:   Filters{Values: map[string]Value{}},
		draft:       map[string]Value{},
		suggestions: map[string]SuggestionState{},
		onChange:    onChange,
	}
}

// Section returns the active section name.
func (c *Controller) Section() string { return c.section }

// Fields returns the active section's fields.
func (c *Controller) Fields() []registry.FieldSpec {
	return append([]registry.FieldSpec(nil), c.fields...)
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// IsOpen reports whether a draft is being edited.
func (c *Controller) IsOpen() bool { return c.phase == Open }

// Open seeds the draft from a deep copy of the committed filters and search term.
// Opening an already open controller keeps the current draft.
func (c *Controller) Open() {
	if c.phase == Open {
		return
	}
	c.draft = cloneValues(c.committed.Values)
	c.search = c.committed.Search
	c.suggestions = map[string]SuggestionState{}
	c.phase = Open
}

// UpdateField sets draft[key]. No validation and no emit.
func (c *Controller) UpdateField(key string, v Value) {
	c.draft[key] = v.clone()
}

// SetSearch edits the draft search term.
func (c *Controller) SetSearch(s string) {
	c.search = s
}

// Search returns the draft search term while open, the committed one otherwise.
func (c *Controller) Search() string {
	if c.phase == Open {
		return c.search
	}
	return c.committed.Search
}

// Value returns the draft value while open, the committed one otherwise.
func (c *Controller) Value(key string) Value {
	if c.phase == Open {
		return c.draft[key].clone()
	}
	return c.committed.Values[key].clone()
}

// Draft returns a copy of the draft as a snapshot.
func (c *Controller) Draft() Filters {
	return Filters{Values: cloneValues(c.draft), Search: c.search}
}

// Committed returns a copy of the last applied snapshot.
func (c *Controller) Committed() Filters {
	return c.committed.Clone()
}

// Count is the badge number: draft values while open, committed ones while closed.
func (c *Controller) Count() int {
	if c.phase == Open {
		return c.Draft().Count()
	}
	return c.committed.Count()
}

// Apply commits {draft..., search}, closes, and emits exactly once.
// Keys that do not belong to the active section are dropped.
func (c *Controller) Apply() {
	next, _ := Filters{Values: c.draft, Search: c.search}.Prune(c.fields)
	c.committed = next
	c.closeDraft()
	c.emit()
}

// Reset clears draft, search and committed filters and emits {} right away.
// The phase is left unchanged.
func (c *Controller) Reset() {
	c.draft = map[string]Value{}
	c.search = ""
	c.suggestions = map[string]SuggestionState{}
	c.committed = Filters{Values: map[string]Value{}}
	c.emit()
}

// Cancel discards the draft without emitting.
func (c *Controller) Cancel() {
	if c.phase != Open {
		return
	}
	c.closeDraft()
}

// TypeInto records keyboard input for a text field: it updates the draft and
// shows suggestions while the text is non-empty.
func (c *Controller) TypeInto(key, text string) {
	c.draft[key] = Text(text)
	c.suggestions[key] = SuggestionState{Visible: text != "", InputEcho: text}
}

// SelectSuggestion writes the chosen value and hides the list.
func (c *Controller) SelectSuggestion(key, value string) {
	c.draft[key] = Text(value)
	c.suggestions[key] = SuggestionState{Visible: false, InputEcho: value}
}

// HideSuggestions closes the list of key; the draft value is untouched.
func (c *Controller) HideSuggestions(key string) {
	s, ok := c.suggestions[key]
	if !ok {
		return
	}
	s.Visible = false
	c.suggestions[key] = s
}

// Suggestions returns the suggestion state of key.
func (c *Controller) Suggestions(key string) SuggestionState {
	return c.suggestions[key]
}

// SetSection switches the active field set. Draft and committed keys that the
// new section does not define are dropped; if the committed snapshot changed,
// the pruned snapshot is emitted.
func (c *Controller) SetSection(section string, fields []registry.FieldSpec) {
	c.section = section
	c.fields = append([]registry.FieldSpec(nil), fields...)

	draft, _ := Filters{Values: c.draft}.Prune(c.fields)
	c.draft = draft.Values

	known := keySet(c.fields)
	for k := range c.suggestions {
		if _, ok := known[k]; !ok {
			delete(c.suggestions, k)
		}
	}

	committed, dropped := c.committed.Prune(c.fields)
	c.committed = committed
	if dropped {
		c.emit()
	}
}

func (c *Controller) closeDraft() {
	c.draft = map[string]Value{}
	c.search = ""
	c.suggestions = map[string]SuggestionState{}
	c.phase = Closed
}

func (c *Controller) emit() {
	if c.onChange != nil {
		c.onChange(c.committed.Clone())
	}
}
