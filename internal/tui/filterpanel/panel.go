// Package filterpanel renders a filter state controller as a terminal dropdown.
//
// Closed, the panel is a trigger button with the active-filter badge. Open, it
// is a bordered box with the search box, one widget per field and the footer
// actions. All state changes go through the controller; the panel only owns
// widget state (focus, text inputs, computed suggestion lists).
//
// Mouse tracking is requested while the panel is open and released on close,
// so a press outside the box can dismiss it the way Esc does.
package filterpanel

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"agrofleet/internal/core/types"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/filters/state"
)

// DefaultBlurDelay must outlast one Update round so a suggestion chosen right
// after leaving the field is written before the list is hidden.
const DefaultBlurDelay = 150 * time.Millisecond

// SuggestFunc returns autocomplete candidates of a text-suggest field.
type SuggestFunc func(field registry.FieldSpec, input string) []string

// Config configures a panel.
type Config struct {
	BlurDelay time.Duration
	Suggest   SuggestFunc
}

type itemKind int

const (
	itemSearch itemKind = iota
	itemSelect
	itemSuggest
	itemCheckbox
	itemDate
	itemRangeMin
	itemRangeMax
	itemReset
	itemCancel
	itemApply
)

func (k itemKind) footer() bool { return k >= itemReset }

// item is one focusable element of the open panel.
type item struct {
	id    string
	kind  itemKind
	field registry.FieldSpec
}

// blurMsg hides the suggestion list of key once the blur delay has passed.
type blurMsg struct {
	key   string
	epoch int
}

// Model is the panel component. It is owned by the host's Update loop.
type Model struct {
	ctrl      *state.Controller
	suggest   SuggestFunc
	blurDelay time.Duration

	items  []item
	inputs map[string]textinput.Model
	focus  int

	lists  map[string][]string
	cursor int

	// epoch changes on every open and close; pending blur ticks of an older
	// epoch are dropped.
	epoch     int
	listeners int

	originX, originY int
}

// New creates a closed panel for ctrl.
func New(ctrl *state.Controller, cfg Config) *Model {
	delay := cfg.BlurDelay
	if delay <= 0 {
		delay = DefaultBlurDelay
	}
	m := &Model{
		ctrl:      ctrl,
		suggest:   cfg.Suggest,
		blurDelay: delay,
		lists:     map[string][]string{},
	}
	m.build()
	return m
}

// Controller returns the underlying state controller.
func (m *Model) Controller() *state.Controller { return m.ctrl }

// IsOpen reports whether the panel is open.
func (m *Model) IsOpen() bool { return m.ctrl.IsOpen() }

// MouseListeners is the number of active mouse subscriptions: 1 while open, 0 otherwise.
func (m *Model) MouseListeners() int { return m.listeners }

// SetOrigin places the top-left corner of the open panel on screen.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetSuggest replaces the suggestion source.
func (m *Model) SetSuggest(fn SuggestFunc) { m.suggest = fn }

// SetSection switches the controller to another section and rebuilds the widgets.
func (m *Model) SetSection(section string, fields []registry.FieldSpec) tea.Cmd {
	m.ctrl.SetSection(section, fields)
	m.build()
	if !m.ctrl.IsOpen() {
		return nil
	}
	m.syncInputs()
	return m.focusCurrent()
}

// Open opens the panel, seeding widgets from the committed filters, and
// enables mouse tracking. Opening an open panel does nothing.
func (m *Model) Open() tea.Cmd {
	if m.ctrl.IsOpen() {
		return nil
	}
	m.ctrl.Open()
	m.epoch++
	m.lists = map[string][]string{}
	m.cursor = 0
	m.focus = 0
	m.syncInputs()

	cmds := []tea.Cmd{m.focusCurrent()}
	if m.listeners == 0 {
		m.listeners = 1
		cmds = append(cmds, tea.EnableMouseCellMotion)
	}
	return tea.Batch(cmds...)
}

// Update handles keys, mouse presses and blur ticks.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(blurMsg); ok {
		m.handleBlur(msg)
		return m, nil
	}
	if !m.ctrl.IsOpen() {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m, m.click(msg.X, msg.Y)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// Cursor blink and other input-internal messages.
	cur := m.items[m.focus]
	if in, ok := m.inputs[cur.id]; ok {
		var cmd tea.Cmd
		in, cmd = in.Update(msg)
		m.inputs[cur.id] = in
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleBlur(msg blurMsg) {
	if !m.ctrl.IsOpen() || msg.epoch != m.epoch {
		return
	}
	if m.items[m.focus].id == msg.key {
		return
	}
	m.ctrl.HideSuggestions(msg.key)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	cur := m.items[m.focus]

	switch msg.String() {
	case "esc":
		m.ctrl.Cancel()
		return m.closed()

	case "ctrl+s":
		m.ctrl.Apply()
		return m.closed()

	case "tab":
		return m.moveFocus(1)

	case "shift+tab":
		return m.moveFocus(-1)

	case "down":
		if list := m.visibleList(cur); len(list) > 0 && m.cursor < len(list)-1 {
			m.cursor++
			return nil
		}
		return m.moveFocus(1)

	case "up":
		if list := m.visibleList(cur); len(list) > 0 && m.cursor > 0 {
			m.cursor--
			return nil
		}
		return m.moveFocus(-1)

	case "enter":
		switch cur.kind {
		case itemApply, itemCancel, itemReset:
			return m.press(cur.kind)
		case itemSuggest:
			if list := m.visibleList(cur); len(list) > 0 {
				m.choose(cur, list[m.cursor])
				return nil
			}
		}
		return m.moveFocus(1)

	case " ":
		if cur.kind == itemCheckbox {
			m.toggle(cur)
			return nil
		}

	case "left", "right":
		if cur.kind == itemSelect {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.cycle(cur, delta)
			return nil
		}
	}

	in, ok := m.inputs[cur.id]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[cur.id] = in
	m.commitInput(cur, in.Value())
	return cmd
}

// press runs a footer action.
func (m *Model) press(kind itemKind) tea.Cmd {
	switch kind {
	case itemApply:
		m.ctrl.Apply()
		return m.closed()
	case itemCancel:
		m.ctrl.Cancel()
		return m.closed()
	case itemReset:
		m.ctrl.Reset()
		m.lists = map[string][]string{}
		m.cursor = 0
		m.syncInputs()
	}
	return nil
}

// closed releases widget state after the controller closed.
func (m *Model) closed() tea.Cmd {
	m.epoch++
	for k, in := range m.inputs {
		in.Blur()
		m.inputs[k] = in
	}
	m.lists = map[string][]string{}
	m.cursor = 0

	if m.listeners == 0 {
		return nil
	}
	m.listeners = 0
	return tea.DisableMouse
}

func (m *Model) commitInput(it item, text string) {
	key := it.field.Key
	switch it.kind {
	case itemSearch:
		m.ctrl.SetSearch(text)
	case itemSuggest:
		m.ctrl.TypeInto(key, text)
		m.cursor = 0
		if m.suggest != nil && text != "" {
			m.lists[key] = m.suggest(it.field, text)
		} else {
			delete(m.lists, key)
		}
	case itemDate:
		m.ctrl.UpdateField(key, state.Text(strings.TrimSpace(text)))
	case itemRangeMin:
		m.ctrl.UpdateField(key, m.ctrl.Value(key).WithMin(parseBound(text)))
	case itemRangeMax:
		m.ctrl.UpdateField(key, m.ctrl.Value(key).WithMax(parseBound(text)))
	}
}

func (m *Model) choose(it item, value string) {
	m.ctrl.SelectSuggestion(it.field.Key, value)
	if in, ok := m.inputs[it.id]; ok {
		in.SetValue(value)
		in.CursorEnd()
		m.inputs[it.id] = in
	}
	delete(m.lists, it.field.Key)
	m.cursor = 0
}

func (m *Model) toggle(it item) {
	m.ctrl.UpdateField(it.field.Key, state.Bool(!m.ctrl.Value(it.field.Key).Bool()))
}

// cycle steps through the options of a select; the leading empty option means "all".
func (m *Model) cycle(it item, delta int) {
	options := append([]string{""}, it.field.Options...)
	idx := slices.Index(options, m.ctrl.Value(it.field.Key).Text())
	if idx < 0 {
		idx = 0
	}
	idx = (idx + delta + len(options)) % len(options)
	m.ctrl.UpdateField(it.field.Key, state.Text(options[idx]))
}

// visibleList returns the suggestions shown under it, if any.
func (m *Model) visibleList(it item) []string {
	if it.kind != itemSuggest || !m.ctrl.Suggestions(it.field.Key).Visible {
		return nil
	}
	return m.lists[it.field.Key]
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.items)
	return m.focusItem((m.focus + delta + n) % n)
}

// focusItem moves focus to items[i]. Leaving a text-suggest field with an open
// list schedules the delayed blur-close.
func (m *Model) focusItem(i int) tea.Cmd {
	if i == m.focus {
		return nil
	}
	prev := m.items[m.focus]
	m.focus = i
	m.cursor = 0

	cmds := []tea.Cmd{m.focusCurrent()}
	if prev.kind == itemSuggest && m.ctrl.Suggestions(prev.field.Key).Visible {
		cmds = append(cmds, m.scheduleBlur(prev.field.Key))
	}
	return tea.Batch(cmds...)
}

func (m *Model) scheduleBlur(key string) tea.Cmd {
	epoch := m.epoch
	return tea.Tick(m.blurDelay, func(time.Time) tea.Msg {
		return blurMsg{key: key, epoch: epoch}
	})
}

func (m *Model) focusCurrent() tea.Cmd {
	var cmd tea.Cmd
	cur := m.items[m.focus]
	for k, in := range m.inputs {
		if k == cur.id {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
		m.inputs[k] = in
	}
	return cmd
}

// build derives focusable items and text inputs from the controller's fields.
func (m *Model) build() {
	m.items = []item{{id: registry.SearchKey, kind: itemSearch, field: registry.FieldSpec{Key: registry.SearchKey, Label: "Buscar"}}}
	for _, f := range m.ctrl.Fields() {
		switch f.Kind {
		case registry.KindSelect:
			m.items = append(m.items, item{id: f.Key, kind: itemSelect, field: f})
		case registry.KindTextSuggest:
			m.items = append(m.items, item{id: f.Key, kind: itemSuggest, field: f})
		case registry.KindCheckbox:
			m.items = append(m.items, item{id: f.Key, kind: itemCheckbox, field: f})
		case registry.KindDate:
			m.items = append(m.items, item{id: f.Key, kind: itemDate, field: f})
		case registry.KindRange:
			m.items = append(m.items,
				item{id: f.Key + ".min", kind: itemRangeMin, field: f},
				item{id: f.Key + ".max", kind: itemRangeMax, field: f},
			)
		}
	}
	m.items = append(m.items,
		item{id: "reset", kind: itemReset},
		item{id: "cancel", kind: itemCancel},
		item{id: "apply", kind: itemApply},
	)

	m.inputs = map[string]textinput.Model{}
	for _, it := range m.items {
		switch it.kind {
		case itemSearch:
			m.inputs[it.id] = newInput("nombre, marca, código…")
		case itemSuggest:
			m.inputs[it.id] = newInput("escriba para buscar")
		case itemDate:
			m.inputs[it.id] = newInput(types.DateLayout)
		case itemRangeMin:
			m.inputs[it.id] = newInput(boundHint(it.field.Min, "mín"))
		case itemRangeMax:
			m.inputs[it.id] = newInput(boundHint(it.field.Max, "máx"))
		}
	}
	m.focus = 0
	m.cursor = 0
	m.lists = map[string][]string{}
}

// syncInputs copies draft values into the text inputs.
func (m *Model) syncInputs() {
	for _, it := range m.items {
		in, ok := m.inputs[it.id]
		if !ok {
			continue
		}
		switch it.kind {
		case itemSearch:
			in.SetValue(m.ctrl.Search())
		case itemSuggest, itemDate:
			in.SetValue(m.ctrl.Value(it.field.Key).Text())
		case itemRangeMin:
			in.SetValue(formatBound(m.ctrl.Value(it.field.Key).Range().Min))
		case itemRangeMax:
			in.SetValue(formatBound(m.ctrl.Value(it.field.Key).Range().Max))
		}
		m.inputs[it.id] = in
	}
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.Width = 26
	return in
}

// parseBound reads a range bound; blank or unparsable text clears it.
func parseBound(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := types.ParseLocalized(s)
	if err != nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func formatBound(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func boundHint(limit *float64, label string) string {
	if limit == nil {
		return label
	}
	return label + " " + formatBound(limit)
}
