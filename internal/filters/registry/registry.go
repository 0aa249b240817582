// Package registry holds the declarative filter configuration of every list section.
//
// A section (maquinarias, repuestos, ...) owns an ordered set of FieldSpec values
// describing which record attributes can be filtered and with what widget.
// The registry is built once at startup and only read afterwards.
package registry

import (
	"fmt"

	"agrofleet/internal/domain/filter"
)

// Kind is the widget/semantics of a filter field.
type Kind string

const (
	KindSelect      Kind = "select"
	KindTextSuggest Kind = "text-suggest"
	KindCheckbox    Kind = "checkbox"
	KindDate        Kind = "date"
	KindRange       Kind = "range"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSelect, KindTextSuggest, KindCheckbox, KindDate, KindRange:
		return true
	}
	return false
}

// SearchKey is reserved for the free-text search term in committed filters.
const SearchKey = "search"

// Record is a plain entity record as read by filters and suggestions.
// Keys are the JSON field names of the entity.
type Record map[string]any

// SuggestionSource replaces default value extraction for a text-suggest field.
type SuggestionSource func(input string, records []Record) []string

// FieldSpec describes one filterable field of a section.
type FieldSpec struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"kind"`
	Options []string `json:"options,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`

	// Target is the record key the field reads; empty means Key.
	Target string `json:"target,omitempty"`

	// Operator overrides the comparison used when the field is turned into a query.
	Operator filter.ComparisonType `json:"operator,omitempty"`

	SuggestionSource SuggestionSource `json:"-"`
}

// TargetKey returns the record key this field reads and filters on.
func (f FieldSpec) TargetKey() string {
	if f.Target != "" {
		return f.Target
	}
	return f.Key
}

// SectionSpec groups the fields of one section.
type SectionSpec struct {
	Name  string `json:"name"`
	Label string `json:"label"`

	// SearchKeys are the record keys scanned by the free-text search box.
	SearchKeys []string    `json:"searchKeys"`
	Fields     []FieldSpec `json:"fields"`
}

// Registry stores section definitions.
type Registry struct {
	sections map[string]SectionSpec
	order    []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		sections: make(map[string]SectionSpec),
	}
}

// Register adds a section. Field keys must be unique within the section
// and may not use the reserved search key.
func (r *Registry) Register(spec SectionSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("section name is required")
	}
	if _, exists := r.sections[spec.Name]; exists {
		return fmt.Errorf("section %q already registered", spec.Name)
	}

	seen := make(map[string]struct{}, len(spec.Fields))
	for _, f := range spec.Fields {
		if f.Key == "" {
			return fmt.Errorf("section %q: field key is required", spec.Name)
		}
		if f.Key == SearchKey {
			return fmt.Errorf("section %q: field key %q is reserved", spec.Name, SearchKey)
		}
		if !f.Kind.Valid() {
			return fmt.Errorf("section %q: field %q has unknown kind %q", spec.Name, f.Key, f.Kind)
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("section %q: duplicate field key %q", spec.Name, f.Key)
		}
		seen[f.Key] = struct{}{}
	}

	r.sections[spec.Name] = cloneSection(spec)
	r.order = append(r.order, spec.Name)
	return nil
}

// MustRegister is Register for static configuration; it panics on error.
func (r *Registry) MustRegister(spec SectionSpec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// FieldsFor returns the ordered fields of a section.
// An unknown section yields an empty slice: callers render search only.
func (r *Registry) FieldsFor(section string) []FieldSpec {
	spec, ok := r.sections[section]
	if !ok {
		return []FieldSpec{}
	}
	return cloneFields(spec.Fields)
}

// Field looks up a single field of a section.
func (r *Registry) Field(section, key string) (FieldSpec, bool) {
	spec, ok := r.sections[section]
	if !ok {
		return FieldSpec{}, false
	}
	for _, f := range spec.Fields {
		if f.Key == key {
			return cloneField(f), true
		}
	}
	return FieldSpec{}, false
}

// Section returns the full section definition.
func (r *Registry) Section(name string) (SectionSpec, bool) {
	spec, ok := r.sections[name]
	if !ok {
		return SectionSpec{}, false
	}
	return cloneSection(spec), true
}

// Sections lists sections in registration order.
func (r *Registry) Sections() []SectionSpec {
	list := make([]SectionSpec, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, cloneSection(r.sections[name]))
	}
	return list
}

func cloneSection(s SectionSpec) SectionSpec {
	s.SearchKeys = append([]string(nil), s.SearchKeys...)
	s.Fields = cloneFields(s.Fields)
	return s
}

func cloneFields(fields []FieldSpec) []FieldSpec {
	out := make([]FieldSpec, len(fields))
	for i, f := range fields {
		out[i] = cloneField(f)
	}
	return out
}

func cloneField(f FieldSpec) FieldSpec {
	f.Options = append([]string(nil), f.Options...)
	if f.Min != nil {
		v := *f.Min
		f.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		f.Max = &v
	}
	return f
}
