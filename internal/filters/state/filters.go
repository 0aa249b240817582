package state

import (
	"encoding/json"
	"fmt"
	"strings"

	"agrofleet/internal/filters/registry"
)

// Filters is an immutable-by-convention snapshot of field values plus the search term.
// Controllers hand out clones, never their own maps.
type Filters struct {
	Values map[string]Value
	Search string
}

// Get returns the value for key (unset when absent).
func (f Filters) Get(key string) Value {
	return f.Values[key]
}

// Clone returns a deep copy.
func (f Filters) Clone() Filters {
	return Filters{Values: cloneValues(f.Values), Search: f.Search}
}

// Count returns the number of active values plus one for a search term that
// is not blank.
func (f Filters) Count() int {
	n := countActive(f.Values)
	if strings.TrimSpace(f.Search) != "" {
		n++
	}
	return n
}

// IsEmpty reports whether nothing is filtered.
func (f Filters) IsEmpty() bool {
	return f.Count() == 0
}

// Keys returns the field keys present in the snapshot.
func (f Filters) Keys() []string {
	keys := make([]string, 0, len(f.Values))
	for k := range f.Values {
		keys = append(keys, k)
	}
	return keys
}

// MarshalJSON encodes a flat object: field keys plus "search" when set.
func (f Filters) MarshalJSON() ([]byte, error) {
	out := make(map[string]Value, len(f.Values)+1)
	for k, v := range f.Values {
		out[k] = v
	}
	if f.Search != "" {
		out[registry.SearchKey] = Text(f.Search)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat object form.
func (f *Filters) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode filters: %w", err)
	}

	result := Filters{Values: make(map[string]Value, len(raw))}
	for k, v := range raw {
		if k == registry.SearchKey {
			if v.Kind() != TextValue && v.Kind() != Unset {
				return fmt.Errorf("decode filters: search must be a string")
			}
			result.Search = v.Text()
			continue
		}
		result.Values[k] = v
	}
	*f = result
	return nil
}

// Prune returns a copy holding only keys that belong to fields.
// The second result reports whether anything was dropped.
func (f Filters) Prune(fields []registry.FieldSpec) (Filters, bool) {
	known := keySet(fields)
	out := Filters{Values: make(map[string]Value, len(f.Values)), Search: f.Search}
	dropped := false
	for k, v := range f.Values {
		if _, ok := known[k]; !ok {
			dropped = true
			continue
		}
		out.Values[k] = v.clone()
	}
	return out, dropped
}

func cloneValues(src map[string]Value) map[string]Value {
	out := make(map[string]Value, len(src))
	for k, v := range src {
		out[k] = v.clone()
	}
	return out
}

func countActive(values map[string]Value) int {
	n := 0
	for _, v := range values {
		if v.Active() {
			n++
		}
	}
	return n
}

func keySet(fields []registry.FieldSpec) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f.Key] = struct{}{}
	}
	return set
}
