// Package suggest computes autocomplete candidates for text-suggest filter fields.
//
// Suggestions are recomputed from the caller's in-memory records on every call.
// There is no cache: record sets are expected to be small (tens to a few hundred
// rows) and this is not designed for large datasets.
package suggest

import (
	"fmt"
	"strings"

	"agrofleet/internal/filters/registry"
)

// DefaultLimit caps the number of suggestions returned.
const DefaultLimit = 8

// Engine computes suggestions with a configurable cap.
type Engine struct {
	Limit int
}

// New creates an engine; a non-positive limit means DefaultLimit.
func New(limit int) Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Engine{Limit: limit}
}

// Suggest uses DefaultLimit.
func Suggest(field registry.FieldSpec, input string, records []registry.Record) []string {
	return Engine{Limit: DefaultLimit}.Suggest(field, input, records)
}

// Suggest returns distinct record values of field that contain input
// (case-insensitive), in first-seen order, capped at e.Limit.
// An empty input, a non text-suggest field or no records yield an empty slice.
func (e Engine) Suggest(field registry.FieldSpec, input string, records []registry.Record) []string {
	if field.Kind != registry.KindTextSuggest || input == "" {
		return []string{}
	}

	limit := e.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var candidates []string
	if field.SuggestionSource != nil {
		candidates = field.SuggestionSource(input, records)
	} else {
		candidates = Distinct(records, field.TargetKey())
	}

	needle := strings.ToLower(input)
	out := make([]string, 0, limit)
	for _, c := range candidates {
		if !strings.Contains(strings.ToLower(c), needle) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Distinct extracts the non-empty values of key, deduplicated on the raw
// (case-sensitive) value, keeping first-seen order.
func Distinct(records []registry.Record, key string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, rec := range records {
		if rec == nil {
			continue
		}
		s, ok := stringValue(rec[key])
		if !ok || s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}
	return values
}

func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	case fmt.Stringer:
		return t.String(), true
	}
	return fmt.Sprint(v), true
}
