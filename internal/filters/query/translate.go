// Package query turns committed panel filters into storage-level filter items.
package query

import (
	"strings"

	"agrofleet/internal/core/types"
	"agrofleet/internal/domain/filter"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/filters/state"
)

// Translate converts the committed values of fields into filter items, in field order.
// Inactive values and keys without a matching field are skipped, and so are
// date values that are not yyyy-mm-dd.
// The search term is not translated; callers pass it separately.
func Translate(fields []registry.FieldSpec, f state.Filters) []filter.Item {
	items := make([]filter.Item, 0, len(fields))
	for _, field := range fields {
		v := f.Get(field.Key)
		if !v.Active() {
			continue
		}
		items = append(items, translateField(field, v)...)
	}
	return items
}

func translateField(field registry.FieldSpec, v state.Value) []filter.Item {
	target := field.TargetKey()

	switch field.Kind {
	case registry.KindSelect:
		if v.Kind() != state.TextValue {
			return nil
		}
		return []filter.Item{{Field: target, Operator: operator(field, filter.Equal), Value: v.Text()}}

	case registry.KindTextSuggest:
		if v.Kind() != state.TextValue {
			return nil
		}
		return []filter.Item{{Field: target, Operator: operator(field, filter.Contains), Value: v.Text()}}

	case registry.KindDate:
		if v.Kind() != state.TextValue {
			return nil
		}
		d, err := types.ParseDate(strings.TrimSpace(v.Text()))
		if err != nil {
			return nil
		}
		return []filter.Item{{Field: target, Operator: operator(field, filter.Equal), Value: d.String()}}

	case registry.KindCheckbox:
		if v.Kind() != state.BoolValue {
			return nil
		}
		return []filter.Item{{Field: target, Operator: filter.Equal, Value: true}}

	case registry.KindRange:
		if v.Kind() != state.RangeValue {
			return nil
		}
		r := v.Range()
		var items []filter.Item
		if r.Min != nil {
			items = append(items, filter.Item{Field: target, Operator: filter.GreaterOrEqual, Value: *r.Min})
		}
		if r.Max != nil {
			items = append(items, filter.Item{Field: target, Operator: filter.LessOrEqual, Value: *r.Max})
		}
		return items
	}
	return nil
}

func operator(field registry.FieldSpec, def filter.ComparisonType) filter.ComparisonType {
	if field.Operator != "" {
		return field.Operator
	}
	return def
}
