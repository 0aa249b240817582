package state

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	Unset ValueKind = iota
	TextValue
	BoolValue
	RangeValue
)

// Range is a numeric interval; either bound may be open. No ordering check is made.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Value is the current value of one filter field.
// The zero Value is unset.
type Value struct {
	kind ValueKind
	text string
	flag bool
	rng  Range
}

// Text holds select, text-suggest and date values (dates as ISO yyyy-mm-dd).
func Text(s string) Value { return Value{kind: TextValue, text: s} }

// Bool holds checkbox values.
func Bool(b bool) Value { return Value{kind: BoolValue, flag: b} }

// RangeOf holds range values; bounds are copied.
func RangeOf(min, max *float64) Value {
	return Value{kind: RangeValue, rng: Range{Min: copyFloat(min), Max: copyFloat(max)}}
}

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// Text returns the string value, or "" for other variants.
func (v Value) Text() string { return v.text }

// Bool returns the checkbox value, or false for other variants.
func (v Value) Bool() bool { return v.flag }

// Range returns a copy of the range bounds.
func (v Value) Range() Range {
	return Range{Min: copyFloat(v.rng.Min), Max: copyFloat(v.rng.Max)}
}

// WithMin returns a range value with the lower bound replaced.
func (v Value) WithMin(min *float64) Value {
	r := v.Range()
	return RangeOf(min, r.Max)
}

// WithMax returns a range value with the upper bound replaced.
func (v Value) WithMax(max *float64) Value {
	r := v.Range()
	return RangeOf(r.Min, max)
}

// Active reports whether the value counts as an applied filter:
// unset, empty text and false are inactive; a range is active once a bound is set.
func (v Value) Active() bool {
	switch v.kind {
	case TextValue:
		return v.text != ""
	case BoolValue:
		return v.flag
	case RangeValue:
		return v.rng.Min != nil || v.rng.Max != nil
	}
	return false
}

// Equal compares two values by content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case TextValue:
		return v.text == o.text
	case BoolValue:
		return v.flag == o.flag
	case RangeValue:
		return floatEq(v.rng.Min, o.rng.Min) && floatEq(v.rng.Max, o.rng.Max)
	}
	return true
}

func (v Value) clone() Value {
	if v.kind == RangeValue {
		return RangeOf(v.rng.Min, v.rng.Max)
	}
	return v
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case TextValue:
		return v.text
	case BoolValue:
		if v.flag {
			return "sí"
		}
		return "no"
	case RangeValue:
		return fmt.Sprintf("%s–%s", bound(v.rng.Min), bound(v.rng.Max))
	}
	return ""
}

// MarshalJSON encodes as null, a string, a bool or {"min":..,"max":..}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case TextValue:
		return json.Marshal(v.text)
	case BoolValue:
		return json.Marshal(v.flag)
	case RangeValue:
		return json.Marshal(v.rng)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes the forms produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case '{':
		var r Range
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		*v = RangeOf(r.Min, r.Max)
	default:
		return fmt.Errorf("unsupported filter value %s", data)
	}
	return nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func floatEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func bound(f *float64) string {
	if f == nil {
		return "…"
	}
	return fmt.Sprintf("%g", *f)
}
