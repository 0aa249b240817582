package filter

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Match reports whether record satisfies every item.
// Unknown operators never match.
func Match(record map[string]any, items []Item) bool {
	for _, item := range items {
		if !matchItem(record[item.Field], item) {
			return false
		}
	}
	return true
}

// MatchSearch reports whether any of the given keys contains term (case-insensitive).
// An empty term matches everything.
func MatchSearch(record map[string]any, keys []string, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, key := range keys {
		if s, ok := asString(record[key]); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func matchItem(got any, item Item) bool {
	switch item.Operator {
	case Equal:
		return equal(got, item.Value)
	case NotEqual:
		return !equal(got, item.Value)
	case Less:
		c, ok := compare(got, item.Value)
		return ok && c < 0
	case Greater:
		c, ok := compare(got, item.Value)
		return ok && c > 0
	case LessOrEqual:
		c, ok := compare(got, item.Value)
		return ok && c <= 0
	case GreaterOrEqual:
		c, ok := compare(got, item.Value)
		return ok && c >= 0
	case InList:
		return inList(got, item.Value)
	case NotInList:
		return !inList(got, item.Value)
	case Contains:
		return contains(got, item.Value)
	case NotContains:
		return !contains(got, item.Value)
	case IsNull:
		return isBlank(got)
	case IsNotNull:
		return !isBlank(got)
	}
	return false
}

func equal(a, b any) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
	}
	if isBlank(a) || isBlank(b) {
		return isBlank(a) && isBlank(b)
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// compare orders numbers numerically and everything else (ISO dates included) lexically.
func compare(a, b any) (int, bool) {
	if isBlank(a) || isBlank(b) {
		return 0, false
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			}
			return 0, true
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b)), true
}

func contains(got, want any) bool {
	g, ok := asString(got)
	if !ok {
		return false
	}
	w, ok := asString(want)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(g), strings.ToLower(w))
}

func inList(got, list any) bool {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return equal(got, list)
	}
	for i := 0; i < rv.Len(); i++ {
		if equal(got, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	}
	return fmt.Sprint(v), true
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		// numeric strings only; ISO dates fail here and fall back to lexical order
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

// Compare orders two record values for sorting. Blank values sort after everything else.
func Compare(a, b any) int {
	ab, bb := isBlank(a), isBlank(b)
	switch {
	case ab && bb:
		return 0
	case ab:
		return 1
	case bb:
		return -1
	}
	c, _ := compare(a, b)
	return c
}
