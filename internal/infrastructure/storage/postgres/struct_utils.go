package postgres

import (
	"reflect"
	"strings"
	"sync"
)

// column describes one struct field mapped to a table column.
type column struct {
	name  string // "db" tag
	key   string // JSON field name, as used in records and filter items
	index []int  // path for reflect.Value.FieldByIndex (embedded structs included)
}

var columnCache sync.Map // map[reflect.Type][]column

// columnsOf returns the db-tagged fields of t (pointer types are dereferenced).
// Results are cached per type.
func columnsOf(t reflect.Type) []column {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]column)
	}

	var cols []column
	if t.Kind() == reflect.Struct {
		cols = collectColumns(t, nil)
	}
	columnCache.Store(t, cols)
	return cols
}

func collectColumns(t reflect.Type, prefix []int) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		// Embedded structs (entity.Base)
		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				cols = append(cols, collectColumns(ft, index)...)
			}
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}

		key, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if key == "" || key == "-" {
			key = tag
		}
		cols = append(cols, column{name: tag, key: key, index: index})
	}
	return cols
}

// ExtractDBColumns extracts all column names from struct "db" tags,
// embedded structs included, in declaration order.
//
// Usage:
//
//	columns := ExtractDBColumns[fleet.Machinery]()
//	// Returns: ["id", "version", "created_at", "updated_at", "nombre", ...]
func ExtractDBColumns[T any]() []string {
	cols := columnsOf(reflect.TypeOf((*T)(nil)).Elem())
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

// ColumnsByKey maps JSON field names to column names for T.
// Filter items and orderBy use record keys; repositories translate them with this map.
func ColumnsByKey[T any]() map[string]string {
	cols := columnsOf(reflect.TypeOf((*T)(nil)).Elem())
	out := make(map[string]string, len(cols))
	for _, c := range cols {
		out[c.key] = c.name
	}
	return out
}

// StructToMap converts a struct (or pointer to struct) to a column → value map.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	cols := columnsOf(rv.Type())
	res := make(map[string]any, len(cols))
	for _, c := range cols {
		res[c.name] = rv.FieldByIndex(c.index).Interface()
	}
	return res
}
