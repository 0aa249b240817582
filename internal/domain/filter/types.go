// Package filter describes query conditions produced from committed filter panels.
package filter

// ComparisonType defines the kinds of comparison.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"        // Igual
	NotEqual       ComparisonType = "neq"       // Distinto
	Less           ComparisonType = "lt"        // Menor
	Greater        ComparisonType = "gt"        // Mayor
	LessOrEqual    ComparisonType = "lte"       // Menor o igual
	GreaterOrEqual ComparisonType = "gte"       // Mayor o igual
	InList         ComparisonType = "in"        // En la lista
	NotInList      ComparisonType = "nin"       // Fuera de la lista
	Contains       ComparisonType = "contains"  // Contiene (ILIKE %val%)
	NotContains    ComparisonType = "ncontains" // No contiene

	IsNull    ComparisonType = "null"     // Sin completar
	IsNotNull ComparisonType = "not_null" // Completado
)

// Item is a single filter condition.
// Field is the record key (camelCase JSON name); repositories map it to a column.
type Item struct {
	Field    string         `json:"field"`
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"`
}

// Valid reports whether the operator is one of the known comparisons.
func (c ComparisonType) Valid() bool {
	switch c {
	case Equal, NotEqual, Less, Greater, LessOrEqual, GreaterOrEqual,
		InList, NotInList, Contains, NotContains, IsNull, IsNotNull:
		return true
	}
	return false
}
