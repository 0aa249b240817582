package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrofleet/internal/filters/registry"
)

func TestFilters_Count(t *testing.T) {
	f := Filters{
		Values: map[string]Value{
			"estado":     Text("Operativa"),
			"marca":      Text(""),
			"enGarantia": Bool(false),
			"anio":       RangeOf(ptr(2015), nil),
		},
		Search: "deere",
	}

	assert.Equal(t, 3, f.Count())
	assert.False(t, f.IsEmpty())
	assert.True(t, Filters{}.IsEmpty())
}

func TestFilters_BlankSearchIsNotCounted(t *testing.T) {
	f := Filters{Search: "  \t"}

	assert.Equal(t, 0, f.Count())
	assert.True(t, f.IsEmpty())

	f.Values = map[string]Value{"estado": Text("Operativa")}
	assert.Equal(t, 1, f.Count())
}

func TestFilters_CloneIsDeep(t *testing.T) {
	f := Filters{Values: map[string]Value{"anio": RangeOf(ptr(2000), ptr(2020))}}
	c := f.Clone()

	c.Values["anio"] = RangeOf(nil, nil)
	c.Values["estado"] = Text("Operativa")

	assert.True(t, f.Get("anio").Equal(RangeOf(ptr(2000), ptr(2020))))
	assert.Equal(t, Unset, f.Get("estado").Kind())
}

func TestFilters_JSONRoundTrip(t *testing.T) {
	f := Filters{
		Values: map[string]Value{
			"estado":     Text("Operativa"),
			"enGarantia": Bool(true),
			"horas":      RangeOf(nil, ptr(5000)),
		},
		Search: "6110",
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"estado":"Operativa","enGarantia":true,"horas":{"min":null,"max":5000},"search":"6110"}`, string(data))

	var back Filters
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "6110", back.Search)
	assert.Len(t, back.Values, 3)
	assert.True(t, back.Get("horas").Equal(f.Get("horas")))
}

func TestFilters_EmptyMarshalsToObject(t *testing.T) {
	data, err := json.Marshal(Filters{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestFilters_UnmarshalRejectsNonStringSearch(t *testing.T) {
	var f Filters
	assert.Error(t, json.Unmarshal([]byte(`{"search":true}`), &f))
}

func TestFilters_Prune(t *testing.T) {
	fields := []registry.FieldSpec{{Key: "estado"}, {Key: "marca"}}
	f := Filters{
		Values: map[string]Value{"estado": Text("Operativa"), "rubro": Text("Semillas")},
		Search: "x",
	}

	pruned, dropped := f.Prune(fields)
	assert.True(t, dropped)
	assert.Equal(t, []string{"estado"}, pruned.Keys())
	assert.Equal(t, "x", pruned.Search)

	_, dropped = pruned.Prune(fields)
	assert.False(t, dropped)
}
