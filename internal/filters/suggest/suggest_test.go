package suggest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"agrofleet/internal/filters/registry"
)

var marcaField = registry.FieldSpec{Key: "marca", Label: "Marca", Kind: registry.KindTextSuggest}

func TestSuggest_FirstSeenOrderCaseInsensitive(t *testing.T) {
	records := []registry.Record{
		{"marca": "John Deere"},
		{"marca": "Case IH"},
		{"marca": "Johnson"},
	}

	got := Suggest(marcaField, "John", records)
	if diff := cmp.Diff([]string{"John Deere", "Johnson"}, got); diff != "" {
		t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
	}

	got = Suggest(marcaField, "jOhN", records)
	if diff := cmp.Diff([]string{"John Deere", "Johnson"}, got); diff != "" {
		t.Errorf("case-insensitive Suggest() mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggest_EmptyInputYieldsNothing(t *testing.T) {
	records := []registry.Record{{"marca": "Valtra"}, {"marca": "Massey Ferguson"}}

	got := Suggest(marcaField, "", records)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_DegradesOnMissingData(t *testing.T) {
	tests := []struct {
		name    string
		records []registry.Record
	}{
		{"nil records", nil},
		{"empty records", []registry.Record{}},
		{"nil record", []registry.Record{nil}},
		{"missing key", []registry.Record{{"modelo": "6110J"}}},
		{"null and empty values", []registry.Record{{"marca": nil}, {"marca": ""}, {"marca": (*string)(nil)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			assert.NotPanics(t, func() { got = Suggest(marcaField, "a", tt.records) })
			assert.Empty(t, got)
		})
	}
}

func TestSuggest_DedupIsCaseSensitive(t *testing.T) {
	records := []registry.Record{
		{"marca": "Fiat"},
		{"marca": "FIAT"},
		{"marca": "Fiat"},
	}

	assert.Equal(t, []string{"Fiat", "FIAT"}, Suggest(marcaField, "fi", records))
}

func TestSuggest_CappedAndContainsInput(t *testing.T) {
	var records []registry.Record
	for i := 0; i < 30; i++ {
		records = append(records, registry.Record{"marca": fmt.Sprintf("Marca %02d", i)})
	}

	for _, input := range []string{"a", "MARCA", "1", "rca 2", "zz"} {
		got := Suggest(marcaField, input, records)
		assert.LessOrEqual(t, len(got), DefaultLimit, "input %q", input)
		for _, s := range got {
			assert.Contains(t, strings.ToLower(s), strings.ToLower(input))
		}
	}

	assert.Len(t, New(3).Suggest(marcaField, "marca", records), 3)
	assert.Len(t, New(0).Suggest(marcaField, "marca", records), DefaultLimit)
}

func TestSuggest_OnlyTextSuggestFields(t *testing.T) {
	records := []registry.Record{{"tipo": "Tractor"}}
	tipo := registry.FieldSpec{Key: "tipo", Kind: registry.KindSelect}

	assert.Empty(t, Suggest(tipo, "Tra", records))
}

func TestSuggest_UsesTargetKey(t *testing.T) {
	field := registry.FieldSpec{Key: "maquina", Target: "maquinaria", Kind: registry.KindTextSuggest}
	records := []registry.Record{{"maquinaria": "Cosechadora S680"}, {"maquina": "ignored"}}

	assert.Equal(t, []string{"Cosechadora S680"}, Suggest(field, "s6", records))
}

func TestSuggest_CustomSource(t *testing.T) {
	field := marcaField
	field.SuggestionSource = func(input string, records []registry.Record) []string {
		return []string{"New Holland", "Deutz", "New Holland T7"}
	}

	assert.Equal(t, []string{"New Holland", "New Holland T7"}, Suggest(field, "new", nil))
}

func TestDistinct_NonStringValues(t *testing.T) {
	records := []registry.Record{{"anio": 2019}, {"anio": 2020}, {"anio": 2019}}

	assert.Equal(t, []string{"2019", "2020"}, Distinct(records, "anio"))
}
