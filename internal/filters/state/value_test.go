package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestValue_Active(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"unset", Value{}, false},
		{"empty text", Text(""), false},
		{"text", Text("Operativa"), true},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"empty range", RangeOf(nil, nil), false},
		{"min only", RangeOf(ptr(2000), nil), true},
		{"max only", RangeOf(nil, ptr(0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Active())
		})
	}
}

func TestValue_RangeIsCopied(t *testing.T) {
	min := 1990.0
	v := RangeOf(&min, nil)
	min = 3000

	require.NotNil(t, v.Range().Min)
	assert.Equal(t, 1990.0, *v.Range().Min)

	r := v.Range()
	*r.Min = 1
	assert.Equal(t, 1990.0, *v.Range().Min)
}

func TestValue_WithBounds(t *testing.T) {
	v := Value{}.WithMin(ptr(10)).WithMax(ptr(20))

	assert.Equal(t, RangeValue, v.Kind())
	assert.True(t, v.Equal(RangeOf(ptr(10), ptr(20))))
	assert.False(t, v.Equal(RangeOf(ptr(10), nil)))
	assert.Equal(t, "10–20", v.String())
	assert.Equal(t, "…–20", v.WithMin(nil).String())
}

func TestValue_JSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		json string
	}{
		{"unset", Value{}, `null`},
		{"text", Text("Tractor"), `"Tractor"`},
		{"bool", Bool(true), `true`},
		{"range", RangeOf(ptr(2010), nil), `{"min":2010,"max":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))

			var back Value
			require.NoError(t, json.Unmarshal(data, &back))
			assert.True(t, tt.v.Equal(back), "got %v", back)
		})
	}
}

func TestValue_UnmarshalRejectsNumbers(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`42`), &v))
}
