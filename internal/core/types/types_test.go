package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalized(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1250.50", "1250.5"},
		{"1.250,50", "1250.5"},
		{"1250,5", "1250.5"},
		{"$ 980", "980"},
		{"12.500", "12500"},
		{"1,250.75", "1250.75"},
		{"0,75", "0.75"},
		{"-3,5", "-3.5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocalized(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ParseLocalized("doce")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2021, time.March, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2021-03-15"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.True(t, back.IsZero())
	assert.Equal(t, "", back.String())

	assert.Error(t, json.Unmarshal([]byte(`"15/03/2021"`), &back))
}

func TestDate_PgtypeRoundTrip(t *testing.T) {
	d := NewDate(2019, time.November, 2)

	v, err := d.DateValue()
	require.NoError(t, err)
	assert.True(t, v.Valid)

	var back Date
	require.NoError(t, back.ScanDate(v))
	assert.Equal(t, "2019-11-02", back.String())

	require.NoError(t, back.ScanDate(pgtype.Date{}))
	assert.True(t, back.IsZero())
}
