package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrofleet/internal/core/entity"
	"agrofleet/internal/core/types"
	"agrofleet/internal/domain/fleet"
)

type mockRecord struct {
	entity.Base
	Nombre  string `db:"nombre" json:"nombre"`
	Stock   int    `db:"stock_actual" json:"stockActual,omitempty"`
	Ignored string `json:"ignored"`
	Skipped string `db:"-"`
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	assert.Equal(t, []string{"id", "version", "created_at", "updated_at", "nombre", "stock_actual"}, cols)
	assert.Equal(t, cols, ExtractDBColumns[*mockRecord]())
}

func TestColumnsByKey(t *testing.T) {
	m := ColumnsByKey[mockRecord]()

	assert.Equal(t, "stock_actual", m["stockActual"])
	assert.Equal(t, "created_at", m["createdAt"])
	assert.NotContains(t, m, "ignored")

	machinery := ColumnsByKey[fleet.Machinery]()
	assert.Equal(t, "fecha_compra", machinery["fechaCompra"])
	assert.Equal(t, "en_garantia", machinery["enGarantia"])
}

func TestStructToMap(t *testing.T) {
	p := fleet.NewPart()
	p.Nombre = "Filtro de aire"
	p.StockMinimo = 3
	p.Precio = types.MustMoney("99.90")

	m := StructToMap(p)
	require.NotNil(t, m)
	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, "Filtro de aire", m["nombre"])
	assert.Equal(t, 3, m["stock_minimo"])
	assert.True(t, p.Precio.Equal(m["precio"].(types.Money)))

	assert.Nil(t, StructToMap((*fleet.Part)(nil)))
	assert.Nil(t, StructToMap(42))
}
