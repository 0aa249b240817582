package partsdoc

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const st12 = `# Lista de repuestos ST-12

Tractor John Deere 6110J. Revisado en marzo.

## Motor

### 1. Filtro de aceite
Filtro roscado de flujo total.
Cambiar cada 250 horas.
- **Código:** RE504836
- **Cantidad:** 2
- **Precio:** $ 45,90

### 2. Correa de ventilador
- Código: AZ58377
- Cantidad: 1
- Proveedor: Agro Repuestos SRL
- Precio: consultar

### Bomba de agua
- **N° de parte:** RE545778
- **Precio:** 1.250,50
- **Observaciones:** pedir junta aparte
Verificar en stock antes de pedir.
`

func TestParse_MultiItemDocument(t *testing.T) {
	items, err := Parse(strings.NewReader(st12), "ST12.md")
	require.NoError(t, err)
	require.Len(t, items, 3, "titles without fields are not items")

	oil := items[0]
	assert.Equal(t, "ST12.md", oil.File)
	assert.Equal(t, 1, oil.Number)
	assert.Equal(t, "Filtro de aceite", oil.Name)
	assert.Equal(t, "Filtro roscado de flujo total. Cambiar cada 250 horas.", oil.Description)
	assert.Equal(t, "RE504836", oil.Code)
	assert.Equal(t, "2", oil.Quantity)
	require.True(t, oil.Price.Valid)
	assert.Equal(t, "45.90", oil.Price.Decimal.StringFixed(2))
	assert.Empty(t, oil.Notes)

	belt := items[1]
	assert.Equal(t, 2, belt.Number)
	assert.Empty(t, belt.Description)
	assert.False(t, belt.Price.Valid)
	assert.Equal(t, []string{"proveedor=Agro Repuestos SRL", "precio=consultar"}, belt.Notes)

	pump := items[2]
	assert.Equal(t, 0, pump.Number)
	assert.Equal(t, "RE545778", pump.Code)
	assert.Equal(t, "1250.50", pump.Price.Decimal.StringFixed(2))
	assert.Equal(t, []string{"pedir junta aparte", "Verificar en stock antes de pedir."}, pump.Notes)
}

func TestParser_States(t *testing.T) {
	p := NewParser("ST1.md")
	assert.Equal(t, SeekingItemStart, p.State())

	p.Feed("texto antes del primer título")
	assert.Equal(t, SeekingItemStart, p.State())

	p.Feed("#### 7) Rótula de dirección")
	assert.Equal(t, ReadingDescription, p.State())

	p.Feed("Lado izquierdo.")
	assert.Equal(t, ReadingDescription, p.State())

	p.Feed("- **Cantidad:** 1")
	assert.Equal(t, ReadingFields, p.State())

	p.Feed("### 8. Rótula derecha")
	assert.Equal(t, ReadingDescription, p.State())

	items := p.Finish()
	assert.Equal(t, SeekingItemStart, p.State())
	require.Len(t, items, 2)
	assert.Equal(t, "Rótula de dirección", items[0].Name)
	assert.Equal(t, "Lado izquierdo.", items[0].Description)
	assert.Equal(t, 8, items[1].Number)
	assert.Empty(t, items[1].Code, "missing fields stay blank")
}

func TestParse_EmptyDocument(t *testing.T) {
	items, err := Parse(strings.NewReader(""), "ST0.md")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWriteCSV(t *testing.T) {
	items, err := Parse(strings.NewReader(st12), "ST12.md")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, items))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"ST12.md", "1", "Filtro de aceite",
		"Filtro roscado de flujo total. Cambiar cada 250 horas.", "RE504836", "2", "45.90", ""}, rows[1])
	assert.Equal(t, "", rows[3][1])
	assert.Equal(t, "pedir junta aparte; Verificar en stock antes de pedir.", rows[3][7])
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	write("ST2.md", "### 1. Filtro de aire\n- Código: AR103033\n")
	write("ST1.md", st12)
	write("README.md", "### 1. No es un repuesto\n- Código: X\n")

	items, err := ParseDir(context.Background(), dir, "")
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "ST1.md", items[0].File)
	assert.Equal(t, "ST2.md", items[3].File)
	assert.Equal(t, "AR103033", items[3].Code)
}
