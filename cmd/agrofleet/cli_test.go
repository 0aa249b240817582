package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("AGROFLEET_DATABASE_URL", "")
	t.Setenv("AGROFLEET_LOG_LEVEL", "error")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPartsCSV_WritesFile(t *testing.T) {
	dir := t.TempDir()
	doc := "# ST-3\n\n## 1. Filtro de aire\n- Código: AF25557\n- Cantidad: 1\n- Precio: 88,00\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ST3.md"), []byte(doc), 0o644))
	dest := filepath.Join(dir, "out.csv")

	_, err := execute(t, "parts-csv", "--dir", dir, "--out", dest)
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "archivo", rows[0][0])
	assert.Equal(t, []string{"ST3.md", "1", "Filtro de aire", "", "AF25557", "1", "88.00", ""}, rows[1])
}

func TestPartsCSV_Stdout(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "parts-csv", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "archivo,numero,nombre,descripcion,codigo,cantidad,precio,notas\n", out)
}

func TestSeed_InMemory(t *testing.T) {
	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded 7 maquinarias, 6 repuestos, 4 proveedores, 4 reparaciones\n", out)
}

func TestRoot_InvalidConfig(t *testing.T) {
	t.Setenv("AGROFLEET_APP_PORT", "0")

	_, err := execute(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", "nope.yaml", "seed")
	require.Error(t, err)
}

func TestBrowse_UnknownSection(t *testing.T) {
	_, err := execute(t, "browse", "--demo", "--section", "tractores")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown section "tractores"`)
}
