package browser

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/filters/state"
)

func machine(nombre, marca, estado string, anio int) *fleet.Machinery {
	m := fleet.NewMachinery()
	m.Nombre = nombre
	m.Tipo = "Tractor"
	m.Marca = marca
	m.Estado = estado
	m.Anio = anio
	return m
}

func part(nombre, marca string) *fleet.Part {
	p := fleet.NewPart()
	p.Nombre = nombre
	p.Marca = marca
	return p
}

func fixtures() map[fleet.Kind][]fleet.Entity {
	return map[fleet.Kind][]fleet.Entity{
		fleet.KindMachinery: {
			machine("Tractor 1", "John Deere", "Operativa", 2018),
			machine("Tractor 2", "Case IH", "En reparación", 2012),
			machine("Cosechadora", "John Deere", "Operativa", 2020),
		},
		fleet.KindPart: {
			part("Filtro de aceite", "Fleetguard"),
			part("Correa", "Gates"),
		},
	}
}

func newBrowser(t *testing.T, load Loader) *Model {
	t.Helper()
	if load == nil {
		data := fixtures()
		load = func(ctx context.Context, kind fleet.Kind) ([]fleet.Entity, error) {
			return data[kind], nil
		}
	}
	m := New(context.Background(), Config{Loader: load})
	run(t, m, m.Init())
	return m
}

// run executes cmd and feeds load results back into m.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case loadedMsg:
		m.Update(msg)
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, m, c)
		}
	}
}

func titles(items []fleet.Entity) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.Title())
	}
	return out
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestBrowser_LoadsFirstSection(t *testing.T) {
	m := newBrowser(t, nil)

	assert.Equal(t, registry.SectionMaquinarias, m.Section())
	assert.Len(t, m.Visible(), 3)
	assert.Contains(t, m.View(), "Filtros (0)")
	assert.Contains(t, m.View(), "3 de 3")
}

func TestBrowser_AppliedFiltersNarrowTheList(t *testing.T) {
	m := newBrowser(t, nil)

	m.Update(keyRunes("f"))
	require.True(t, m.Panel().IsOpen())

	ctrl := m.Panel().Controller()
	ctrl.UpdateField("estado", state.Text("Operativa"))
	ctrl.UpdateField("anio", state.RangeOf(nil, ptr(2019)))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.False(t, m.Panel().IsOpen())
	if diff := cmp.Diff([]string{"Tractor 1"}, titles(m.Visible())); diff != "" {
		t.Errorf("visible mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, m.View(), "Filtros (2)")
}

func TestBrowser_SearchTypedInPanel(t *testing.T) {
	m := newBrowser(t, nil)

	m.Update(keyRunes("/"))
	m.Update(keyRunes("case"))
	assert.Len(t, m.Visible(), 3, "draft does not filter")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, []string{"Tractor 2"}, []string{m.Visible()[0].(*fleet.Machinery).Nombre})
}

func TestBrowser_ResetRestoresEverything(t *testing.T) {
	m := newBrowser(t, nil)
	m.Update(keyRunes("f"))
	m.Panel().Controller().UpdateField("marca", state.Text("case"))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, m.Visible(), 1)

	m.Update(keyRunes("f"))
	m.Panel().Controller().Reset()

	assert.Len(t, m.Visible(), 3)
	assert.True(t, m.Panel().IsOpen())
}

func TestBrowser_SwitchSectionDropsStaleFilters(t *testing.T) {
	m := newBrowser(t, nil)
	m.Update(keyRunes("f"))
	ctrl := m.Panel().Controller()
	ctrl.UpdateField("estado", state.Text("Operativa"))
	ctrl.UpdateField("marca", state.Text("Deere"))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, m.Visible(), 2)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	run(t, m, cmd)

	assert.Equal(t, registry.SectionRepuestos, m.Section())
	committed := ctrl.Committed()
	assert.Equal(t, []string{"marca"}, committed.Keys(), "estado is not a repuestos field")
	assert.Empty(t, m.Visible(), "no part brand contains deere")

	m.Update(keyRunes("f"))
	ctrl.Reset()
	assert.Len(t, m.Visible(), 2)
}

func TestBrowser_StaleLoadIsIgnored(t *testing.T) {
	m := newBrowser(t, nil)

	m.Update(loadedMsg{section: registry.SectionProveedores, items: []fleet.Entity{fleet.NewSupplier()}})

	assert.Len(t, m.Visible(), 3)
}

func TestBrowser_SuggestionsComeFromLoadedRecords(t *testing.T) {
	m := newBrowser(t, nil)
	field, ok := registry.NewDefault().Field(registry.SectionMaquinarias, "marca")
	require.True(t, ok)

	assert.Equal(t, []string{"John Deere"}, m.suggestFor(field, "de"))
	assert.Equal(t, []string{}, m.suggestFor(field, ""))
}

func TestBrowser_DetailPane(t *testing.T) {
	m := newBrowser(t, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Tractor 2", sel.(*fleet.Machinery).Nombre)
	view := m.View()
	assert.Contains(t, view, "Horas")
	assert.Contains(t, view, "Case IH")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, m.View(), "Fecha de compra")
}

func TestBrowser_LoadError(t *testing.T) {
	m := newBrowser(t, func(ctx context.Context, kind fleet.Kind) ([]fleet.Entity, error) {
		return nil, errors.New("connection refused")
	})

	assert.Empty(t, m.Visible())
	assert.Contains(t, m.View(), "connection refused")
}

func TestBrowser_Quit(t *testing.T) {
	m := newBrowser(t, nil)

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func ptr(v float64) *float64 { return &v }
