// Package browser is the terminal list view of fleet records.
//
// It shows the records of one section with the filter panel trigger in the
// header. Records are loaded once per section and re-filtered in memory every
// time the panel commits a new snapshot.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agrofleet/internal/domain/filter"
	"agrofleet/internal/domain/fleet"
	"agrofleet/internal/filters/query"
	"agrofleet/internal/filters/registry"
	"agrofleet/internal/filters/state"
	"agrofleet/internal/filters/suggest"
	"agrofleet/internal/tui/filterpanel"
	"agrofleet/internal/tui/styles"
)

// Loader fetches every record of kind.
type Loader func(ctx context.Context, kind fleet.Kind) ([]fleet.Entity, error)

// Config configures the browser.
type Config struct {
	Registry *registry.Registry
	Loader   Loader

	// Section is the section shown first; empty means the first registered one.
	Section string

	BlurDelay    time.Duration
	SuggestLimit int
}

// loadedMsg carries the records of section.
type loadedMsg struct {
	section string
	items   []fleet.Entity
	err     error
}

// Model is the browser. It implements tea.Model.
type Model struct {
	ctx      context.Context
	load     Loader
	sections []registry.SectionSpec
	current  int

	panel  *filterpanel.Model
	engine suggest.Engine

	items   []fleet.Entity
	records []registry.Record
	visible []int
	cursor  int

	detail  bool
	loading bool
	err     error

	width, height int
}

// New creates a browser. ctx bounds every load.
func New(ctx context.Context, cfg Config) *Model {
	reg := cfg.Registry
	if reg == nil {
		reg = registry.NewDefault()
	}

	m := &Model{
		ctx:      ctx,
		load:     cfg.Loader,
		sections: reg.Sections(),
		engine:   suggest.New(cfg.SuggestLimit),
		loading:  true,
	}
	for i, s := range m.sections {
		if s.Name == cfg.Section {
			m.current = i
		}
	}

	spec := m.section()
	ctrl := state.NewController(spec.Name, spec.Fields, m.onFilters)
	m.panel = filterpanel.New(ctrl, filterpanel.Config{
		BlurDelay: cfg.BlurDelay,
		Suggest:   m.suggestFor,
	})
	// The panel drops down right under the header line.
	m.panel.SetOrigin(0, 1)
	return m
}

// Section returns the active section name.
func (m *Model) Section() string { return m.section().Name }

// Panel returns the filter panel.
func (m *Model) Panel() *filterpanel.Model { return m.panel }

// Visible returns the records that pass the committed filters, in load order.
func (m *Model) Visible() []fleet.Entity {
	out := make([]fleet.Entity, 0, len(m.visible))
	for _, i := range m.visible {
		out = append(out, m.items[i])
	}
	return out
}

// Selected returns the record under the cursor.
func (m *Model) Selected() (fleet.Entity, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil, false
	}
	return m.items[m.visible[m.cursor]], true
}

func (m *Model) section() registry.SectionSpec {
	if len(m.sections) == 0 {
		return registry.SectionSpec{}
	}
	return m.sections[m.current]
}

// Init loads the first section.
func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *Model) loadCmd() tea.Cmd {
	name := m.section().Name
	kind, ok := fleet.KindForSection(name)
	if !ok || m.load == nil {
		return func() tea.Msg { return loadedMsg{section: name} }
	}
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		items, err := load(ctx, kind)
		return loadedMsg{section: name, items: items, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loadedMsg:
		if msg.section != m.section().Name {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.items = msg.items
		m.records = make([]registry.Record, 0, len(msg.items))
		for _, e := range msg.items {
			m.records = append(m.records, e.Record())
		}
		m.refilter(m.panel.Controller().Committed())
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.panel.IsOpen() {
			return m, m.handleKey(msg)
		}

	case tea.MouseMsg:
		if !m.panel.IsOpen() {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "f", "/":
		m.detail = false
		return m.panel.Open()
	case "tab":
		return m.switchSection(1)
	case "shift+tab":
		return m.switchSection(-1)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if _, ok := m.Selected(); ok {
			m.detail = !m.detail
		}
	case "esc":
		m.detail = false
	}
	return nil
}

func (m *Model) switchSection(delta int) tea.Cmd {
	n := len(m.sections)
	if n < 2 {
		return nil
	}
	m.current = (m.current + delta + n) % n
	m.items, m.records, m.visible = nil, nil, nil
	m.cursor = 0
	m.detail = false
	m.err = nil
	m.loading = true

	spec := m.section()
	return tea.Batch(m.panel.SetSection(spec.Name, spec.Fields), m.loadCmd())
}

// onFilters receives committed snapshots from the controller.
func (m *Model) onFilters(f state.Filters) {
	m.refilter(f)
}

func (m *Model) refilter(f state.Filters) {
	spec := m.section()
	items := query.Translate(spec.Fields, f)

	m.visible = m.visible[:0]
	for i, rec := range m.records {
		if filter.Match(rec, items) && filter.MatchSearch(rec, spec.SearchKeys, f.Search) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	if len(m.visible) == 0 {
		m.detail = false
	}
}

func (m *Model) suggestFor(field registry.FieldSpec, input string) []string {
	return m.engine.Suggest(field, input, m.records)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	if m.panel.IsOpen() {
		b.WriteString(m.panel.View())
		return b.String()
	}

	switch {
	case m.err != nil:
		b.WriteString(styles.Error.Render("Error: " + m.err.Error()))
	case m.loading:
		b.WriteString(styles.Muted.Render("Cargando…"))
	case len(m.visible) == 0:
		b.WriteString(styles.Muted.Render("Sin resultados"))
	default:
		list := m.renderList()
		if e, ok := m.Selected(); ok && m.detail {
			list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", styles.Detail.Render(renderDetail(e)))
		}
		b.WriteString(list)
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("%d de %d · f filtros · tab sección · enter detalle · q salir",
		len(m.visible), len(m.items))))
	return b.String()
}

func (m *Model) header() string {
	tabs := make([]string, 0, len(m.sections))
	for i, s := range m.sections {
		if i == m.current {
			tabs = append(tabs, styles.TabActive.Render(s.Label))
		} else {
			tabs = append(tabs, styles.TabInactive.Render(s.Label))
		}
	}
	return strings.Join(tabs, "") + "  " + m.panel.Trigger()
}

func (m *Model) renderList() string {
	start, end := 0, len(m.visible)
	if rows := m.height - 4; rows > 0 && end > rows {
		start = max(m.cursor-rows+1, 0)
		end = start + rows
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		title := m.items[m.visible[i]].Title()
		if i == m.cursor {
			lines = append(lines, styles.Selected.Render("> "+title))
		} else {
			lines = append(lines, "  "+title)
		}
	}
	return strings.Join(lines, "\n")
}

func renderDetail(e fleet.Entity) string {
	attrs := fleet.Describe(e)
	lines := make([]string, 0, len(attrs)+1)
	lines = append(lines, styles.Title.Render(e.Kind().Label()))
	for _, a := range attrs {
		lines = append(lines, styles.Label.Render(a.Label)+a.Value)
	}
	return strings.Join(lines, "\n")
}
