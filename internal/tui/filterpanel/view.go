package filterpanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"agrofleet/internal/tui/styles"
)

const labelWidth = 18

type rowKind int

const (
	rowTitle rowKind = iota
	rowItem
	rowSuggestion
	rowBlank
	rowFooter
)

// row is one rendered line inside the panel border.
type row struct {
	kind       rowKind
	item       int
	suggestion int
}

// layout lists the panel lines top to bottom. View and hit-testing both read
// it, so a click maps to the line that was drawn.
func (m *Model) layout() []row {
	rows := []row{{kind: rowTitle}}
	for i, it := range m.items {
		if it.kind.footer() {
			continue
		}
		rows = append(rows, row{kind: rowItem, item: i})
		for j := range m.visibleList(it) {
			rows = append(rows, row{kind: rowSuggestion, item: i, suggestion: j})
		}
	}
	return append(rows, row{kind: rowBlank}, row{kind: rowFooter})
}

// buttonSpan is the x-range of a footer button relative to the content edge.
type buttonSpan struct {
	kind       itemKind
	start, end int
}

var footerButtons = []struct {
	kind  itemKind
	label string
}{
	{itemReset, "Limpiar"},
	{itemCancel, "Cancelar"},
	{itemApply, "Aplicar"},
}

const buttonGap = "  "

func buttonText(label string) string { return "[ " + label + " ]" }

func buttonSpans() []buttonSpan {
	spans := make([]buttonSpan, 0, len(footerButtons))
	x := 0
	for _, b := range footerButtons {
		w := lipgloss.Width(buttonText(b.label))
		spans = append(spans, buttonSpan{kind: b.kind, start: x, end: x + w})
		x += w + len(buttonGap)
	}
	return spans
}

// Trigger renders the closed-state button with the active-filter badge.
func (m *Model) Trigger() string {
	n := m.ctrl.Count()
	label := fmt.Sprintf("Filtros (%d)", n)
	if n > 0 {
		return styles.TriggerActive.Render(label)
	}
	return styles.Trigger.Render(label)
}

// View renders the open panel, or nothing while closed.
func (m *Model) View() string {
	if !m.ctrl.IsOpen() {
		return ""
	}
	return m.render()
}

func (m *Model) render() string {
	rows := m.layout()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = m.renderRow(r)
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

// bounds returns the on-screen size of the open panel, border included.
func (m *Model) bounds() (w, h int) {
	view := m.render()
	return lipgloss.Width(view), lipgloss.Height(view)
}

func (m *Model) renderRow(r row) string {
	switch r.kind {
	case rowTitle:
		return styles.Title.Render("Filtros") + styles.Muted.Render("  esc cancelar · ctrl+s aplicar")

	case rowItem:
		it := m.items[r.item]
		prefix := "  "
		label := styles.Label.Render(itemLabel(it))
		if r.item == m.focus {
			prefix = styles.Focused.Render("> ")
			label = styles.Focused.Width(labelWidth).Render(itemLabel(it))
		}
		return prefix + label + m.renderWidget(it)

	case rowSuggestion:
		it := m.items[r.item]
		list := m.visibleList(it)
		text := "    " + list[r.suggestion]
		if r.item == m.focus && r.suggestion == m.cursor {
			return styles.Selected.Render(text)
		}
		return styles.Muted.Render(text)

	case rowFooter:
		parts := make([]string, 0, len(footerButtons))
		for _, b := range footerButtons {
			style := styles.Button
			if m.items[m.focus].kind == b.kind {
				style = styles.ButtonFocused
			}
			parts = append(parts, style.Render(buttonText(b.label)))
		}
		return strings.Join(parts, buttonGap)
	}
	return ""
}

func (m *Model) renderWidget(it item) string {
	key := it.field.Key
	switch it.kind {
	case itemSelect:
		v := m.ctrl.Value(key).Text()
		if v == "" {
			v = "Todos"
		}
		return "‹ " + v + " ›"
	case itemCheckbox:
		if m.ctrl.Value(key).Bool() {
			return "[x]"
		}
		return "[ ]"
	}
	if in, ok := m.inputs[it.id]; ok {
		return in.View()
	}
	return ""
}

func itemLabel(it item) string {
	switch it.kind {
	case itemRangeMin:
		return it.field.Label + " desde"
	case itemRangeMax:
		return it.field.Label + " hasta"
	}
	return it.field.Label
}

// click handles a left press at screen (x, y). A press outside the panel
// cancels it like Esc.
func (m *Model) click(x, y int) tea.Cmd {
	w, h := m.bounds()
	if x < m.originX || x >= m.originX+w || y < m.originY || y >= m.originY+h {
		m.ctrl.Cancel()
		return m.closed()
	}

	// One border cell on every side, one padding column left and right.
	line := y - m.originY - 1
	relX := x - m.originX - 2

	rows := m.layout()
	if line < 0 || line >= len(rows) {
		return nil
	}

	r := rows[line]
	switch r.kind {
	case rowItem:
		it := m.items[r.item]
		cmd := m.focusItem(r.item)
		switch it.kind {
		case itemCheckbox:
			m.toggle(it)
		case itemSelect:
			m.cycle(it, 1)
		}
		return cmd

	case rowSuggestion:
		it := m.items[r.item]
		if list := m.visibleList(it); r.suggestion < len(list) {
			m.choose(it, list[r.suggestion])
		}
		return m.focusItem(r.item)

	case rowFooter:
		for _, s := range buttonSpans() {
			if relX >= s.start && relX < s.end {
				return m.press(s.kind)
			}
		}
	}
	return nil
}
