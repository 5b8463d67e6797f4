package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orbits/internal/hazard"
	"github.com/litescript/ls-orbits/internal/neo"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
)

// Styles shared by the views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	hazardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(scene.IndicatorHazardColor))

	safeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(scene.IndicatorSafeColor))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// eventLines is the number of recent catalog events shown.
const eventLines = 5

// CatalogModel lists the filtered catalog with hazard status.
type CatalogModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	lastErr  error
}

// NewCatalogModel creates a new catalog model.
func NewCatalogModel() CatalogModel {
	return CatalogModel{}
}

// SetSize updates the viewport size.
func (m CatalogModel) SetSize(width, height int) CatalogModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data. The cursor follows the
// selection when there is one and is kept in range otherwise.
func (m CatalogModel) UpdateData(snapshot state.Snapshot) CatalogModel {
	m.snapshot = snapshot
	if snapshot.Selected != neo.SelectAll {
		for i, e := range snapshot.Filtered {
			if e.ID() == snapshot.Selected {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(snapshot.Filtered) {
		m.cursor = len(snapshot.Filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

// SetError sets the last error for display.
func (m CatalogModel) SetError(err error) CatalogModel {
	m.lastErr = err
	return m
}

// Cursor returns the highlighted row.
func (m CatalogModel) Cursor() int {
	return m.cursor
}

// Update handles messages.
func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		count := len(m.snapshot.Filtered)

		switch msg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < count-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if count > 0 {
				m.cursor = count - 1
			}
		case "enter":
			if e, ok := m.cursorEntry(); ok {
				id := e.ID()
				return m, func() tea.Msg { return CatalogSelectMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m CatalogModel) cursorEntry() (neo.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Filtered) {
		return neo.Entry{}, false
	}
	return m.snapshot.Filtered[m.cursor], true
}

// View renders the catalog.
func (m CatalogModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if !m.snapshot.HasData && m.lastErr == nil {
		b.WriteString("Waiting for asteroid catalog...\n")
		return b.String()
	}

	b.WriteString(m.renderFilterStatus())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderEvents())

	return b.String()
}

func (m CatalogModel) renderFilterStatus() string {
	var hazardous int
	for _, e := range m.snapshot.Entries {
		if e.Asteroid.Hazardous {
			hazardous++
		}
	}

	selected := "all"
	if m.snapshot.Selected != neo.SelectAll {
		selected = m.snapshot.Selected
	}

	return titleStyle.Render("Near-Earth Objects") + "\n" +
		mutedStyle.Render(fmt.Sprintf("  filter: %s | showing %d of %d (%d hazardous) | selected: %s",
			m.snapshot.Filter, len(m.snapshot.Filtered), len(m.snapshot.Entries), hazardous, selected))
}

func (m CatalogModel) renderTable() string {
	var b strings.Builder

	header := fmt.Sprintf("  %-24s %-10s %-11s %-18s %-10s %-9s",
		"Name", "ID", "Velocity", "Miss Distance", "Diameter", "Status")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	entries := m.snapshot.Filtered
	if len(entries) == 0 {
		b.WriteString("  No asteroids match the filter\n")
		return b.String()
	}

	maxRows := m.height - 6 - eventLines
	if maxRows < 5 {
		maxRows = 5
	}

	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := startIdx + maxRows
	if endIdx > len(entries) {
		endIdx = len(entries)
	}

	for i := startIdx; i < endIdx; i++ {
		e := entries[i]
		hud := scene.BuildHUD(e)

		marker := " "
		if e.ID() == m.snapshot.Selected {
			marker = "▸"
		}

		row := fmt.Sprintf("%s %-24s %-10s %-11s %-18s %-10s ",
			marker,
			truncate(hud.Name, 24),
			truncate(hud.ID, 10),
			hud.Velocity,
			hud.MissDistance,
			hud.Diameter,
		)
		status := renderStatus(e.Asteroid.Hazardous)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row) + status)
		} else {
			b.WriteString(rowStyle.Render(row) + status)
		}
		b.WriteString("\n")
	}

	if len(entries) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d asteroids\n", startIdx+1, endIdx, len(entries)))
	}

	return b.String()
}

func renderStatus(hazardous bool) string {
	label := hazard.Classify(hazardous).Label()
	if hazardous {
		return hazardStyle.Render(label)
	}
	return safeStyle.Render(label)
}

func (m CatalogModel) renderEvents() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent Changes"))
	b.WriteString("\n")

	events := m.snapshot.Events
	if len(events) == 0 {
		b.WriteString(mutedStyle.Render("  No catalog changes yet"))
		b.WriteString("\n")
		return b.String()
	}
	if len(events) > eventLines {
		events = events[len(events)-eventLines:]
	}

	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		line := fmt.Sprintf("  %s %-15s %s", ev.Timestamp.Format("15:04:05"), ev.Type, truncate(ev.Name, 32))
		switch {
		case ev.Type == state.EventRemoved:
			b.WriteString(mutedStyle.Render(line))
		case ev.Hazardous:
			b.WriteString(hazardStyle.Render(line))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
