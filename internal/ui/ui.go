// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orbits/internal/clock"
	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
	"github.com/litescript/ls-orbits/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewOrbit ViewMode = iota
	ViewCatalog
)

const viewCount = 2

// chromeLines is the height taken by the header and footer.
const chromeLines = 6

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic status updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast spinner updates.
	AnimTickMsg time.Time

	// FrameMsg carries the animation clock reading for one frame.
	FrameMsg struct {
		Elapsed float64
	}

	// DataUpdateMsg signals a new catalog snapshot is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a fetch error.
	ErrorMsg struct {
		Error error
	}

	// CatalogSelectMsg requests showing a single orbit from the catalog view.
	CatalogSelectMsg struct {
		ID string
	}
)

// Config wires the model to the rest of the application.
type Config struct {
	State    *state.Manager
	Clock    *clock.FrameClock
	Composer *scene.Composer

	// OnRefresh is called when the user requests a refresh and the request
	// passed the rate limit. It must not block.
	OnRefresh func()
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state     *state.Manager
	clock     *clock.FrameClock
	onRefresh func()

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	// Sub-models
	orbitView OrbitViewModel
	catalog   CatalogModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(cfg Config) Model {
	composer := cfg.Composer
	if composer == nil {
		composer = scene.NewComposer(0, nil)
	}
	ck := cfg.Clock
	if ck == nil {
		ck = clock.New()
	}

	m := Model{
		state:     cfg.State,
		clock:     ck,
		onRefresh: cfg.OnRefresh,
		viewMode:  ViewOrbit,
		orbitView: NewOrbitViewModel(composer),
		catalog:   NewCatalogModel(),
	}
	if m.state != nil {
		m.setSnapshot(m.state.Snapshot())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "o":
			m.viewMode = ViewOrbit
		case "2", "c":
			m.viewMode = ViewCatalog
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "f":
			if m.state != nil {
				f := m.state.CycleFilter()
				m.statusMsg = "Filter: " + f.String()
				m.setSnapshot(m.state.Snapshot())
			}
		case "j":
			if m.state != nil {
				m.state.SelectNext()
				m.setSnapshot(m.state.Snapshot())
			}
		case "k":
			if m.state != nil {
				m.state.SelectPrev()
				m.setSnapshot(m.state.Snapshot())
			}
		case "esc":
			if m.state != nil {
				m.state.Select("")
				m.setSnapshot(m.state.Snapshot())
			}

		case " ":
			if m.clock.Toggle() {
				m.statusMsg = "Paused"
			} else {
				m.statusMsg = "Running"
			}
		case ">", ".":
			m.statusMsg = fmt.Sprintf("Time scale %gx", m.clock.Faster())
		case "<", ",":
			m.statusMsg = fmt.Sprintf("Time scale %gx", m.clock.Slower())

		case "r":
			m.requestRefresh()

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - chromeLines
		m.orbitView = m.orbitView.SetSize(msg.Width, contentHeight)
		m.catalog = m.catalog.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if m.state != nil {
			m.setSnapshot(m.state.Snapshot())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case FrameMsg:
		m.orbitView = m.orbitView.SetElapsed(msg.Elapsed)

	case DataUpdateMsg:
		m.setSnapshot(msg.Snapshot)
		m.catalog = m.catalog.SetError(msg.Snapshot.LastError)

	case CatalogSelectMsg:
		if m.state != nil {
			m.state.Select(msg.ID)
			m.setSnapshot(m.state.Snapshot())
			m.viewMode = ViewOrbit
		}

	case ErrorMsg:
		m.catalog = m.catalog.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) setSnapshot(s state.Snapshot) {
	m.snapshot = s
	m.orbitView = m.orbitView.UpdateData(s)
	m.catalog = m.catalog.UpdateData(s)
}

func (m *Model) requestRefresh() {
	if m.state == nil {
		return
	}
	if !m.state.RequestRefresh() {
		m.statusMsg = "Refresh rate limited, try again shortly"
		return
	}
	m.statusMsg = "Refreshing catalog..."
	if m.onRefresh != nil {
		m.onRefresh()
	}
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewOrbit:
		m.orbitView, cmd = m.orbitView.Update(msg)
	case ViewCatalog:
		m.catalog, cmd = m.catalog.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewOrbit:
		content = m.orbitView.View()
	case ViewCatalog:
		content = m.catalog.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Near-Earth Object Orbits · v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	return b.String()
}

// renderTitle draws the application name with a horizontal gradient.
func (m Model) renderTitle() string {
	runes := []rune("  L S · O R B I T S")
	var b strings.Builder
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradientStops run from deep blue through violet to warm orange.
var gradientStops = [][3]float64{
	{59, 130, 246},
	{139, 92, 246},
	{236, 72, 153},
	{255, 159, 67},
}

// gradientColor returns a hex color for a column in the title gradient.
func gradientColor(col, width int) string {
	if width <= 1 {
		return hexColor(gradientStops[0])
	}
	pos := float64(col) / float64(width-1) * float64(len(gradientStops)-1)
	i := int(pos)
	if i >= len(gradientStops)-1 {
		return hexColor(gradientStops[len(gradientStops)-1])
	}
	t := pos - float64(i)
	a, b := gradientStops[i], gradientStops[i+1]
	return hexColor([3]float64{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
	})
}

func hexColor(c [3]float64) string {
	clampByte := func(v float64) int {
		switch {
		case v < 0:
			return 0
		case v > 255:
			return 255
		}
		return int(v)
	}
	return fmt.Sprintf("#%02X%02X%02X", clampByte(c[0]), clampByte(c[1]), clampByte(c[2]))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Orbits", "[2] Catalog"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastFetch.IsZero():
		status = accentStyle.Render(spinner)
		if !m.snapshot.NextRefresh.IsZero() {
			countdown := time.Until(m.snapshot.NextRefresh).Round(time.Second)
			if countdown < 0 {
				countdown = 0
			}
			status += dimStyle.Render(fmt.Sprintf(" refresh in %ds", int(countdown.Seconds())))
		}
		if m.snapshot.FetchDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.FetchDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Waiting for catalog...")
	}

	clockStatus := fmt.Sprintf("%gx", m.clock.Scale())
	if m.clock.Paused() {
		clockStatus = "paused"
	}
	status += dimStyle.Render(" | time " + clockStatus)

	var help string
	switch m.viewMode {
	case ViewOrbit:
		help = dimStyle.Render("j/k: select | f: filter | +/-: zoom | arrows: rotate | i: indicators | space: pause | r: refresh")
	case ViewCatalog:
		help = dimStyle.Render("↑↓: navigate | enter: show orbit | esc: all | f: filter | r: refresh")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

// renderShimmerText renders text with a highlight sweeping across it.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var c [3]float64
		switch {
		case dist <= 1:
			c = [3]float64{180, 160, 220}
		case dist <= 3:
			c = [3]float64{140, 120, 180}
		case dist <= 5:
			c = [3]float64{110, 90, 150}
		default:
			c = [3]float64{80, 70, 120}
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
