package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
)

// hudLines is the height reserved below the canvas for the detail panel.
const hudLines = 8

// Camera step sizes.
const (
	zoomStep   = 1.25
	rotateStep = math.Pi / 36
	maxPitch   = math.Pi / 2
)

// OrbitViewModel renders the visible orbits around Earth.
type OrbitViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	composer *scene.Composer

	// View state
	camera     scene.Camera
	indicators bool
	labels     bool
	elapsed    float64

	// Bodies are recomposed only when the snapshot changes.
	bodies []scene.Body
}

// NewOrbitViewModel creates a new orbit view model.
func NewOrbitViewModel(composer *scene.Composer) OrbitViewModel {
	return OrbitViewModel{
		composer:   composer,
		camera:     scene.DefaultCamera(),
		indicators: true,
		labels:     true,
	}
}

// SetSize updates the viewport size.
func (m OrbitViewModel) SetSize(width, height int) OrbitViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m OrbitViewModel) UpdateData(snapshot state.Snapshot) OrbitViewModel {
	m.snapshot = snapshot
	m.bodies = m.composer.Compose(snapshot.Visible)
	return m
}

// SetElapsed moves every body to its position at elapsed seconds.
func (m OrbitViewModel) SetElapsed(elapsed float64) OrbitViewModel {
	m.elapsed = elapsed
	return m
}

// Camera returns the current camera.
func (m OrbitViewModel) Camera() scene.Camera {
	return m.camera
}

// Bodies returns the composed bodies for the current snapshot.
func (m OrbitViewModel) Bodies() []scene.Body {
	return m.bodies
}

// Update handles input messages.
func (m OrbitViewModel) Update(msg tea.Msg) (OrbitViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "+", "=":
			m.camera.Zoom = math.Min(m.camera.Zoom*zoomStep, scene.MaxZoom)
		case "-":
			m.camera.Zoom = math.Max(m.camera.Zoom/zoomStep, scene.MinZoom)
		case "0":
			m.camera = scene.DefaultCamera()

		case "left":
			m.camera.Yaw -= rotateStep
		case "right":
			m.camera.Yaw += rotateStep
		case "up":
			m.camera.Pitch = math.Min(m.camera.Pitch+rotateStep, maxPitch)
		case "down":
			m.camera.Pitch = math.Max(m.camera.Pitch-rotateStep, -maxPitch)

		case "i":
			m.indicators = !m.indicators
		case "l":
			m.labels = !m.labels
		}
	}
	return m, nil
}

func (m OrbitViewModel) canvasSize() (int, int) {
	h := m.height - hudLines
	if h < 0 {
		h = 0
	}
	return m.width, h
}

// View renders the orbit view.
func (m OrbitViewModel) View() string {
	if m.width < 40 || m.height < hudLines+8 {
		return "Terminal too small for orbit view"
	}
	if !m.snapshot.HasData {
		return "Waiting for asteroid catalog..."
	}

	w, h := m.canvasSize()
	canvas := scene.Rasterize(m.bodies, m.elapsed, scene.Viewport{Width: w, Height: h, Camera: m.camera},
		scene.RasterOptions{Indicators: m.indicators, Labels: m.labels})

	return lipgloss.JoinVertical(lipgloss.Left, renderCanvas(canvas), m.renderHUD())
}

// renderCanvas colors the canvas, one style per run of equal color.
func renderCanvas(c *scene.Canvas) string {
	styles := make(map[string]lipgloss.Style)
	styleFor := func(color string) lipgloss.Style {
		s, ok := styles[color]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			styles[color] = s
		}
		return s
	}

	var b strings.Builder
	var run strings.Builder
	for y, row := range c.Cells {
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(runColor).Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range row {
			if cell.Color != runColor {
				flush()
				runColor = cell.Color
			}
			run.WriteRune(cell.Glyph)
		}
		flush()
		if y < len(c.Cells)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m OrbitViewModel) renderHUD() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	sel, ok := m.snapshot.Selection()
	if !ok {
		var hazardous int
		for _, e := range m.snapshot.Visible {
			if e.Asteroid.Hazardous {
				hazardous++
			}
		}
		summary := fmt.Sprintf("%d orbits shown (%d hazardous) | filter: %s",
			len(m.snapshot.Visible), hazardous, m.snapshot.Filter)
		legend := lipgloss.NewStyle().Foreground(lipgloss.Color(scene.RingHazardColor)).Render("· hazardous") + "  " +
			lipgloss.NewStyle().Foreground(lipgloss.Color(scene.RingSafeColor)).Render("· safe") + "  " +
			lipgloss.NewStyle().Foreground(lipgloss.Color(scene.EarthColor)).Render("⊕ Earth")
		return "\n  " + titleStyle.Render("Orbits") + "\n  " + valueStyle.Render(summary) + "\n  " + legend
	}

	hud := scene.BuildHUD(sel)
	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scene.IndicatorSafeColor))
	if hud.Hazardous {
		statusStyle = statusStyle.Foreground(lipgloss.Color(scene.IndicatorHazardColor))
	}

	field := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
	}

	lines := []string{
		titleStyle.Render(hud.Name) + labelStyle.Render("  #"+hud.ID),
		field("Velocity", hud.Velocity),
		field("Miss distance", hud.MissDistance),
		field("Diameter", hud.Diameter),
		field("Approach", hud.Approach),
		field("Status", statusStyle.Render(hud.Status)),
		labelStyle.Render(hud.Explanation),
	}
	return "  " + strings.Join(lines, "\n  ")
}
