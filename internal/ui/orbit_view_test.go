package ui

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orbits/internal/scene"
	"github.com/litescript/ls-orbits/internal/state"
)

func TestOrbitViewModelInit(t *testing.T) {
	m := NewOrbitViewModel(scene.NewComposer(0, nil))

	if m.Camera() != scene.DefaultCamera() {
		t.Errorf("camera = %+v, want default", m.Camera())
	}
	if !m.indicators || !m.labels {
		t.Error("indicators and labels should start enabled")
	}
}

func TestOrbitViewModelZoom(t *testing.T) {
	m := NewOrbitViewModel(scene.NewComposer(0, nil))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if m.Camera().Zoom != zoomStep {
		t.Errorf("zoom = %v, want %v", m.Camera().Zoom, zoomStep)
	}

	for i := 0; i < 50; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	}
	if m.Camera().Zoom != scene.MaxZoom {
		t.Errorf("zoom = %v, want clamp at %v", m.Camera().Zoom, scene.MaxZoom)
	}

	for i := 0; i < 50; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	}
	if m.Camera().Zoom != scene.MinZoom {
		t.Errorf("zoom = %v, want clamp at %v", m.Camera().Zoom, scene.MinZoom)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	if m.Camera() != scene.DefaultCamera() {
		t.Errorf("reset camera = %+v", m.Camera())
	}
}

func TestOrbitViewModelRotate(t *testing.T) {
	m := NewOrbitViewModel(scene.NewComposer(0, nil))
	start := m.Camera()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Camera().Yaw <= start.Yaw {
		t.Errorf("yaw = %v, want > %v", m.Camera().Yaw, start.Yaw)
	}

	for i := 0; i < 100; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.Camera().Pitch != math.Pi/2 {
		t.Errorf("pitch = %v, want clamp at pi/2", m.Camera().Pitch)
	}

	for i := 0; i < 100; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Camera().Pitch != -math.Pi/2 {
		t.Errorf("pitch = %v, want clamp at -pi/2", m.Camera().Pitch)
	}
}

func TestOrbitViewModelToggles(t *testing.T) {
	m := NewOrbitViewModel(scene.NewComposer(0, nil))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	if m.indicators {
		t.Error("i should hide indicators")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if m.labels {
		t.Error("l should hide labels")
	}
}

func TestOrbitViewModelView(t *testing.T) {
	m := NewOrbitViewModel(scene.NewComposer(0, nil))

	if got := m.SetSize(20, 10).View(); !strings.Contains(got, "too small") {
		t.Errorf("small view = %q", got)
	}
	if got := m.SetSize(100, 30).View(); !strings.Contains(got, "Waiting") {
		t.Errorf("empty view = %q", got)
	}

	mgr := state.NewManager(state.DefaultConfig())
	mgr.Update(testRecords(), 0, nil)
	mgr.Select("3542519")

	m = m.SetSize(100, 30).UpdateData(mgr.Snapshot())
	out := m.View()
	for _, want := range []string{string(scene.GlyphEarth), string(scene.GlyphBodySelected), "(2010 PK9)", "18.10 km/s", "HAZARDOUS", "Miss distance"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRenderCanvas_PreservesGlyphs(t *testing.T) {
	c := scene.NewCanvas(4, 2)
	c.Set(0, 0, scene.GlyphRing, scene.RingSafeColor, scene.LayerRing, 0)
	c.Set(1, 0, scene.GlyphRing, scene.RingSafeColor, scene.LayerRing, 0)
	c.Set(3, 1, scene.GlyphBody, scene.BodyDefaultColor, scene.LayerBody, 0)

	got := renderCanvas(c)
	if strings.Count(got, "\n") != 1 {
		t.Errorf("want 2 lines, got %q", got)
	}
	if strings.Count(got, string(scene.GlyphRing)) != 2 || !strings.ContainsRune(got, scene.GlyphBody) {
		t.Errorf("glyphs lost: %q", got)
	}
}
