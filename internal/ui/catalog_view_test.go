package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orbits/internal/neo"
	"github.com/litescript/ls-orbits/internal/state"
)

func catalogSnapshot(t *testing.T) state.Snapshot {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	mgr.Update(testRecords(), time.Millisecond, nil)
	return mgr.Snapshot()
}

func TestCatalogModelNavigation(t *testing.T) {
	m := NewCatalogModel().SetSize(120, 30).UpdateData(catalogSnapshot(t))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Errorf("cursor should stay at 0, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if m.Cursor() != 2 {
		t.Errorf("end cursor = %d, want 2", m.Cursor())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 2 {
		t.Errorf("cursor should stop at last row, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if m.Cursor() != 0 {
		t.Errorf("home cursor = %d, want 0", m.Cursor())
	}
}

func TestCatalogModelEnter(t *testing.T) {
	m := NewCatalogModel().UpdateData(catalogSnapshot(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}
	msg, ok := cmd().(CatalogSelectMsg)
	if !ok || msg.ID != "3542519" {
		t.Errorf("msg = %#v", cmd())
	}

	empty := NewCatalogModel().UpdateData(state.Snapshot{HasData: true})
	if _, cmd := empty.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on an empty catalog should do nothing")
	}
}

func TestCatalogModelCursorFollowsSelection(t *testing.T) {
	snap := catalogSnapshot(t)
	snap.Selected = "2099942"

	m := NewCatalogModel().UpdateData(snap)
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor())
	}

	m = m.UpdateData(state.Snapshot{HasData: true, Selected: neo.SelectAll})
	if m.Cursor() != 0 {
		t.Errorf("cursor should clamp on a shorter list, got %d", m.Cursor())
	}
}

func TestCatalogModelView(t *testing.T) {
	if got := NewCatalogModel().View(); !strings.Contains(got, "Waiting") {
		t.Errorf("empty view = %q", got)
	}

	snap := catalogSnapshot(t)
	snap.Events = []state.Event{{Type: state.EventAdded, Name: "99942 Apophis", Hazardous: true}}
	out := NewCatalogModel().SetSize(120, 30).UpdateData(snap).View()

	for _, want := range []string{"filter: all", "showing 3 of 3 (2 hazardous)", "(2010 PK9)", "18.10 km/s", "N/A", "safe", "ADDED", "99942 Apophis"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	withErr := NewCatalogModel().SetError(errors.New("boom")).View()
	if !strings.Contains(withErr, "Error: boom") {
		t.Errorf("error view = %q", withErr)
	}
}

func TestCatalogModelView_NoMatches(t *testing.T) {
	out := NewCatalogModel().UpdateData(state.Snapshot{HasData: true}).View()
	if !strings.Contains(out, "No asteroids match the filter") {
		t.Errorf("view = %q", out)
	}
	if !strings.Contains(out, "No catalog changes yet") {
		t.Errorf("view = %q", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"99942 Apophis (2004 MN4)", 12, "99942 Apo..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
