package scene

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-orbits/internal/neo"
)

func TestExport(t *testing.T) {
	c := NewComposer(16, nil)
	bodies := c.Compose(testEntries())
	fetched := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	snap := Export(bodies, 12, ExportOptions{
		FetchedAt:  fetched,
		Filter:     neo.FilterAll,
		Segments:   c.Segments(),
		RingPoints: true,
	})

	if snap.ElapsedSeconds != 12 || snap.Filter != "all" || snap.Segments != 16 {
		t.Errorf("metadata = %v/%q/%d", snap.ElapsedSeconds, snap.Filter, snap.Segments)
	}
	if len(snap.Bodies) != 3 {
		t.Fatalf("got %d bodies", len(snap.Bodies))
	}

	b := snap.Bodies[0]
	if b.ID != "3542519" || !b.Hazardous || b.RingColor != RingHazardColor {
		t.Errorf("body 0 = %+v", b)
	}
	if b.WorldPosition != bodies[0].WorldPosition(12) {
		t.Errorf("world position = %v", b.WorldPosition)
	}
	if len(b.RingPoints) != 17 {
		t.Errorf("ring points = %d, want 17", len(b.RingPoints))
	}
	if len(snap.Bodies[2].Defaulted) != 5 {
		t.Errorf("empty record defaulted = %v", snap.Bodies[2].Defaulted)
	}
}

func TestExport_WriteJSON(t *testing.T) {
	c := NewComposer(0, nil)
	snap := Export(c.Compose(testEntries()[:1]), 0, ExportOptions{Selected: "3542519"})

	var buf bytes.Buffer
	if err := snap.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["selected"] != "3542519" {
		t.Errorf("selected = %v", decoded["selected"])
	}
	bodies, _ := decoded["bodies"].([]any)
	if len(bodies) != 1 {
		t.Fatalf("bodies = %v", decoded["bodies"])
	}
	body := bodies[0].(map[string]any)
	if _, ok := body["ring_points"]; ok {
		t.Error("ring points should be omitted unless requested")
	}
	if body["is_selected"] != true {
		t.Error("single body should be selected")
	}
	params := body["params"].(map[string]any)
	if _, ok := params["semi_major_axis"]; !ok {
		t.Errorf("params = %v", params)
	}
}

func TestWriteSummaryTable(t *testing.T) {
	c := NewComposer(0, nil)
	var buf bytes.Buffer
	WriteSummaryTable(&buf, c, testEntries(), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	out := buf.String()

	for _, want := range []string{
		"NEO Catalog @ 2025-01-01T00:00:00Z",
		"(2010 PK9)",
		"HAZARDOUS",
		"18.10 km/s",
		"Unnamed Asteroid",
		"Total: 3 asteroids (1 hazardous)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, NewComposer(0, nil), nil, time.Now())
	if !strings.Contains(buf.String(), "No asteroids") {
		t.Errorf("empty summary = %q", buf.String())
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"433 Eros (A898 PA)", 10, "433 Eros.."},
		{"abcdef", 3, "abc"},
		{"ééééé", 4, "éé.."},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
