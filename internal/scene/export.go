package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-orbits/internal/neo"
	"github.com/litescript/ls-orbits/internal/orbit"
)

// SnapshotExport is the JSON-serializable scene at one instant.
type SnapshotExport struct {
	GeneratedAt    time.Time    `json:"generated_at"`
	FetchedAt      time.Time    `json:"fetched_at,omitempty"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
	Filter         string       `json:"filter"`
	Selected       string       `json:"selected,omitempty"`
	Segments       int          `json:"segments"`
	Bodies         []BodyExport `json:"bodies"`
}

// BodyExport is a JSON-friendly body with its frame position.
type BodyExport struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Index          int              `json:"index"`
	CatalogIndex   int              `json:"catalog_index"`
	Hazardous      bool             `json:"hazardous"`
	IsSelected     bool             `json:"is_selected"`
	RingColor      string           `json:"ring_color"`
	BodyColor      string           `json:"body_color"`
	IndicatorColor string           `json:"indicator_color"`
	BodyRadius     float64          `json:"body_radius"`
	Params         orbit.Parameters `json:"params"`
	Rotation       Rotation         `json:"rotation"`
	LocalPosition  orbit.Vec3       `json:"local_position"`
	WorldPosition  orbit.Vec3       `json:"world_position"`
	Defaulted      []string         `json:"defaulted,omitempty"`
	RingPoints     []orbit.Vec3     `json:"ring_points,omitempty"`
}

// ExportOptions carries snapshot metadata.
type ExportOptions struct {
	FetchedAt  time.Time
	Filter     neo.HazardFilter
	Selected   string
	Segments   int
	RingPoints bool
}

// Export captures bodies at t seconds.
func Export(bodies []Body, t float64, opts ExportOptions) *SnapshotExport {
	s := &SnapshotExport{
		GeneratedAt:    time.Now().UTC(),
		FetchedAt:      opts.FetchedAt,
		ElapsedSeconds: t,
		Filter:         opts.Filter.String(),
		Selected:       opts.Selected,
		Segments:       opts.Segments,
		Bodies:         make([]BodyExport, 0, len(bodies)),
	}
	for _, b := range bodies {
		be := BodyExport{
			ID:             b.ID,
			Name:           b.Name,
			Index:          b.Index,
			CatalogIndex:   b.CatalogIndex,
			Hazardous:      b.Hazard.Hazardous,
			IsSelected:     b.IsSelected,
			RingColor:      b.RingColor,
			BodyColor:      b.BodyColor,
			IndicatorColor: b.IndicatorColor,
			BodyRadius:     b.BodyRadius,
			Params:         b.Params,
			Rotation:       b.Rotation,
			LocalPosition:  b.LocalPosition(t),
			WorldPosition:  b.WorldPosition(t),
			Defaulted:      b.Asteroid.Defaulted.Fields(),
		}
		if opts.RingPoints {
			be.RingPoints = append([]orbit.Vec3(nil), b.Ring...)
		}
		s.Bodies = append(s.Bodies, be)
	}
	return s
}

// WriteJSON writes the snapshot as indented JSON.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow is one row of the summary table.
type SummaryRow struct {
	Name         string
	ID           string
	Status       string
	Velocity     string
	MissDistance string
	Diameter     string
	SemiMajor    float64
	SemiMinor    float64
}

// GenerateSummaryRows creates summary rows for entries, in order.
func GenerateSummaryRows(c *Composer, entries []neo.Entry) []SummaryRow {
	rows := make([]SummaryRow, 0, len(entries))
	for i, b := range c.Compose(entries) {
		hud := BuildHUD(entries[i])
		rows = append(rows, SummaryRow{
			Name:         b.Name,
			ID:           b.ID,
			Status:       hud.Status,
			Velocity:     hud.Velocity,
			MissDistance: hud.MissDistance,
			Diameter:     hud.Diameter,
			SemiMajor:    b.Params.SemiMajorAxis,
			SemiMinor:    b.Params.SemiMinorAxis,
		})
	}
	return rows
}

// WriteSummaryTable writes a text table of entries.
func WriteSummaryTable(w io.Writer, c *Composer, entries []neo.Entry, timestamp time.Time) {
	rows := GenerateSummaryRows(c, entries)

	fmt.Fprintf(w, "NEO Catalog @ %s\n", timestamp.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 100))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No asteroids")
		return
	}

	fmt.Fprintf(w, "%-22s %-10s %-9s %-12s %-20s %-10s %6s %6s\n",
		"Name", "ID", "Status", "Velocity", "Miss Distance", "Diameter", "a", "b")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	hazardous := 0
	for _, r := range rows {
		if r.Status == "HAZARDOUS" {
			hazardous++
		}
		fmt.Fprintf(w, "%-22s %-10s %-9s %-12s %-20s %-10s %6.2f %6.2f\n",
			truncateStr(r.Name, 22),
			truncateStr(r.ID, 10),
			r.Status,
			r.Velocity,
			r.MissDistance,
			r.Diameter,
			r.SemiMajor,
			r.SemiMinor,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d asteroids (%d hazardous)\n", len(rows), hazardous)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
