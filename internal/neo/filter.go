package neo

import (
	"fmt"
	"strconv"
	"strings"
)

// HazardFilter restricts the visible catalog by hazard classification.
type HazardFilter int

const (
	FilterAll HazardFilter = iota
	FilterHazardous
	FilterNonHazardous
)

// String returns the filter name.
func (f HazardFilter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterHazardous:
		return "hazardous"
	case FilterNonHazardous:
		return "nonhazardous"
	default:
		return "unknown"
	}
}

// Next returns the following filter in display order, wrapping around.
func (f HazardFilter) Next() HazardFilter {
	return (f + 1) % 3
}

// Keep reports whether an asteroid passes the filter.
func (f HazardFilter) Keep(a Asteroid) bool {
	switch f {
	case FilterHazardous:
		return a.Hazardous
	case FilterNonHazardous:
		return !a.Hazardous
	default:
		return true
	}
}

// ParseHazardFilter parses a filter name.
func ParseHazardFilter(s string) (HazardFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "hazardous", "hazard":
		return FilterHazardous, nil
	case "nonhazardous", "non-hazardous", "safe":
		return FilterNonHazardous, nil
	default:
		return FilterAll, fmt.Errorf("unknown hazard filter %q", s)
	}
}

// SelectAll is the selection value that shows every filtered orbit.
const SelectAll = ""

// Entry pairs a raw record with its normalized form and catalog position.
// Index is the position in the full, unfiltered list and, with ID, identifies
// the entry across filters and selections.
type Entry struct {
	Index    int
	Record   Record
	Asteroid Asteroid
}

// ID returns the entry's identifier.
func (e Entry) ID() string {
	return e.Asteroid.Identifier
}

// Label returns the entry's selector label: name, reference id, then internal id.
func (e Entry) Label() string {
	if e.Asteroid.Name != "" {
		return e.Asteroid.Name
	}
	if id, ok := e.Record.String(pathReferenceID...); ok {
		return id
	}
	if id, ok := e.Record.String(pathInternalID...); ok {
		return id
	}
	return e.Asteroid.Identifier
}

// ReportedVelocity returns the close-approach relative velocity in km/s as
// given by the record, without the catalog-average fallback.
func (e Entry) ReportedVelocity() (float64, bool) {
	var v float64
	ok := has(e.Record, pathRelVelocity, &v)
	return v, ok
}

// ReportedDiameter returns the average or maximum diameter in meters as given
// by the record. The kilometer estimate is not consulted.
func (e Entry) ReportedDiameter() (float64, bool) {
	var d float64
	if has(e.Record, pathAverageDiameter, &d) || has(e.Record, pathMaxDiameterM, &d) {
		return d, true
	}
	return 0, false
}

// Positioned returns the asteroid as drawn at position in a displayed list.
// An identifier that fell back to the catalog index takes the display
// position instead, so orbit seeds follow what is on screen.
func (e Entry) Positioned(position int) Asteroid {
	a := e.Asteroid
	if a.Defaulted.Has(FieldIdentifier) {
		a.Identifier = strconv.Itoa(position)
	}
	return a
}

// BuildEntries normalizes records into entries.
func BuildEntries(records []Record) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{Index: i, Record: r, Asteroid: Normalize(r, i)}
	}
	return entries
}

// Filter returns the entries that pass f, preserving list order and indexes.
func Filter(entries []Entry, f HazardFilter) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Keep(e.Asteroid) {
			out = append(out, e)
		}
	}
	return out
}

// Visible applies the orbit selection to a filtered list. SelectAll returns
// the list unchanged; any other id returns the matching entries, which may
// be none when the selection no longer passes the filter.
func Visible(filtered []Entry, selected string) []Entry {
	if selected == SelectAll {
		return filtered
	}
	var out []Entry
	for _, e := range filtered {
		if e.ID() == selected {
			out = append(out, e)
		}
	}
	return out
}
