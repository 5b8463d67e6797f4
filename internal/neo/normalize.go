package neo

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Fallback defaults applied when a record lacks a usable value.
const (
	DefaultDiameterMeters = 200
	DefaultVelocityKps    = 10
	DefaultMissDistanceKm = 380000
	DefaultEpochMs        = 0
)

// FieldMask records which numeric fields fell back to their defaults.
type FieldMask uint8

const (
	FieldDiameter FieldMask = 1 << iota
	FieldVelocity
	FieldMissDistance
	FieldEpoch
	FieldIdentifier
)

// Has reports whether f is set in the mask.
func (m FieldMask) Has(f FieldMask) bool {
	return m&f != 0
}

// Fields lists the names of the fields set in the mask.
func (m FieldMask) Fields() []string {
	var names []string
	for _, f := range []struct {
		bit  FieldMask
		name string
	}{
		{FieldDiameter, "diameter"},
		{FieldVelocity, "velocity"},
		{FieldMissDistance, "miss_distance"},
		{FieldEpoch, "epoch"},
		{FieldIdentifier, "identifier"},
	} {
		if m.Has(f.bit) {
			names = append(names, f.name)
		}
	}
	return names
}

// Asteroid is a normalized asteroid record. All numeric fields are finite.
type Asteroid struct {
	Identifier            string
	Name                  string
	AverageDiameterMeters float64
	VelocityKps           float64
	MissDistanceKm        float64
	EpochMs               float64
	Hazardous             bool

	// Defaulted marks the fields that were absent or malformed in the raw record.
	Defaulted FieldMask
}

// Normalize extracts the fields the orbit engine needs from a raw record,
// applying fallback defaults. It never fails.
func Normalize(raw Record, index int) Asteroid {
	a := Asteroid{
		Name:      strings.TrimSpace(stringOr(raw, pathName, "")),
		Hazardous: raw.Bool(pathHazardous...),
	}

	switch {
	case has(raw, pathAverageDiameter, &a.AverageDiameterMeters):
	case has(raw, pathMaxDiameterM, &a.AverageDiameterMeters):
	case has(raw, pathMaxDiameterKm, &a.AverageDiameterMeters):
		a.AverageDiameterMeters *= 1000
	default:
		a.AverageDiameterMeters = DefaultDiameterMeters
		a.Defaulted |= FieldDiameter
	}

	switch {
	case has(raw, pathRelVelocity, &a.VelocityKps):
	case has(raw, pathAverageVelocity, &a.VelocityKps):
	default:
		a.VelocityKps = DefaultVelocityKps
		a.Defaulted |= FieldVelocity
	}

	if !has(raw, pathMissDistance, &a.MissDistanceKm) {
		a.MissDistanceKm = DefaultMissDistanceKm
		a.Defaulted |= FieldMissDistance
	}

	if !has(raw, pathEpoch, &a.EpochMs) {
		a.EpochMs = DefaultEpochMs
		a.Defaulted |= FieldEpoch
	}

	if id, ok := raw.String(pathReferenceID...); ok {
		a.Identifier = id
	} else if id, ok := raw.String(pathInternalID...); ok {
		a.Identifier = id
	} else {
		a.Identifier = strconv.Itoa(index)
		a.Defaulted |= FieldIdentifier
	}

	return a
}

// NormalizeAll normalizes a list of records, using each record's list
// position as its index.
func NormalizeAll(records []Record) []Asteroid {
	out := make([]Asteroid, len(records))
	for i, r := range records {
		out[i] = Normalize(r, i)
	}
	return out
}

// Seed derives a deterministic integer from an identifier by summing its
// UTF-16 code units. The result is stable across runs and platforms.
func Seed(identifier string) int {
	sum := 0
	for _, u := range utf16.Encode([]rune(identifier)) {
		sum += int(u)
	}
	return sum
}

// DisplayName returns the asteroid's name or a placeholder.
func (a Asteroid) DisplayName() string {
	if a.Name == "" {
		return "Unnamed Asteroid"
	}
	return a.Name
}

func has(raw Record, path []any, dst *float64) bool {
	v, ok := raw.Number(path...)
	if ok {
		*dst = v
	}
	return ok
}

func stringOr(raw Record, path []any, fallback string) string {
	if s, ok := raw.String(path...); ok {
		return s
	}
	return fallback
}
