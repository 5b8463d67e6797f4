package scene

import (
	"testing"

	"github.com/litescript/ls-orbits/internal/neo"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"velocity", FormatVelocity(18.127), "18.13 km/s"},
		{"velocity default", FormatVelocity(10), "10.00 km/s"},
		{"miss distance", FormatMissDistance(380000), "380.00 million km"},
		{"miss distance small", FormatMissDistance(1234.5), "1.23 million km"},
		{"diameter", FormatDiameter(200), "0.200 km"},
		{"diameter large", FormatDiameter(16840), "16.840 km"},
		{"approach", FormatApproach(1735689600000), "2025-01-01 00:00 UTC"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestBuildHUD(t *testing.T) {
	entries := testEntries()

	h := BuildHUD(entries[0])
	if h.Name != "(2010 PK9)" || h.ID != "3542519" {
		t.Errorf("name/id = %q/%q", h.Name, h.ID)
	}
	if h.Velocity != "18.10 km/s" {
		t.Errorf("Velocity = %q", h.Velocity)
	}
	if h.MissDistance != "60.00 million km" {
		t.Errorf("MissDistance = %q", h.MissDistance)
	}
	if h.Diameter != NotAvailable {
		t.Errorf("Diameter = %q, want %q for a missing diameter", h.Diameter, NotAvailable)
	}
	if h.Approach != "2025-01-01 00:00 UTC" {
		t.Errorf("Approach = %q", h.Approach)
	}
	if !h.Hazardous || h.Status != "HAZARDOUS" || h.Explanation == "" {
		t.Errorf("hazard fields = %v/%q/%q", h.Hazardous, h.Status, h.Explanation)
	}
}

func TestBuildHUD_MissingValues(t *testing.T) {
	h := BuildHUD(neo.BuildEntries([]neo.Record{{}})[0])

	for name, v := range map[string]string{
		"velocity":      h.Velocity,
		"miss distance": h.MissDistance,
		"diameter":      h.Diameter,
		"approach":      h.Approach,
	} {
		if v != NotAvailable {
			t.Errorf("%s = %q, want %q", name, v, NotAvailable)
		}
	}
	if h.Name != "Unnamed Asteroid" {
		t.Errorf("Name = %q", h.Name)
	}
	if h.Hazardous || h.Status != "safe" {
		t.Errorf("empty record should be safe, got %v/%q", h.Hazardous, h.Status)
	}
}

func TestBuildHUD_ReportedFieldsOnly(t *testing.T) {
	h := BuildHUD(neo.BuildEntries([]neo.Record{{
		"calculatedProperties": map[string]any{"averageVelocity": 21.4},
		"estimated_diameter": map[string]any{
			"kilometers": map[string]any{"estimated_diameter_max": 0.8},
		},
	}})[0])
	if h.Velocity != NotAvailable {
		t.Errorf("Velocity = %q, want %q without a close approach", h.Velocity, NotAvailable)
	}
	if h.Diameter != NotAvailable {
		t.Errorf("Diameter = %q, want %q without a meter estimate", h.Diameter, NotAvailable)
	}

	h = BuildHUD(neo.BuildEntries([]neo.Record{{
		"estimated_diameter": map[string]any{
			"meters": map[string]any{"estimated_diameter_max": 320.0},
		},
	}})[0])
	if h.Diameter != FormatDiameter(320) {
		t.Errorf("Diameter = %q, want %q", h.Diameter, FormatDiameter(320))
	}
}
