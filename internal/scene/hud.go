package scene

import (
	"fmt"
	"time"

	"github.com/litescript/ls-orbits/internal/hazard"
	"github.com/litescript/ls-orbits/internal/neo"
)

// NotAvailable is shown for values missing from the source record.
const NotAvailable = "N/A"

// HUD is the formatted detail panel for one asteroid.
type HUD struct {
	Name         string `json:"name"`
	ID           string `json:"id"`
	Velocity     string `json:"velocity"`
	MissDistance string `json:"miss_distance"`
	Diameter     string `json:"diameter"`
	Approach     string `json:"approach"`
	Status       string `json:"status"`
	Explanation  string `json:"explanation"`
	Hazardous    bool   `json:"hazardous"`
}

// FormatVelocity formats a velocity in km/s.
func FormatVelocity(kps float64) string {
	return fmt.Sprintf("%.2f km/s", kps)
}

// FormatMissDistance formats a miss distance given in kilometers. The value
// is divided by 1000 and labeled in millions of kilometers, matching the
// panel the catalog was first shown with.
func FormatMissDistance(km float64) string {
	return fmt.Sprintf("%.2f million km", km/1000)
}

// FormatDiameter formats a diameter given in meters as kilometers.
func FormatDiameter(meters float64) string {
	return fmt.Sprintf("%.3f km", meters/1000)
}

// FormatApproach formats a close-approach epoch in milliseconds as a UTC date.
func FormatApproach(epochMs float64) string {
	return time.UnixMilli(int64(epochMs)).UTC().Format("2006-01-02 15:04 MST")
}

// BuildHUD formats the detail panel for an entry. Velocity and diameter are
// read from the close-approach and meter fields of the raw record only; the
// other fallbacks feed orbit derivation but show NotAvailable here, as do
// fields that fell back to a default.
func BuildHUD(e neo.Entry) HUD {
	a := e.Asteroid
	class := hazard.Classify(a.Hazardous)

	h := HUD{
		Name:         a.DisplayName(),
		ID:           a.Identifier,
		Velocity:     NotAvailable,
		MissDistance: NotAvailable,
		Diameter:     NotAvailable,
		Approach:     NotAvailable,
		Status:       class.Label(),
		Explanation:  class.Explanation,
		Hazardous:    class.Hazardous,
	}
	if v, ok := e.ReportedVelocity(); ok {
		h.Velocity = FormatVelocity(v)
	}
	if !a.Defaulted.Has(neo.FieldMissDistance) {
		h.MissDistance = FormatMissDistance(a.MissDistanceKm)
	}
	if d, ok := e.ReportedDiameter(); ok {
		h.Diameter = FormatDiameter(d)
	}
	if !a.Defaulted.Has(neo.FieldEpoch) {
		h.Approach = FormatApproach(a.EpochMs)
	}
	return h
}
