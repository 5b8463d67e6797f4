package orbit

import (
	"math"

	"github.com/litescript/ls-orbits/internal/neo"
)

// Render-space bounds for derived geometry.
const (
	MinSemiMajor    = 1.5
	MaxSemiMajor    = 15.0
	MinSemiMinor    = 0.6
	MinObjectRadius = 0.02
	MaxObjectRadius = 0.12

	// MissDistancePerUnit maps kilometers of miss distance to one render unit.
	MissDistancePerUnit = 12000.0

	minVelocityKps = 1.0
	maxVelocityKps = 50.0
	maxAngular     = 0.7
	minMeanRadius  = 0.8
)

// Parameters describes an asteroid's visual orbit. Angles are radians.
type Parameters struct {
	SemiMajorAxis         float64 `json:"semi_major_axis"`
	SemiMinorAxis         float64 `json:"semi_minor_axis"`
	InclinationRad        float64 `json:"inclination_rad"`
	AscendingNodeRad      float64 `json:"ascending_node_rad"`
	ArgPeriapsisRad       float64 `json:"arg_periapsis_rad"`
	PhaseRad              float64 `json:"phase_rad"`
	AngularSpeedRadPerSec float64 `json:"angular_speed_rad_per_sec"`
	ObjectRadius          float64 `json:"object_radius"`
}

// Period returns the time in seconds for one full revolution.
func (p Parameters) Period() float64 {
	return 2 * math.Pi / p.AngularSpeedRadPerSec
}

// Derive computes orbit parameters for an asteroid at a list index with the
// given identifier seed. Every output is clamped to the render-space bounds,
// so any input, however extreme, yields finite geometry.
//
// The list index diversifies shape (mod 7) and phase (mod 16) so records with
// identical data do not draw overlapping orbits.
func Derive(a neo.Asteroid, index, seed int) Parameters {
	if index < 0 {
		index = -index
	}
	if seed < 0 {
		seed = -seed
	}

	semiMajor := clamp(a.MissDistanceKm/MissDistancePerUnit, MinSemiMajor, MaxSemiMajor)

	v := clamp(a.VelocityKps, minVelocityKps, maxVelocityKps)
	vNorm := v / maxVelocityKps

	variety := 0.55 + 0.35*(0.3+float64(index%7)/10)*(1-vNorm)
	semiMinor := clamp(semiMajor*variety, MinSemiMinor, semiMajor)

	radius := clamp(a.AverageDiameterMeters/1000*0.05, MinObjectRadius, MaxObjectRadius)

	epoch := a.EpochMs
	if math.IsNaN(epoch) || math.IsInf(epoch, 0) {
		epoch = 0
	}
	phase := math.Mod(epoch/1e7, 2*math.Pi) + float64(index%16)*(math.Pi/8)

	angular := vNorm * maxAngular / math.Max(minMeanRadius, (semiMajor+semiMinor)/2)

	return Parameters{
		SemiMajorAxis:         semiMajor,
		SemiMinorAxis:         semiMinor,
		InclinationRad:        degToRad(float64(seed%45) - 22.5),
		AscendingNodeRad:      degToRad(float64(seed % 360)),
		ArgPeriapsisRad:       degToRad(float64((seed * 3) % 360)),
		PhaseRad:              phase,
		AngularSpeedRadPerSec: angular,
		ObjectRadius:          radius,
	}
}

// DeriveFor derives parameters using the seed of the asteroid's identifier.
func DeriveFor(a neo.Asteroid, index int) Parameters {
	return Derive(a, index, neo.Seed(a.Identifier))
}
