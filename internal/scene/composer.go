// Package scene turns normalized asteroid entries into renderable bodies:
// orbit rings, colors, orientation and per-frame world positions. It also
// formats the HUD, projects the scene onto a character canvas and exports
// JSON snapshots.
package scene

import (
	"math"

	"github.com/litescript/ls-orbits/internal/hazard"
	"github.com/litescript/ls-orbits/internal/neo"
	"github.com/litescript/ls-orbits/internal/orbit"
)

// Scene colors.
const (
	RingHazardColor = "#ff5b5b"
	RingSafeColor   = "#cfcfcf"

	BodySelectedColor = "#ffcc66"
	BodyDefaultColor  = "#b38b6d"

	IndicatorHazardColor = "#ff5555"
	IndicatorSafeColor   = "#66ccff"

	EarthColor = "#3d7eff"
)

// EarthRadius is Earth's radius in render units.
const EarthRadius = 1.0

// Rotation is an Euler XYZ orientation in radians: the orbit plane is rotated
// about Z first, then Y, then X.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// OrbitRotation returns the group rotation for orbit parameters:
// inclination about X, ascending node about Y, argument of periapsis about Z.
func OrbitRotation(p orbit.Parameters) Rotation {
	return Rotation{X: p.InclinationRad, Y: p.AscendingNodeRad, Z: p.ArgPeriapsisRad}
}

// Apply rotates v from the orbit plane into world space.
func (r Rotation) Apply(v orbit.Vec3) orbit.Vec3 {
	sz, cz := math.Sincos(r.Z)
	v = orbit.Vec3{X: v.X*cz - v.Y*sz, Y: v.X*sz + v.Y*cz, Z: v.Z}

	sy, cy := math.Sincos(r.Y)
	v = orbit.Vec3{X: v.X*cy + v.Z*sy, Y: v.Y, Z: -v.X*sy + v.Z*cy}

	sx, cx := math.Sincos(r.X)
	return orbit.Vec3{X: v.X, Y: v.Y*cx - v.Z*sx, Z: v.Y*sx + v.Z*cx}
}

// Body is one renderable asteroid.
type Body struct {
	ID   string
	Name string

	// Index is the body's position among the visible bodies and drives its
	// orbit shape. CatalogIndex is its position in the full catalog.
	Index        int
	CatalogIndex int

	Asteroid neo.Asteroid
	Params   orbit.Parameters
	Hazard   hazard.Classification
	Rotation Rotation

	// Ring is the plane-local orbit polyline. It is shared with the ring
	// cache and must not be modified.
	Ring orbit.EllipsePoints

	RingColor      string
	BodyColor      string
	IndicatorColor string
	BodyRadius     float64
	IsSelected     bool
}

// LocalPosition returns the body's position in its orbit plane at t seconds.
func (b Body) LocalPosition(t float64) orbit.Vec3 {
	return orbit.Position(b.Params, t)
}

// WorldPosition returns the body's rotated position at t seconds.
func (b Body) WorldPosition(t float64) orbit.Vec3 {
	return b.Rotation.Apply(orbit.Position(b.Params, t))
}

// Composer builds bodies from entries, memoizing derivation and ring sampling.
// It is safe for concurrent use.
type Composer struct {
	params *orbit.ParamCache
	rings  *orbit.RingCache
}

// NewComposer creates a composer sampling rings with the given segment count.
// observer receives cache outcomes and may be nil.
func NewComposer(segments int, observer orbit.CacheObserver) *Composer {
	return &Composer{
		params: orbit.NewParamCache(0, observer),
		rings:  orbit.NewRingCache(segments, 0, observer),
	}
}

// Segments returns the ring segment count.
func (c *Composer) Segments() int {
	return c.rings.Segments()
}

// Compose builds bodies for the visible entries, in order. A body is marked
// selected only when it is the single visible entry.
func (c *Composer) Compose(visible []neo.Entry) []Body {
	selected := len(visible) == 1
	bodies := make([]Body, 0, len(visible))
	for i, e := range visible {
		bodies = append(bodies, c.body(e, i, selected))
	}
	return bodies
}

func (c *Composer) body(e neo.Entry, position int, selected bool) Body {
	p := c.params.Get(e.Positioned(position), position)
	class := hazard.Classify(e.Asteroid.Hazardous)

	b := Body{
		ID:           e.ID(),
		Name:         e.Asteroid.DisplayName(),
		Index:        position,
		CatalogIndex: e.Index,
		Asteroid:     e.Asteroid,
		Params:       p,
		Hazard:       class,
		Rotation:     OrbitRotation(p),
		Ring:         c.rings.Get(p.SemiMajorAxis, p.SemiMinorAxis),
		BodyRadius:   p.ObjectRadius,
		IsSelected:   selected,

		RingColor:      RingSafeColor,
		BodyColor:      BodyDefaultColor,
		IndicatorColor: IndicatorSafeColor,
	}
	if class.ColorKey == hazard.ColorHazard {
		b.RingColor = RingHazardColor
		b.IndicatorColor = IndicatorHazardColor
	}
	if selected {
		b.BodyColor = BodySelectedColor
	}
	return b
}
