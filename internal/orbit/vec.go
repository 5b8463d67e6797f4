// Package orbit derives bounded elliptical orbit parameters from normalized
// asteroid records and computes ring geometry and per-frame positions.
//
// Distances are render-space units where Earth has radius 1. All functions
// are pure; the caches in this package are the only shared state.
package orbit

import "math"

// Vec3 represents a 3D point or vector in render space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// clamp bounds v to [lo, hi]. NaN maps to lo so derived values stay finite.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
