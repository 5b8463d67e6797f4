package orbit

import "math"

// DefaultSegments is the number of ring segments used when none is given.
const DefaultSegments = 200

// EllipsePoints is a closed polyline in the orbital plane. The first and last
// points are identical.
type EllipsePoints []Vec3

// SampleEllipse samples an ellipse with semi-axes a (along X) and b (along Z)
// into segments+1 points in the Y=0 plane. segments <= 0 uses DefaultSegments.
func SampleEllipse(a, b float64, segments int) EllipsePoints {
	if segments <= 0 {
		segments = DefaultSegments
	}
	pts := make(EllipsePoints, segments+1)
	for i := 0; i < segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		pts[i] = Vec3{X: math.Cos(theta) * a, Y: 0, Z: math.Sin(theta) * b}
	}
	pts[segments] = pts[0]
	return pts
}

// Position returns a body's plane-local position t seconds after time zero.
// Rotation into world space is the renderer's job.
func Position(p Parameters, t float64) Vec3 {
	theta := p.PhaseRad + t*p.AngularSpeedRadPerSec
	return Vec3{
		X: math.Cos(theta) * p.SemiMajorAxis,
		Y: 0,
		Z: math.Sin(theta) * p.SemiMinorAxis,
	}
}

// RenderState is a body's position at one frame. It is recomputed every tick
// and never stored.
type RenderState struct {
	ElapsedSeconds float64
	Position       Vec3
}

// At returns the render state for elapsed seconds t.
func (p Parameters) At(t float64) RenderState {
	return RenderState{ElapsedSeconds: t, Position: Position(p, t)}
}
