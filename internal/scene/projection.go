package scene

import (
	"math"

	"github.com/litescript/ls-orbits/internal/orbit"
)

// CellAspect is the height/width ratio correction for terminal cells, which
// are roughly twice as tall as they are wide.
const CellAspect = 0.5

// Zoom bounds.
const (
	MinZoom = 0.25
	MaxZoom = 8.0
)

// Camera is an orthographic view of the scene. Yaw turns about the world Y
// axis and Pitch tilts the orbit plane toward the viewer.
type Camera struct {
	Yaw   float64
	Pitch float64
	Zoom  float64
}

// DefaultCamera looks at Earth from slightly above the reference plane, as
// seen from (0, 3, 10).
func DefaultCamera() Camera {
	return Camera{Pitch: math.Atan2(3, 10), Zoom: 1}
}

// View transforms a world point into camera space. X is screen right, Y is
// screen up and Z grows toward the viewer.
func (c Camera) View(v orbit.Vec3) orbit.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	x := v.X*cy + v.Z*sy
	z := -v.X*sy + v.Z*cy

	sp, cp := math.Sincos(c.Pitch)
	return orbit.Vec3{X: x, Y: v.Y*cp - z*sp, Z: v.Y*sp + z*cp}
}

// Viewport maps camera space onto a grid of terminal cells.
type Viewport struct {
	Width  int
	Height int
	Camera Camera
}

// Scale returns cells per render unit. At zoom 1 the widest orbit fits the
// viewport in both directions.
func (vp Viewport) Scale() float64 {
	zoom := vp.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	half := math.Min(float64(vp.Width)/2, float64(vp.Height))
	return half / (orbit.MaxSemiMajor * 1.05) * zoom
}

// Project maps a world point to a cell. ok is false when the point falls
// outside the viewport. depth grows toward the viewer.
func (vp Viewport) Project(v orbit.Vec3) (col, row int, depth float64, ok bool) {
	fx, fy, depth := vp.project(v)
	col = int(math.Round(fx))
	row = int(math.Round(fy))
	ok = col >= 0 && col < vp.Width && row >= 0 && row < vp.Height
	return col, row, depth, ok
}

func (vp Viewport) project(v orbit.Vec3) (x, y, depth float64) {
	cv := vp.Camera.View(v)
	s := vp.Scale()
	x = float64(vp.Width)/2 + cv.X*s
	y = float64(vp.Height)/2 - cv.Y*s*CellAspect
	return x, y, cv.Z
}
