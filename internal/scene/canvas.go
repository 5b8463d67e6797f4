package scene

import (
	"math"
	"strings"

	"github.com/litescript/ls-orbits/internal/orbit"
)

// Layer orders what wins when two glyphs land on the same cell.
type Layer int

const (
	LayerEmpty Layer = iota
	LayerRing
	LayerEarth
	LayerIndicator
	LayerBody
	LayerLabel
)

// Glyphs drawn on the canvas.
const (
	GlyphRing         = '·'
	GlyphEarth        = '⊕'
	GlyphEarthDisc    = 'o'
	GlyphBody         = '•'
	GlyphBodySelected = '●'
	GlyphIndicatorL   = '‹'
	GlyphIndicatorR   = '›'
)

// Cell is one character of the canvas.
type Cell struct {
	Glyph rune
	Color string
	Layer Layer
	depth float64
}

// Canvas is a character raster of the scene.
type Canvas struct {
	Width  int
	Height int
	Cells  [][]Cell
}

// RasterOptions controls optional canvas content.
type RasterOptions struct {
	// Indicators brackets each body with its hazard indicator color.
	Indicators bool
	// Labels writes the selected body's name beside it.
	Labels bool
}

// NewCanvas creates an empty canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{Width: width, Height: height, Cells: make([][]Cell, height)}
	for y := range c.Cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = Cell{Glyph: ' '}
		}
		c.Cells[y] = row
	}
	return c
}

// Set writes a glyph if it outranks the cell's current content: a higher
// layer wins, and within a layer the point nearer the viewer wins.
func (c *Canvas) Set(col, row int, glyph rune, color string, layer Layer, depth float64) {
	if col < 0 || col >= c.Width || row < 0 || row >= c.Height {
		return
	}
	cur := &c.Cells[row][col]
	if cur.Layer > layer || (cur.Layer == layer && cur.Glyph != ' ' && cur.depth > depth) {
		return
	}
	*cur = Cell{Glyph: glyph, Color: color, Layer: layer, depth: depth}
}

// String returns the canvas as plain text, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for y, row := range c.Cells {
		for _, cell := range row {
			b.WriteRune(cell.Glyph)
		}
		if y < len(c.Cells)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// Rasterize draws Earth, every body's ring and every body's position at t
// seconds onto a new canvas.
func Rasterize(bodies []Body, t float64, vp Viewport, opts RasterOptions) *Canvas {
	c := NewCanvas(vp.Width, vp.Height)
	if vp.Width == 0 || vp.Height == 0 {
		return c
	}

	for _, b := range bodies {
		drawRing(c, b, vp)
	}
	drawEarth(c, vp)

	for _, b := range bodies {
		col, row, depth, ok := vp.Project(b.WorldPosition(t))
		if !ok {
			continue
		}
		if opts.Indicators {
			c.Set(col-1, row, GlyphIndicatorL, b.IndicatorColor, LayerIndicator, depth)
			c.Set(col+1, row, GlyphIndicatorR, b.IndicatorColor, LayerIndicator, depth)
		}
		glyph := GlyphBody
		if b.IsSelected {
			glyph = GlyphBodySelected
		}
		c.Set(col, row, glyph, b.BodyColor, LayerBody, depth)

		if opts.Labels && b.IsSelected {
			drawLabel(c, col+3, row, b.Name, b.BodyColor)
		}
	}
	return c
}

// drawRing connects consecutive ring points so the orbit stays continuous at
// any zoom.
func drawRing(c *Canvas, b Body, vp Viewport) {
	if len(b.Ring) < 2 {
		return
	}
	px, py, pd := vp.project(b.Rotation.Apply(b.Ring[0]))
	for _, p := range b.Ring[1:] {
		x, y, d := vp.project(b.Rotation.Apply(p))
		steps := int(math.Ceil(math.Max(math.Abs(x-px), math.Abs(y-py))))
		if steps < 1 {
			steps = 1
		}
		if steps > c.Width+c.Height {
			steps = c.Width + c.Height
		}
		for i := 0; i < steps; i++ {
			f := float64(i) / float64(steps)
			col := int(math.Round(px + (x-px)*f))
			row := int(math.Round(py + (y-py)*f))
			c.Set(col, row, GlyphRing, b.RingColor, LayerRing, pd+(d-pd)*f)
		}
		px, py, pd = x, y, d
	}
}

func drawEarth(c *Canvas, vp Viewport) {
	cx, cy, _ := vp.project(orbit.Vec3{})
	r := EarthRadius * vp.Scale()
	ry := r * CellAspect

	for row := int(math.Floor(cy - ry)); row <= int(math.Ceil(cy+ry)); row++ {
		for col := int(math.Floor(cx - r)); col <= int(math.Ceil(cx+r)); col++ {
			dx := (float64(col) - cx) / math.Max(r, 0.5)
			dy := (float64(row) - cy) / math.Max(ry, 0.5)
			if dx*dx+dy*dy <= 1 {
				c.Set(col, row, GlyphEarthDisc, EarthColor, LayerEarth, 0)
			}
		}
	}
	c.Set(int(math.Round(cx)), int(math.Round(cy)), GlyphEarth, EarthColor, LayerEarth, 1)
}

func drawLabel(c *Canvas, col, row int, text, color string) {
	for _, r := range text {
		if col >= c.Width {
			return
		}
		c.Set(col, row, r, color, LayerLabel, 0)
		col++
	}
}
