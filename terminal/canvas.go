package terminal

import (
	"math"

	"github.com/PrincetonUniversity/ants"
	"github.com/gdamore/tcell/v2"
)

// Size of a terminal cell in world units.
// Cells are about twice as high as they are wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// fadeOut is the distance between the color of a glyph and its background
// under which the glyph is erased.
const fadeOut = 0.05

// arrows are the glyphs of agents heading east, north east, north, etc.
var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// Glyphs of the debug primitives.
const (
	rayGlyph    = '·'
	circleGlyph = 'o'
)

type cell struct {
	r      rune
	fg, bg ants.Color
}

// A Canvas is an ants.Sink drawing to a grid of terminal cells.
// The world origin is at the center of the grid, y pointing up.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas returns a blank canvas of w×h cells.
func NewCanvas(w, h int) *Canvas {
	c := new(Canvas)
	c.Resize(w, h)
	return c
}

// Resize changes the size of the canvas and blanks it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.w, c.h = w, h
	c.cells = make([]cell, w*h)
	c.Background(ants.BackgroundColor)
}

// Size returns the size of the canvas in cells.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Bounds returns the area covered by the canvas in world coordinates.
func (c *Canvas) Bounds() ants.Rect {
	return ants.Centered(float64(c.w)*CellWidth, float64(c.h)*CellHeight)
}

// Cell returns the cell containing p and whether it lies on the canvas.
func (c *Canvas) Cell(p ants.Vec2) (x, y int, ok bool) {
	b := c.Bounds()
	fx := math.Floor((p[0] - b.Min[0]) / CellWidth)
	fy := math.Floor((b.Max[1] - p[1]) / CellHeight)
	if !(fx >= 0 && fx < float64(c.w) && fy >= 0 && fy < float64(c.h)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// World returns the center of cell (x, y) in world coordinates.
func (c *Canvas) World(x, y int) ants.Vec2 {
	b := c.Bounds()
	return ants.Vec2{
		b.Min[0] + (float64(x)+0.5)*CellWidth,
		b.Max[1] - (float64(y)+0.5)*CellHeight,
	}
}

// Glyph returns the rune at cell (x, y), or 0 outside of the canvas.
func (c *Canvas) Glyph(x, y int) rune {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return 0
	}
	return c.cells[y*c.w+x].r
}

func (c *Canvas) at(p ants.Vec2) *cell {
	x, y, ok := c.Cell(p)
	if !ok {
		return nil
	}
	return &c.cells[y*c.w+x]
}

// Background blanks the canvas with an opaque color.
func (c *Canvas) Background(col ants.Color) {
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', fg: col, bg: col}
	}
}

// Overlay blends col over the cells of r. Glyphs fade along with the
// background and are erased once they can no longer be told apart from it.
func (c *Canvas) Overlay(r ants.Rect, col ants.Color) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if !r.Contains(c.World(x, y)) {
				continue
			}
			e := &c.cells[y*c.w+x]
			e.bg = col.Over(e.bg)
			e.fg = col.Over(e.fg)
			if e.r != ' ' && distance(e.fg, e.bg) < fadeOut {
				e.r, e.fg = ' ', e.bg
			}
		}
	}
}

// Triangle draws an arrow pointing along the rotation of t in the cell of its position.
func (c *Canvas) Triangle(t ants.Triangle, col ants.Color) {
	e := c.at(t.Pos)
	if e == nil {
		return
	}
	e.r = arrow(t.Rotation)
	e.fg = col.Over(e.bg)
}

// Line marks the blank cells crossed by segment ab.
func (c *Canvas) Line(a, b ants.Vec2, col ants.Color) {
	d := b.Sub(a)
	n := int(math.Ceil(math.Max(math.Abs(d[0])/CellWidth, math.Abs(d[1])/CellHeight)))
	for i := 0; i <= n; i++ {
		t := 1.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		c.mark(a.Add(d.Mul(t)), rayGlyph, col)
	}
}

// Circle marks the blank cells crossed by the outline of a circle.
func (c *Canvas) Circle(center ants.Vec2, radius float64, col ants.Color) {
	const n = 16
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / n)
		c.mark(center.Add(ants.Vec2{radius * cos, radius * sin}), circleGlyph, col)
	}
}

// mark draws r at p if the cell is blank.
func (c *Canvas) mark(p ants.Vec2, r rune, col ants.Color) {
	e := c.at(p)
	if e == nil || e.r != ' ' {
		return
	}
	e.r = r
	e.fg = col.Over(e.bg)
}

// Show copies the canvas to the top left corner of screen.
func (c *Canvas) Show(s tcell.Screen) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			e := c.cells[y*c.w+x]
			st := tcell.StyleDefault.Foreground(rgb(e.fg)).Background(rgb(e.bg))
			s.SetContent(x, y, e.r, nil, st)
		}
	}
}

// arrow returns the arrow closest to angle θ.
func arrow(θ float64) rune {
	i := int(math.Round(θ/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

// rgb converts an opaque color to a terminal color.
func rgb(c ants.Color) tcell.Color {
	q := func(x float32) int32 {
		return int32(math.Round(float64(x) * 255))
	}
	return tcell.NewRGBColor(q(c[0]), q(c[1]), q(c[2]))
}

// distance returns the largest difference between the components of two colors.
func distance(a, b ants.Color) float32 {
	var d float32
	for i := 0; i < 3; i++ {
		if x := float32(math.Abs(float64(a[i] - b[i]))); x > d {
			d = x
		}
	}
	return d
}
