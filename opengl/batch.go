package opengl

import (
	"math"

	"github.com/PrincetonUniversity/ants"
)

// stride is the number of float32 per vertex: position (x, y) then color (r, g, b, a).
const stride = 6

// circleSegments is the number of line segments approximating a circle.
const circleSegments = 16

// A Batch is an ants.Sink collecting the vertices of a frame
// so they can be sent to OpenGL in two draw calls.
type Batch struct {
	Clear      bool       // the frame starts with an opaque background
	ClearColor ants.Color // color of that background
	Tris       []float32  // vertices drawn as GL_TRIANGLES
	Lines      []float32  // vertices drawn as GL_LINES
}

// Reset empties the batch, keeping its buffers.
func (b *Batch) Reset() {
	b.Clear = false
	b.Tris = b.Tris[:0]
	b.Lines = b.Lines[:0]
}

// Background clears the frame. Anything drawn before is discarded.
func (b *Batch) Background(c ants.Color) {
	b.Reset()
	b.Clear = true
	b.ClearColor = c
}

// Overlay draws r as two translucent triangles.
func (b *Batch) Overlay(r ants.Rect, c ants.Color) {
	p0, p2 := r.Min, r.Max
	p1, p3 := ants.Vec2{p2[0], p0[1]}, ants.Vec2{p0[0], p2[1]}
	for _, p := range [...]ants.Vec2{p0, p1, p2, p0, p2, p3} {
		b.Tris = vertex(b.Tris, p, c)
	}
}

// Triangle adds a filled triangle.
func (b *Batch) Triangle(t ants.Triangle, c ants.Color) {
	for _, p := range t.World() {
		b.Tris = vertex(b.Tris, p, c)
	}
}

// Line adds a line segment.
func (b *Batch) Line(p, q ants.Vec2, c ants.Color) {
	b.Lines = vertex(b.Lines, p, c)
	b.Lines = vertex(b.Lines, q, c)
}

// Circle adds the outline of a circle as line segments.
func (b *Batch) Circle(center ants.Vec2, radius float64, c ants.Color) {
	prev := center.Add(ants.Vec2{radius, 0})
	for i := 1; i <= circleSegments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / circleSegments)
		p := center.Add(ants.Vec2{radius * cos, radius * sin})
		b.Line(prev, p, c)
		prev = p
	}
}

// vertex appends a vertex to buf.
func vertex(buf []float32, p ants.Vec2, c ants.Color) []float32 {
	return append(buf, float32(p[0]), float32(p[1]), c[0], c[1], c[2], c[3])
}
