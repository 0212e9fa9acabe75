package ants

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// A Vec2 is a 2D vector or point in world coordinates.
type Vec2 = mgl64.Vec2

// epsilon is the smallest magnitude a vector can have and still be normalized.
const epsilon = 1e-9

// Rotate rotates v by θ radians counter-clockwise.
func Rotate(v Vec2, θ float64) Vec2 {
	return mgl64.Rotate2D(θ).Mul2x1(v)
}

// Normalize returns v scaled to unit length.
// If v is too short, infinite or NaN, fallback is returned instead.
func Normalize(v, fallback Vec2) Vec2 {
	n := v.Len()
	if n < epsilon || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return v.Mul(1 / n)
}

// Dist returns the distance between a and b.
func Dist(a, b Vec2) float64 {
	return math.Sqrt(Dist2(a, b))
}

// Dist2 returns the squared distance between a and b.
func Dist2(a, b Vec2) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	return dx*dx + dy*dy
}

// Angle returns the angle of v with the x axis, between -pi and pi.
func Angle(v Vec2) float64 {
	return math.Atan2(v[1], v[0])
}

// A Segment is a finite line segment from A to B.
type Segment struct {
	A Vec2
	B Vec2
}

// Point returns the point at position (1-t) * A + t * B.
func (s Segment) Point(t float64) Vec2 {
	return s.A.Mul(1 - t).Add(s.B.Mul(t))
}

// DistToPoint returns the shortest distance from p to any point of the segment.
func (s Segment) DistToPoint(p Vec2) float64 {
	u := s.B.Sub(s.A)
	l2 := u.LenSqr()
	if l2 < epsilon*epsilon {
		return Dist(s.A, p)
	}
	// project p onto the segment and clamp to its ends
	t := p.Sub(s.A).Dot(u) / l2
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return Dist(s.Point(t), p)
}

// A Rect is an axis-aligned rectangle.
// Min is the bottom left corner, Max is the top right corner.
type Rect struct {
	Min Vec2
	Max Vec2
}

// Centered returns a w by h rectangle centered on the origin.
func Centered(w, h float64) Rect {
	return Rect{Min: Vec2{-w / 2, -h / 2}, Max: Vec2{w / 2, h / 2}}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// Center returns the center of r.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Size returns the width and height of r.
func (r Rect) Size() (w, h float64) {
	return r.Max[0] - r.Min[0], r.Max[1] - r.Min[1]
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
