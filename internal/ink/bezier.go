package ink

import "math"

// Point is a position in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Midpoint returns the point halfway between p and o.
func (p Point) Midpoint(o Point) Point {
	return Point{X: (p.X + o.X) / 2, Y: (p.Y + o.Y) / 2}
}

// Lerp linearly interpolates between p and o.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{X: p.X + (o.X-p.X)*t, Y: p.Y + (o.Y-p.Y)*t}
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// Segment is one fitted cubic Bézier span of a stroke, with the stroke width
// at each end. Control points are always derived by the fitter, never
// supplied by callers.
type Segment struct {
	P0 Point `json:"p0"`
	C1 Point `json:"c1"`
	C2 Point `json:"c2"`
	P3 Point `json:"p3"`

	WidthStart float64 `json:"widthStart"`
	WidthEnd   float64 `json:"widthEnd"`
}

// PointAt evaluates the cubic at parameter t in [0, 1].
func (s Segment) PointAt(t float64) Point {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Point{
		X: b0*s.P0.X + b1*s.C1.X + b2*s.C2.X + b3*s.P3.X,
		Y: b0*s.P0.Y + b1*s.C1.Y + b2*s.C2.Y + b3*s.P3.Y,
	}
}

// Length estimates arc length by walking a fixed 11-point polyline over the
// curve. The estimate only picks the disc count during rendering, so the
// fixed resolution is fine.
func (s Segment) Length() float64 {
	const steps = 10
	var length float64
	prev := s.P0
	for i := 1; i <= steps; i++ {
		p := s.PointAt(float64(i) / steps)
		length += prev.DistanceTo(p)
		prev = p
	}
	return length
}

// IsDegenerate reports whether any control point came out NaN, which happens
// on colinear-degenerate or fully coincident windows. Such segments are
// skipped rather than rendered so NaN coordinates never reach a surface or
// an export.
func (s Segment) IsDegenerate() bool {
	return s.P0.IsNaN() || s.C1.IsNaN() || s.C2.IsNaN() || s.P3.IsNaN()
}

// controlPoint builds the smoothing control point for the middle of three
// consecutive admitted points: blend the two midpoints weighted by the
// segment lengths, then push b away from the blend by the same offset.
// Only needs three local points, so joins stay smooth without re-solving
// the whole stroke.
func controlPoint(a, b, c Point) Point {
	m1 := a.Midpoint(b)
	m2 := b.Midpoint(c)
	l1 := a.DistanceTo(b)
	l2 := b.DistanceTo(c)
	k := l2 / (l1 + l2) // NaN when a==b==c; caught by IsDegenerate
	cm := m1.Lerp(m2, k)
	return Point{X: 2*b.X - cm.X, Y: 2*b.Y - cm.Y}
}
