package ink

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentPointAtEndpoints(t *testing.T) {
	seg := Segment{
		P0: Point{X: 1, Y: 2},
		C1: Point{X: 3, Y: 4},
		C2: Point{X: 5, Y: 6},
		P3: Point{X: 7, Y: 8},
	}
	assert.Equal(t, seg.P0, seg.PointAt(0))
	assert.Equal(t, seg.P3, seg.PointAt(1))
}

func TestSegmentLengthStraightLine(t *testing.T) {
	// Control points on the chord keep the curve a straight line, so the
	// 11-point polyline estimate is exact.
	seg := Segment{
		P0: Point{X: 0, Y: 0},
		C1: Point{X: 10, Y: 0},
		C2: Point{X: 20, Y: 0},
		P3: Point{X: 30, Y: 0},
	}
	assert.InDelta(t, 30.0, seg.Length(), 1e-9)
}

func TestSegmentLengthCurved(t *testing.T) {
	// A bent curve is longer than its chord but shorter than its control
	// polygon.
	seg := Segment{
		P0: Point{X: 0, Y: 0},
		C1: Point{X: 0, Y: 10},
		C2: Point{X: 10, Y: 10},
		P3: Point{X: 10, Y: 0},
	}
	chord := seg.P0.DistanceTo(seg.P3)
	polygon := seg.P0.DistanceTo(seg.C1) + seg.C1.DistanceTo(seg.C2) + seg.C2.DistanceTo(seg.P3)
	length := seg.Length()
	assert.Greater(t, length, chord)
	assert.Less(t, length, polygon)
}

func TestControlPointWeightsTowardLongerSide(t *testing.T) {
	// Symmetric neighbors put the control point on the far side of b from
	// the midpoint blend.
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}
	c := Point{X: 20, Y: 0}
	cp := controlPoint(a, b, c)
	assert.InDelta(t, 10.0, cp.X, 1e-9)
	assert.InDelta(t, 0.0, cp.Y, 1e-9)
}

func TestControlPointCoincidentTripleIsNaN(t *testing.T) {
	p := Point{X: 5, Y: 5}
	cp := controlPoint(p, p, p)
	assert.True(t, cp.IsNaN())
}

func TestSegmentIsDegenerate(t *testing.T) {
	ok := Segment{P0: Point{}, C1: Point{X: 1}, C2: Point{X: 2}, P3: Point{X: 3}}
	assert.False(t, ok.IsDegenerate())

	bad := ok
	bad.C2 = Point{X: math.NaN(), Y: 0}
	assert.True(t, bad.IsDegenerate())
}
