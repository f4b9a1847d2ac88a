package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func horizontalSamples() []Sample {
	return []Sample{
		NewSample(0, 0, 0),
		NewSample(10, 0, 50),
		NewSample(20, 0, 100),
		NewSample(30, 0, 150),
	}
}

func TestFitterNeedsThreePoints(t *testing.T) {
	f := NewFitter(DefaultOptions())
	samples := horizontalSamples()

	_, ok := f.AddPoint(samples[0])
	assert.False(t, ok)
	_, ok = f.AddPoint(samples[1])
	assert.False(t, ok)
	_, ok = f.AddPoint(samples[2])
	assert.True(t, ok, "third point duplicates the first and emits")
}

func TestFitterSegmentSpans(t *testing.T) {
	f := NewFitter(DefaultOptions())
	samples := horizontalSamples()

	f.AddPoint(samples[0])
	f.AddPoint(samples[1])

	// The third sample triggers the duplicate-first-point rule, so the first
	// segment spans sample 0 -> sample 1.
	seg, ok := f.AddPoint(samples[2])
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 0}, seg.P0)
	assert.Equal(t, Point{X: 10, Y: 0}, seg.P3)

	// The fourth call emits exactly one segment spanning samples 1 -> 2.
	seg, ok = f.AddPoint(samples[3])
	require.True(t, ok)
	assert.Equal(t, Point{X: 10, Y: 0}, seg.P0)
	assert.Equal(t, Point{X: 20, Y: 0}, seg.P3)
}

func TestFitterWidthBounds(t *testing.T) {
	opts := DefaultOptions()
	f := NewFitter(opts)

	// Mix of slow and fast motion; every emitted width must stay in range.
	samples := []Sample{
		NewSample(0, 0, 0),
		NewSample(6, 0, 500),    // slow
		NewSample(200, 0, 510),  // very fast
		NewSample(207, 0, 1000), // slow again
		NewSample(400, 50, 1001),
		NewSample(406, 55, 2000),
	}
	for _, s := range samples {
		seg, ok := f.AddPoint(s)
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, seg.WidthStart, opts.MinWidth)
		assert.LessOrEqual(t, seg.WidthStart, opts.MaxWidth)
		assert.GreaterOrEqual(t, seg.WidthEnd, opts.MinWidth)
		assert.LessOrEqual(t, seg.WidthEnd, opts.MaxWidth)
	}
}

func TestFitterWidthContinuity(t *testing.T) {
	f := NewFitter(DefaultOptions())

	var prev *Segment
	for i := 0; i < 20; i++ {
		s := NewSample(float64(i)*10, float64(i%3)*7, int64(i)*40)
		seg, ok := f.AddPoint(s)
		if !ok {
			continue
		}
		if prev != nil {
			assert.Equal(t, prev.WidthEnd, seg.WidthStart,
				"segment %d must start at the previous end width", i)
		}
		cp := seg
		prev = &cp
	}
	require.NotNil(t, prev, "expected at least one segment")
}

func TestFitterZeroTimeDelta(t *testing.T) {
	opts := DefaultOptions()
	f := NewFitter(opts)

	// Identical timestamps mean zero velocity, which maps to the maximum
	// width. No division fault, no NaN.
	var last Segment
	emitted := false
	for _, s := range []Sample{
		NewSample(0, 0, 100),
		NewSample(10, 0, 100),
		NewSample(20, 0, 100),
	} {
		if seg, ok := f.AddPoint(s); ok {
			last = seg
			emitted = true
		}
	}
	require.True(t, emitted)
	assert.Equal(t, opts.MaxWidth, last.WidthEnd)
}

func TestFitterFirstWidthStartsMidRange(t *testing.T) {
	opts := DefaultOptions()
	f := NewFitter(opts)
	samples := horizontalSamples()

	f.AddPoint(samples[0])
	f.AddPoint(samples[1])
	seg, ok := f.AddPoint(samples[2])
	require.True(t, ok)
	assert.Equal(t, (opts.MinWidth+opts.MaxWidth)/2, seg.WidthStart)
}

func TestFitterResetClearsState(t *testing.T) {
	f := NewFitter(DefaultOptions())
	for _, s := range horizontalSamples() {
		f.AddPoint(s)
	}
	f.Reset()
	_, ok := f.AddPoint(NewSample(0, 0, 0))
	assert.False(t, ok, "window must be empty after reset")
}
