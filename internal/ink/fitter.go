package ink

import "math"

// Widths carries the interpolated stroke width at both ends of a segment.
type Widths struct {
	Start float64
	End   float64
}

// Fitter converts a stream of admitted samples into cubic Bézier segments.
// It keeps a rolling window of the most recent samples plus the smoothed
// velocity state; both are reset at the start of every stroke. All time
// comes from the samples themselves, so feeding the same sequence twice
// yields the same segments.
type Fitter struct {
	opts   Options
	window []Sample

	lastVelocity float64
	lastWidth    float64
}

// NewFitter returns a fitter with normalized options, ready for a stroke.
func NewFitter(opts Options) *Fitter {
	f := &Fitter{
		opts:   opts.normalize(),
		window: make([]Sample, 0, 4),
	}
	f.Reset()
	return f
}

// Reset prepares the fitter for a new stroke: empty window, zero smoothed
// velocity, and a mid-range starting width.
func (f *Fitter) Reset() {
	f.window = f.window[:0]
	f.lastVelocity = 0
	f.lastWidth = (f.opts.MinWidth + f.opts.MaxWidth) / 2
}

// AddPoint pushes one admitted sample into the window and, once enough
// samples are buffered, emits the segment spanning the window's second and
// third points. The first two samples of a stroke emit nothing. On the third
// sample the first point is duplicated to the front so the first visible
// segment appears without lag. Degenerate segments (NaN control points) are
// fitted but not emitted; the velocity state still advances so width
// continuity survives the skip.
func (f *Fitter) AddPoint(s Sample) (Segment, bool) {
	f.window = append(f.window, s)
	if len(f.window) <= 2 {
		return Segment{}, false
	}
	if len(f.window) == 3 {
		// Duplicate the first point so the stroke gets a visible segment as
		// early as possible instead of lagging a full sample behind.
		f.window = append(f.window, Sample{})
		copy(f.window[1:], f.window[:3])
	}

	widths := f.widthsFor(f.window[1], f.window[2])
	seg := fitSegment(f.window, widths)

	// Slide the window: the oldest sample has served its purpose.
	copy(f.window, f.window[1:])
	f.window = f.window[:3]

	if seg.IsDegenerate() {
		return Segment{}, false
	}
	return seg, true
}

// widthsFor runs the velocity model between two consecutive admitted
// samples. The smoothed velocity is an exponential moving average and the
// width is inversely proportional to it, clamped at MinWidth. The new
// segment always starts at the previous segment's end width; a stroke must
// never jump in width at a segment boundary.
func (f *Fitter) widthsFor(start, end Sample) Widths {
	alpha := f.opts.VelocityFilterWeight
	velocity := alpha*end.VelocityFrom(start) + (1-alpha)*f.lastVelocity

	newWidth := math.Max(f.opts.MaxWidth/(velocity+1), f.opts.MinWidth)

	w := Widths{Start: f.lastWidth, End: newWidth}
	f.lastVelocity = velocity
	f.lastWidth = newWidth
	return w
}

// fitSegment builds the cubic spanning window[1] -> window[2], with control
// points derived from the two overlapping triples.
func fitSegment(window []Sample, widths Widths) Segment {
	p0 := Point{X: window[0].X, Y: window[0].Y}
	p1 := Point{X: window[1].X, Y: window[1].Y}
	p2 := Point{X: window[2].X, Y: window[2].Y}
	p3 := Point{X: window[3].X, Y: window[3].Y}

	return Segment{
		P0:         p1,
		C1:         controlPoint(p0, p1, p2),
		C2:         controlPoint(p1, p2, p3),
		P3:         p2,
		WidthStart: widths.Start,
		WidthEnd:   widths.End,
	}
}
