package render

import (
	"math"

	"InkBoard/internal/ink"
)

// Renderer walks fitted segments and paints them as a union of overlapping
// filled discs, which is how the stroke gets variable width without real
// outline geometry. It implements ink.SegmentSink and ink.DotSink, so it
// plugs straight into the recorder's live and replay paths.
type Renderer struct {
	surface Surface
	opts    ink.Options
}

// NewRenderer binds a renderer to a surface.
func NewRenderer(surface Surface, opts ink.Options) *Renderer {
	return &Renderer{surface: surface, opts: opts}
}

// DrawSegment paints one fitted segment. The disc count is twice the
// estimated arc length; arc length alone leaves visible gaps between discs
// at high curvature. The width blend uses t³, the cubic end weight, rather
// than linear t; stored drawings and their exports depend on that ramp, so
// it must not be "fixed" to linear.
func (r *Renderer) DrawSegment(seg ink.Segment, colorName string) {
	steps := int(math.Floor(seg.Length())) * 2
	widthDelta := seg.WidthEnd - seg.WidthStart

	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		p := seg.PointAt(t)
		width := math.Min(seg.WidthStart+t*t*t*widthDelta, r.opts.MaxWidth)
		r.surface.FillDisc(p.X, p.Y, width, colorName)
	}
}

// DrawDot paints an isolated dot.
func (r *Renderer) DrawDot(x, y, radius float64, colorName string) {
	r.surface.FillDisc(x, y, radius, colorName)
}

// Clear clears the underlying surface.
func (r *Renderer) Clear() {
	r.surface.Clear()
}
