package ink

// SegmentSink receives fitted curve segments as they are emitted. The live
// renderer and the vector exporters all implement this, so one traversal
// serves every output target.
type SegmentSink interface {
	DrawSegment(seg Segment, color string)
}

// DotSink receives isolated dots: the first admitted sample of every group.
type DotSink interface {
	DrawDot(x, y, radius float64, color string)
}

// Recorder owns the ordered collection of point groups and drives the
// fitter. One gesture is active at a time: BeginStroke opens a group,
// AddSample feeds it, EndStroke freezes it. Undo and Clear truncate.
// The recorder is the only owner of the collection; callers get copies.
type Recorder struct {
	opts   Options
	groups []PointGroup
	fitter *Fitter
	active bool

	// Index of the group an active stroke writes to. Remote groups can
	// arrive mid-stroke, so "the last group" and "the active group" are
	// not the same thing.
	activeIdx int
}

// NewRecorder returns an empty recorder with normalized options.
func NewRecorder(opts Options) *Recorder {
	o := opts.normalize()
	return &Recorder{
		opts:   o,
		fitter: NewFitter(o),
	}
}

// Options returns the normalized engine options in effect.
func (r *Recorder) Options() Options {
	return r.opts
}

// BeginStroke opens a new point group and resets the fitter and velocity
// state. A second BeginStroke while a stroke is active is ignored; only one
// gesture runs at a time.
func (r *Recorder) BeginStroke(color string) {
	if r.active {
		return
	}
	r.groups = append(r.groups, PointGroup{ID: NewGroupID(), Color: color})
	r.activeIdx = len(r.groups) - 1
	r.fitter.Reset()
	r.active = true
}

// AddSample runs the admission filter and, if the sample passes, records it
// and feeds the fitter. The first admitted sample of a group is drawn as a
// dot; later samples draw whatever segment the fitter emits. Rejected
// samples are dropped entirely: they reach neither the screen nor the data.
func (r *Recorder) AddSample(s Sample, segs SegmentSink, dots DotSink) {
	if !r.active {
		return
	}
	group := &r.groups[r.activeIdx]

	if len(group.Points) > 0 {
		last := group.Points[len(group.Points)-1]
		if s.DistanceTo(last) <= r.opts.MinDistance {
			return
		}
	}

	first := len(group.Points) == 0
	group.Points = append(group.Points, s)

	seg, ok := r.fitter.AddPoint(s)
	if first {
		if dots != nil {
			dots.DrawDot(s.X, s.Y, r.opts.DotSize, group.Color)
		}
		return
	}
	if ok && segs != nil {
		segs.DrawSegment(seg, group.Color)
	}
}

// EndStroke freezes the active group and returns a copy of it for broadcast
// or persistence. A gesture that admitted no samples leaves nothing behind:
// the empty group is removed and ok is false. Ending with no active stroke
// is a no-op.
func (r *Recorder) EndStroke() (PointGroup, bool) {
	if !r.active {
		return PointGroup{}, false
	}
	r.active = false
	if len(r.groups[r.activeIdx].Points) == 0 {
		r.groups = append(r.groups[:r.activeIdx], r.groups[r.activeIdx+1:]...)
		return PointGroup{}, false
	}
	return r.groups[r.activeIdx].Clone(), true
}

// LastGroup returns a copy of the most recent group, typically called right
// after EndStroke to broadcast or persist the finished gesture.
func (r *Recorder) LastGroup() (PointGroup, bool) {
	if len(r.groups) == 0 {
		return PointGroup{}, false
	}
	return r.groups[len(r.groups)-1].Clone(), true
}

// Undo drops the last group. Undoing an empty collection is a no-op. The
// caller re-renders the remaining collection with Replay against a cleared
// surface.
func (r *Recorder) Undo() {
	if len(r.groups) == 0 {
		return
	}
	r.groups = r.groups[:len(r.groups)-1]
	r.active = false
}

// Clear empties the collection.
func (r *Recorder) Clear() {
	r.groups = nil
	r.active = false
	r.fitter.Reset()
}

// IsEmpty reports whether the collection holds no groups.
func (r *Recorder) IsEmpty() bool {
	return len(r.groups) == 0
}

// ToData returns a deep copy of the collection, the canonical serializable
// form of the drawing.
func (r *Recorder) ToData() []PointGroup {
	out := make([]PointGroup, len(r.groups))
	for i, g := range r.groups {
		out[i] = g.Clone()
	}
	return out
}

// FromData replaces the collection and replays it through the sinks, so a
// restored drawing looks exactly like the live one did.
func (r *Recorder) FromData(groups []PointGroup, segs SegmentSink, dots DotSink) {
	r.groups = make([]PointGroup, len(groups))
	for i, g := range groups {
		r.groups[i] = g.Clone()
	}
	r.active = false
	r.Replay(segs, dots)
}

// Append adds an already-finished group (a remote peer's gesture or a loaded
// file entry) and replays just that group through the sinks. A group arriving
// while a stroke is in progress slots in before the active group, which keeps
// the stroke writable at its tracked index.
func (r *Recorder) Append(g PointGroup, segs SegmentSink, dots DotSink) {
	if r.active {
		r.groups = append(r.groups, PointGroup{})
		copy(r.groups[r.activeIdx+1:], r.groups[r.activeIdx:])
		r.groups[r.activeIdx] = g.Clone()
		r.activeIdx++
	} else {
		r.groups = append(r.groups, g.Clone())
	}
	replayGroup(NewFitter(r.opts), g, r.opts, segs, dots)
}

// Replay feeds every stored group through a reset fitter in order. Samples
// carry their own timestamps, so the emitted segments depend only on the
// stored data: two replays of the same collection are identical, and both
// match the live drawing.
func (r *Recorder) Replay(segs SegmentSink, dots DotSink) {
	// A dedicated fitter keeps replay from clobbering a live stroke's state.
	f := NewFitter(r.opts)
	for _, g := range r.groups {
		replayGroup(f, g, r.opts, segs, dots)
	}
}

func replayGroup(f *Fitter, g PointGroup, opts Options, segs SegmentSink, dots DotSink) {
	if len(g.Points) == 0 {
		return
	}
	f.Reset()
	for i, s := range g.Points {
		seg, ok := f.AddPoint(s)
		if i == 0 {
			if dots != nil {
				dots.DrawDot(s.X, s.Y, opts.DotSize, g.Color)
			}
			continue
		}
		if ok && segs != nil {
			segs.DrawSegment(seg, g.Color)
		}
	}
}
