package ink

import (
	"math"

	"github.com/google/uuid"
)

// ChannelUnknown marks an optional device channel the input source did not
// supply (no pen hardware, no tilt sensor, ...).
const ChannelUnknown = -1

// Sample is one captured raw input observation: position, capture time in
// milliseconds, and whatever extra channels the device provides. A Sample is
// never mutated after creation; it carries its own timestamp so that replay
// never consults a clock.
type Sample struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Time     int64   `json:"time"`
	Pressure float64 `json:"pressure"`
	TiltX    float64 `json:"tiltX"`
	TiltY    float64 `json:"tiltY"`
	Rotation float64 `json:"rotation"`
	Altitude float64 `json:"altitude"`
	Azimuth  float64 `json:"azimuth"`
}

// NewSample builds a Sample with every optional channel set to unknown.
func NewSample(x, y float64, timeMs int64) Sample {
	return Sample{
		X:        x,
		Y:        y,
		Time:     timeMs,
		Pressure: ChannelUnknown,
		TiltX:    ChannelUnknown,
		TiltY:    ChannelUnknown,
		Rotation: ChannelUnknown,
		Altitude: ChannelUnknown,
		Azimuth:  ChannelUnknown,
	}
}

// DistanceTo returns the Euclidean distance to another sample.
func (s Sample) DistanceTo(o Sample) float64 {
	return math.Hypot(o.X-s.X, o.Y-s.Y)
}

// VelocityFrom returns the instantaneous velocity (px/ms) between start and
// this sample. Identical timestamps mean zero velocity, not a division error.
func (s Sample) VelocityFrom(start Sample) float64 {
	if s.Time == start.Time {
		return 0
	}
	return s.DistanceTo(start) / float64(s.Time-start.Time)
}

// PointGroup holds the ordered samples of one continuous gesture, all drawn
// in one color. Points are append-only while the gesture is active and the
// group is frozen once the pointer lifts. A group with a single point is an
// isolated dot.
type PointGroup struct {
	ID     string   `json:"id"`
	Color  string   `json:"color"`
	Points []Sample `json:"points"`
}

// NewGroupID returns a unique identifier for a point group, used to
// de-duplicate groups relayed over the network.
func NewGroupID() string {
	return uuid.NewString()
}

// Clone returns a deep copy so callers can hand groups out without aliasing
// the recorder's backing storage.
func (g PointGroup) Clone() PointGroup {
	points := make([]Sample, len(g.Points))
	copy(points, g.Points)
	return PointGroup{ID: g.ID, Color: g.Color, Points: points}
}
