package ink

import "time"

// Options configures the stroke engine. The zero value of any field falls
// back to the documented default; normalization happens once at construction,
// never during sampling. MinWidth > MaxWidth is not validated and produces
// undefined widths.
type Options struct {
	// MinWidth and MaxWidth bound the stroke width in pixels.
	// Defaults: 0.5 and 2.5.
	MinWidth float64
	MaxWidth float64

	// MinDistance is the admission filter radius: a sample closer than this
	// to the last admitted sample of the active group is dropped entirely.
	// Default: 5.
	MinDistance float64

	// VelocityFilterWeight is the EMA weight of the instantaneous velocity.
	// Default: 0.7.
	VelocityFilterWeight float64

	// DotSize is the radius of an isolated dot (a tap without a drag).
	// Default: (MinWidth + MaxWidth) / 2.
	DotSize float64

	// ThrottleInterval rate-limits the input adapter, not the engine.
	// Default: 16ms.
	ThrottleInterval time.Duration
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		MinWidth:             0.5,
		MaxWidth:             2.5,
		MinDistance:          5,
		VelocityFilterWeight: 0.7,
		DotSize:              1.5,
		ThrottleInterval:     16 * time.Millisecond,
	}
}

// normalize fills zero-valued fields with their defaults.
func (o Options) normalize() Options {
	if o.MinWidth == 0 {
		o.MinWidth = 0.5
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = 2.5
	}
	if o.MinDistance == 0 {
		o.MinDistance = 5
	}
	if o.VelocityFilterWeight == 0 {
		o.VelocityFilterWeight = 0.7
	}
	if o.DotSize == 0 {
		o.DotSize = (o.MinWidth + o.MaxWidth) / 2
	}
	if o.ThrottleInterval == 0 {
		o.ThrottleInterval = 16 * time.Millisecond
	}
	return o
}
