package render

import (
	"image/color"
	"strconv"
	"strings"
)

// Surface is the minimal filled-path drawing capability the renderer needs.
// The fyne board widget, the offscreen raster, and any future backend all
// satisfy it. The renderer is the surface's only writer and runs on the
// single thread driving stroke capture, so implementations need no locking.
type Surface interface {
	// FillDisc paints a filled circle of radius r centered at (x, y).
	FillDisc(x, y, r float64, colorName string)
	// FillRect paints an axis-aligned filled rectangle.
	FillRect(x, y, w, h float64, colorName string)
	// Clear resets the surface to its background.
	Clear()
}

// ParseColor turns the engine's color strings into a concrete color. Accepts
// "#rgb", "#rrggbb", "#rrggbbaa" and a handful of pen-palette names; anything
// unrecognized falls back to black, matching how the board treats unknown
// colors.
func ParseColor(name string) color.RGBA {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "black", "":
		return color.RGBA{A: 255}
	case "white":
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case "red":
		return color.RGBA{R: 255, A: 255}
	case "green":
		return color.RGBA{G: 255, A: 255}
	case "blue":
		return color.RGBA{B: 255, A: 255}
	case "yellow":
		return color.RGBA{R: 255, G: 255, A: 255}
	}
	if strings.HasPrefix(name, "#") {
		if c, ok := parseHex(name[1:]); ok {
			return c
		}
	}
	return color.RGBA{A: 255}
}

func parseHex(s string) (color.RGBA, bool) {
	if len(s) == 3 {
		// #rgb shorthand: each nibble doubles.
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return color.RGBA{}, false
	}
	c := color.RGBA{A: 255}
	if len(s) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, true
}
