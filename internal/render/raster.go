package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"
)

// Raster is a Surface over an in-memory RGBA image. It backs headless
// rendering, replay verification in tests, and raster export.
type Raster struct {
	img        *image.RGBA
	background color.RGBA
}

// NewRaster returns a w×h surface cleared to white.
func NewRaster(w, h int) *Raster {
	r := &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	r.Clear()
	return r
}

// Image exposes the backing image for encoding or comparison.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Clear fills the whole surface with the background color.
func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
}

// FillRect paints a filled axis-aligned rectangle.
func (r *Raster) FillRect(x, y, w, h float64, colorName string) {
	c := ParseColor(colorName)
	rect := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(r.img, rect.Intersect(r.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillDisc paints a filled circle by scanning its bounding box. Plenty fast
// for pen-sized radii.
func (r *Raster) FillDisc(x, y, radius float64, colorName string) {
	if radius <= 0 || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	c := ParseColor(colorName)
	bounds := r.img.Bounds()
	x0 := int(math.Floor(x - radius))
	x1 := int(math.Ceil(x + radius))
	y0 := int(math.Floor(y - radius))
	y1 := int(math.Ceil(y + radius))
	rr := radius * radius
	for py := y0; py <= y1; py++ {
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		for px := x0; px <= x1; px++ {
			if px < bounds.Min.X || px >= bounds.Max.X {
				continue
			}
			dx := float64(px) + 0.5 - x
			dy := float64(py) + 0.5 - y
			if dx*dx+dy*dy <= rr {
				r.img.SetRGBA(px, py, c)
			}
		}
	}
}

// Encode writes the surface as png or jpeg. Any other format is an explicit
// error, never a silent substitution.
func (r *Raster) Encode(w io.Writer, format string) error {
	switch format {
	case "png":
		return png.Encode(w, r.img)
	case "jpeg", "jpg":
		return jpeg.Encode(w, r.img, &jpeg.Options{Quality: 92})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Restore decodes an image and draws it onto the surface at the origin. The
// outcome is reported through the optional completion callback; on decode
// failure the surface is left untouched.
func (r *Raster) Restore(src io.Reader, done func(error)) {
	img, _, err := image.Decode(src)
	if err != nil {
		log.Printf("[raster] restore failed: %v", err)
		if done != nil {
			done(err)
		}
		return
	}
	draw.Draw(r.img, r.img.Bounds(), img, img.Bounds().Min, draw.Src)
	if done != nil {
		done(nil)
	}
}
