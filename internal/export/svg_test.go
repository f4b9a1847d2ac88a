package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/ink"
)

func strokeGroup(color string) ink.PointGroup {
	return ink.PointGroup{
		ID:    ink.NewGroupID(),
		Color: color,
		Points: []ink.Sample{
			ink.NewSample(0, 0, 0),
			ink.NewSample(10, 0, 50),
			ink.NewSample(20, 5, 100),
			ink.NewSample(30, 5, 150),
		},
	}
}

func dotGroup(color string) ink.PointGroup {
	return ink.PointGroup{
		ID:     ink.NewGroupID(),
		Color:  color,
		Points: []ink.Sample{ink.NewSample(40, 40, 200)},
	}
}

func TestSVGStrokeBecomesCubicPaths(t *testing.T) {
	doc := string(SVG([]ink.PointGroup{strokeGroup("#000000")}, ink.DefaultOptions()))

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0"`))
	assert.Contains(t, doc, `<svg xmlns="http://www.w3.org/2000/svg"`)
	// Four admitted points fit two segments: the third sample emits the
	// first one via the duplicate-anchor rule, the fourth the second.
	assert.Equal(t, 2, strings.Count(doc, "<path "))
	assert.Contains(t, doc, `stroke="#000000"`)
	assert.Contains(t, doc, `stroke-linecap="round"`)
	assert.Contains(t, doc, "C ", "paths carry cubic commands")
	assert.NotContains(t, doc, "NaN")
}

func TestSVGDotBecomesCircle(t *testing.T) {
	opts := ink.DefaultOptions()
	doc := string(SVG([]ink.PointGroup{dotGroup("#ff0000")}, opts))

	// A stroke's first sample also paints a dot, so a lone tap must yield a
	// circle and nothing else.
	assert.Equal(t, 1, strings.Count(doc, "<circle "))
	assert.Zero(t, strings.Count(doc, "<path "))
	assert.Contains(t, doc, `cx="40" cy="40" r="1.5"`)
	assert.Contains(t, doc, `fill="#ff0000"`)
}

func TestSVGStrokeWidthUsesEquivalenceFactor(t *testing.T) {
	// Capture the replay directly to learn the end widths, then check each
	// one shows up multiplied by the disc-to-outline factor.
	groups := []ink.PointGroup{strokeGroup("#000000")}
	opts := ink.DefaultOptions()

	b := &svgBuilder{}
	rec := ink.NewRecorder(opts)
	rec.FromData(groups, b, b)

	doc := string(SVG(groups, opts))
	for _, el := range b.elements {
		assert.Contains(t, doc, el)
	}
	require.NotEmpty(t, b.elements)
	assert.Contains(t, b.elements[0], `stroke-width="`)
}

func TestSVGViewBoxPadsBounds(t *testing.T) {
	doc := string(SVG([]ink.PointGroup{strokeGroup("#000000")}, ink.DefaultOptions()))
	// Points span x 0..30, y 0..5; padding of 10 on each side.
	assert.Contains(t, doc, `viewBox="-10 -10 50 25"`)
}

func TestSVGEmptyDrawing(t *testing.T) {
	doc := string(SVG(nil, ink.DefaultOptions()))
	assert.Contains(t, doc, "<svg ")
	assert.Contains(t, doc, "</svg>")
	assert.Zero(t, strings.Count(doc, "<path "))
}

func TestNumFormatting(t *testing.T) {
	assert.Equal(t, "1.5", num(1.5))
	assert.Equal(t, "2", num(2.0))
	assert.Equal(t, "0", num(0))
	assert.Equal(t, "-3.25", num(-3.25))
	assert.Equal(t, "0.333", num(1.0/3.0))
}
