package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"InkBoard/internal/ink"
)

// strokeWidthFactor converts a disc-union end width into a visually
// equivalent SVG stroke-width. Determined empirically against the raster
// output.
const strokeWidthFactor = 2.25

// boundsPadding is the margin added around the drawing's bounding box in the
// exported viewBox.
const boundsPadding = 10

// svgBuilder collects path elements while a replay runs through it.
type svgBuilder struct {
	elements []string
}

func (b *svgBuilder) DrawSegment(seg ink.Segment, color string) {
	d := fmt.Sprintf("M %s,%s C %s,%s %s,%s %s,%s",
		num(seg.P0.X), num(seg.P0.Y),
		num(seg.C1.X), num(seg.C1.Y),
		num(seg.C2.X), num(seg.C2.Y),
		num(seg.P3.X), num(seg.P3.Y))
	b.elements = append(b.elements, fmt.Sprintf(
		`<path d="%s" stroke="%s" stroke-width="%s" fill="none" stroke-linecap="round"/>`,
		d, color, num(seg.WidthEnd*strokeWidthFactor)))
}

func (b *svgBuilder) DrawDot(x, y, radius float64, color string) {
	b.elements = append(b.elements, fmt.Sprintf(
		`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
		num(x), num(y), num(radius), color))
}

// SVG serializes the drawing as a standalone SVG document: one cubic path
// per fitted segment, one circle per dot, replayed through the same fitter
// the live renderer uses so the geometry matches the screen exactly.
func SVG(groups []ink.PointGroup, opts ink.Options) []byte {
	b := &svgBuilder{}
	rec := ink.NewRecorder(opts)
	rec.FromData(groups, b, b)

	minX, minY, maxX, maxY := bounds(groups)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`,
		num(minX), num(minY), num(maxX-minX), num(maxY-minY), num(maxX-minX), num(maxY-minY))
	sb.WriteByte('\n')
	for _, el := range b.elements {
		sb.WriteString(el)
		sb.WriteByte('\n')
	}
	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}

// bounds accumulates the padded bounding box of every admitted point. An
// empty drawing gets a unit box at the origin so the document stays valid.
func bounds(groups []ink.PointGroup) (minX, minY, maxX, maxY float64) {
	first := true
	for _, g := range groups {
		for _, p := range g.Points {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if first {
		return 0, 0, 1, 1
	}
	return minX - boundsPadding, minY - boundsPadding, maxX + boundsPadding, maxY + boundsPadding
}

// num formats a coordinate compactly, trimming trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
