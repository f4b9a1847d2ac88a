package export

import (
	"github.com/jung-kurt/gofpdf"

	"InkBoard/internal/ink"
	"InkBoard/internal/render"
)

// pxPerMM maps surface pixels onto the A4 page.
const pxPerMM = 3.0

// pdfSink draws fitted segments as true cubic curves and dots as filled
// circles onto a gofpdf page.
type pdfSink struct {
	pdf *gofpdf.Fpdf
}

func (p *pdfSink) DrawSegment(seg ink.Segment, color string) {
	c := render.ParseColor(color)
	p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetLineWidth(seg.WidthEnd * strokeWidthFactor / pxPerMM)
	p.pdf.MoveTo(seg.P0.X/pxPerMM, seg.P0.Y/pxPerMM)
	p.pdf.CurveBezierCubicTo(
		seg.C1.X/pxPerMM, seg.C1.Y/pxPerMM,
		seg.C2.X/pxPerMM, seg.C2.Y/pxPerMM,
		seg.P3.X/pxPerMM, seg.P3.Y/pxPerMM,
	)
	p.pdf.DrawPath("D")
}

func (p *pdfSink) DrawDot(x, y, radius float64, color string) {
	c := render.ParseColor(color)
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.pdf.Circle(x/pxPerMM, y/pxPerMM, radius/pxPerMM, "F")
}

// PDF writes the drawing to an A4 PDF file, replaying the collection through
// the same fitter the screen uses so the curves match the live stroke.
func PDF(path string, groups []ink.PointGroup, opts ink.Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetLineCapStyle("round")

	sink := &pdfSink{pdf: pdf}
	rec := ink.NewRecorder(opts)
	rec.FromData(groups, sink, sink)

	return pdf.OutputFileAndClose(path)
}
