package ui

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/export"
	"InkBoard/internal/ink"
	"InkBoard/internal/render"
)

// colorSwatch is a tappable color square for the pen palette.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	Name     string
	OnTapped func(name string)
}

func newColorSwatch(c color.Color, name string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Color: c, Name: name, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// NewToolbar assembles the pen palette, undo/clear, and export actions.
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearLocal),
	)

	onColorTapped := func(name string) {
		board.SetColor(name)
	}
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, "#000000", onColorTapped),
		newColorSwatch(color.NRGBA{R: 255, A: 255}, "#ff0000", onColorTapped),
		newColorSwatch(color.NRGBA{G: 160, A: 255}, "#00a000", onColorTapped),
		newColorSwatch(color.NRGBA{B: 255, A: 255}, "#0000ff", onColorTapped),
	)

	exports := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { exportAll(board) }),
	)

	return container.NewHBox(
		widget.NewLabel("Pen:"),
		colorBox,
		widget.NewSeparator(),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Export:"),
		exports,
	)
}

// exportAll writes the drawing in every supported format next to the
// binary: SVG and PDF vectors, a PNG raster, a biometric stream, and the
// canonical JSON.
func exportAll(board *BoardWidget) {
	stamp := time.Now().Format("20060102-150405")
	base := fmt.Sprintf("inkboard-%s", stamp)
	groups := board.Data()
	opts := board.Options()

	if err := os.WriteFile(base+".svg", export.SVG(groups, opts), 0o644); err != nil {
		board.SetStatus(fmt.Sprintf("SVG export failed: %v", err))
		return
	}
	if err := export.PDF(base+".pdf", groups, opts); err != nil {
		board.SetStatus(fmt.Sprintf("PDF export failed: %v", err))
		return
	}
	if err := exportPNG(base+".png", groups, opts); err != nil {
		board.SetStatus(fmt.Sprintf("PNG export failed: %v", err))
		return
	}
	if err := exportBiometric(base+".isig", groups); err != nil {
		board.SetStatus(fmt.Sprintf("biometric export failed: %v", err))
		return
	}
	if err := exportJSON(base+".json", board); err != nil {
		board.SetStatus(fmt.Sprintf("JSON export failed: %v", err))
		return
	}

	board.SetStatus("Exported " + base + ".{svg,pdf,png,isig,json}")
	log.Printf("[board] exported drawing as %s.*", base)
}

// exportPNG replays the drawing onto an offscreen raster and encodes it.
func exportPNG(path string, groups []ink.PointGroup, opts ink.Options) error {
	raster := render.NewRaster(1024, 768)
	renderer := render.NewRenderer(raster, opts)
	rec := ink.NewRecorder(opts)
	rec.FromData(groups, renderer, renderer)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return raster.Encode(f, "png")
}

// screenPixelsPerMM is a typical 96dpi density; boards that know their real
// display density should measure instead.
const screenPixelsPerMM = 96.0 / 25.4

func exportBiometric(path string, groups []ink.PointGroup) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteBiometric(f, groups, screenPixelsPerMM, "inkboard-mouse")
}

func exportJSON(path string, board *BoardWidget) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return board.SaveTo(f)
}
