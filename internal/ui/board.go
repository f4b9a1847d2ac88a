package ui

import (
	"encoding/json"
	"image/color"
	"io"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/ink"
	"InkBoard/internal/render"
)

// BoardWidget is the drawing surface: it turns mouse events into samples,
// feeds them through the stroke engine, and shows the fitted strokes as
// filled circles. It is both the input source and the live surface of the
// engine.
type BoardWidget struct {
	widget.BaseWidget

	mu        sync.RWMutex
	recorder  *ink.Recorder
	surface   *circleSurface
	renderer  *render.Renderer
	throttler *ink.Throttler

	drawing      bool
	currentColor string
	seen         map[string]bool // remote group IDs already drawn

	LocalClientID string
	OnNewGroup    func(g ink.PointGroup)
	OnClear       func()

	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget builds a board with the given engine options. The
// throttled-versus-direct sample path is decided here, once: a zero
// ThrottleInterval means every event goes straight to the engine.
func NewBoardWidget(opts ink.Options) *BoardWidget {
	b := &BoardWidget{
		recorder:     ink.NewRecorder(opts),
		surface:      newCircleSurface(),
		currentColor: "#000000",
		seen:         make(map[string]bool),
		statusBar:    widget.NewLabel("Ready"),
	}
	b.renderer = render.NewRenderer(b.surface, b.recorder.Options())
	b.throttler = ink.NewThrottler(b.recorder.Options().ThrottleInterval, b.processSample)
	b.ExtendBaseWidget(b)
	return b
}

// SetLocalClientID records this peer's identity for broadcast messages.
func (b *BoardWidget) SetLocalClientID(id string) {
	b.LocalClientID = id
}

// SetColor selects the pen color for subsequent strokes.
func (b *BoardWidget) SetColor(c string) {
	b.currentColor = c
}

// SetStatus updates the status bar from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// StatusBar exposes the label for the app layout.
func (b *BoardWidget) StatusBar() *widget.Label {
	return b.statusBar
}

// processSample pushes one sample through admission, fitting, and rendering.
// Runs on the event goroutine or the throttler's trailing timer; the lock
// keeps the engine single-writer either way.
func (b *BoardWidget) processSample(s ink.Sample) {
	b.mu.Lock()
	b.recorder.AddSample(s, b.renderer, b.renderer)
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) sampleAt(pos fyne.Position) ink.Sample {
	return ink.NewSample(float64(pos.X), float64(pos.Y), time.Now().UnixMilli())
}

// MouseDown begins a stroke. A second button while drawing is ignored: one
// gesture at a time.
func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || b.drawing {
		return
	}
	b.drawing = true
	b.mu.Lock()
	b.recorder.BeginStroke(b.currentColor)
	b.mu.Unlock()
	b.throttler.Add(b.sampleAt(e.Position))
}

// Dragged extends the active stroke.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.drawing {
		return
	}
	b.throttler.Add(b.sampleAt(e.Position))
}

// MouseUp finishes the stroke: any pending throttled sample is flushed so
// the final position lands, then the group is frozen and handed to
// OnNewGroup for broadcast or persistence.
func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.drawing {
		return
	}
	b.drawing = false
	b.throttler.Flush()

	b.mu.Lock()
	group, ok := b.recorder.EndStroke()
	if ok {
		b.seen[group.ID] = true
	}
	b.mu.Unlock()

	if ok && b.OnNewGroup != nil {
		b.OnNewGroup(group)
	}
	b.Refresh()
}

// Undo removes the last stroke and re-renders the rest from scratch against
// a cleared surface; replay reproduces the live output exactly.
func (b *BoardWidget) Undo() {
	b.mu.Lock()
	b.recorder.Undo()
	b.surface.Clear()
	b.recorder.Replay(b.renderer, b.renderer)
	b.mu.Unlock()
	b.Refresh()
}

// ClearLocal wipes the board and tells the network layer.
func (b *BoardWidget) ClearLocal() {
	b.mu.Lock()
	b.recorder.Clear()
	b.surface.Clear()
	b.mu.Unlock()
	b.Refresh()
	if b.OnClear != nil {
		b.OnClear()
	}
}

// ClearRemote wipes the board on a relayed clear message.
func (b *BoardWidget) ClearRemote() {
	b.mu.Lock()
	b.recorder.Clear()
	b.surface.Clear()
	b.mu.Unlock()
	b.Refresh()
}

// AddRemoteGroup draws a peer's finished gesture. Duplicate IDs are dropped,
// so a relayed copy of our own stroke is a no-op.
func (b *BoardWidget) AddRemoteGroup(g ink.PointGroup) {
	b.mu.Lock()
	if b.seen[g.ID] {
		b.mu.Unlock()
		log.Printf("[board] group %s already drawn, ignoring", g.ID)
		return
	}
	b.seen[g.ID] = true
	b.recorder.Append(g, b.renderer, b.renderer)
	b.mu.Unlock()
	b.Refresh()
}

// Data returns a copy of the drawing, the canonical serializable state.
func (b *BoardWidget) Data() []ink.PointGroup {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.recorder.ToData()
}

// Options returns the engine options the board runs with.
func (b *BoardWidget) Options() ink.Options {
	return b.recorder.Options()
}

// SaveTo writes the drawing as JSON.
func (b *BoardWidget) SaveTo(w io.Writer) error {
	data, err := json.MarshalIndent(b.Data(), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// LoadFrom replaces the drawing with JSON data and replays it, reproducing
// the stroke visuals exactly as they were drawn.
func (b *BoardWidget) LoadFrom(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var groups []ink.PointGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return err
	}

	b.mu.Lock()
	b.surface.Clear()
	b.recorder.FromData(groups, b.renderer, b.renderer)
	b.seen = make(map[string]bool)
	for _, g := range groups {
		b.seen[g.ID] = true
	}
	b.mu.Unlock()
	b.Refresh()
	log.Printf("[board] loaded %d groups", len(groups))
	return nil
}

// circleSurface implements render.Surface by accumulating fyne canvas
// objects, one circle per disc.
type circleSurface struct {
	objects []fyne.CanvasObject
}

func newCircleSurface() *circleSurface {
	return &circleSurface{}
}

func (s *circleSurface) FillDisc(x, y, r float64, colorName string) {
	c := canvas.NewCircle(render.ParseColor(colorName))
	c.Position1 = fyne.NewPos(float32(x-r), float32(y-r))
	c.Position2 = fyne.NewPos(float32(x+r), float32(y+r))
	s.objects = append(s.objects, c)
}

func (s *circleSurface) FillRect(x, y, w, h float64, colorName string) {
	rect := canvas.NewRectangle(render.ParseColor(colorName))
	rect.Move(fyne.NewPos(float32(x), float32(y)))
	rect.Resize(fyne.NewSize(float32(w), float32(h)))
	s.objects = append(s.objects, rect)
}

func (s *circleSurface) Clear() {
	s.objects = s.objects[:0]
}

// CreateRenderer implements fyne.Widget.
func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(color.White),
	}
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	r.board.mu.RLock()
	defer r.board.mu.RUnlock()
	objects := make([]fyne.CanvasObject, 0, len(r.board.surface.objects)+1)
	objects = append(objects, r.background)
	objects = append(objects, r.board.surface.objects...)
	return objects
}

func (r *boardRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardRenderer) Destroy() {}

func (b *BoardWidget) DragEnd()                       {}
func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
