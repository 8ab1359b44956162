package ui

import (
	"image/color"
	"sync"

	"Paintix/internal/geometry"
	"Paintix/internal/render"
	"Paintix/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"honnef.co/go/curve"
)

// Gesture receives pointer input in widget coordinates.
type Gesture interface {
	PointerDown(pos curve.Point, displayed curve.Size)
	PointerMove(pos curve.Point, displayed curve.Size)
	PointerUp()
}

// Board draws the document and forwards pointer input to a Gesture.
type Board struct {
	widget.BaseWidget

	mu          sync.RWMutex
	scene       render.Scene
	gesture     Gesture
	unsubscribe func()
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ desktop.Cursorable = (*Board)(nil)

// NewBoard creates a board showing store and feeding gesture. The logical
// size is the coordinate space of the stored geometry.
func NewBoard(store Store, gesture Gesture, logical curve.Size) *Board {
	b := &Board{
		scene: render.Scene{
			View:       store.View(),
			Background: render.DefaultBackground,
			Size:       logical,
		},
		gesture: gesture,
	}
	b.ExtendBaseWidget(b)
	b.unsubscribe = store.Subscribe(b.update)
	return b
}

func (b *Board) update(v state.View) {
	b.mu.Lock()
	b.scene.View = v
	b.mu.Unlock()
	fyne.Do(b.Refresh)
}

// SetBackground changes the canvas fill colour. Used by the fill tool.
func (b *Board) SetBackground(c string) {
	b.mu.Lock()
	b.scene.Background = c
	b.mu.Unlock()
	fyne.Do(b.Refresh)
}

// Scene returns what the board currently draws.
func (b *Board) Scene() render.Scene {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scene
}

// Detach stops following the store.
func (b *Board) Detach() {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
}

func (b *Board) displayed() curve.Size {
	size := b.Size()
	return curve.Sz(float64(size.Width), float64(size.Height))
}

func toPoint(p fyne.Position) curve.Point {
	return curve.Pt(float64(p.X), float64(p.Y))
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.gesture.PointerDown(toPoint(e.Position), b.displayed())
}

// MouseUp only fires over the board; DragEnd covers releases elsewhere.
func (b *Board) MouseUp(*desktop.MouseEvent) {
	b.gesture.PointerUp()
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	b.gesture.PointerMove(toPoint(e.Position), b.displayed())
}

// DragEnd is delivered wherever the pointer is released, so a gesture that
// leaves the board still ends.
func (b *Board) DragEnd() {
	b.gesture.PointerUp()
}

func (b *Board) MouseIn(*desktop.MouseEvent)    {}
func (b *Board) MouseOut()                      {}
func (b *Board) MouseMoved(*desktop.MouseEvent) {}

func (b *Board) Cursor() desktop.Cursor {
	if b.Scene().View.Settings.Tool == state.ToolFill {
		return desktop.PointerCursor
	}
	return desktop.CrosshairCursor
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(color.White),
	}
	r.rebuild(b.Size())
	return r
}

type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *boardRenderer) Refresh() {
	r.rebuild(r.board.Size())
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Destroy() {}

// rebuild lays the scene out for a board of the given size: the background,
// then every path back to front, each segment as a line.
func (r *boardRenderer) rebuild(size fyne.Size) {
	scene := r.board.Scene()

	r.background.FillColor = render.Color(scene.Background, 1)
	r.background.Resize(size)
	r.background.Move(fyne.NewPos(0, 0))

	sx, sy := float32(1), float32(1)
	if scene.Size.Width > 0 && scene.Size.Height > 0 {
		sx = size.Width / float32(scene.Size.Width)
		sy = size.Height / float32(scene.Size.Height)
	}
	scale := min(sx, sy)
	at := func(p curve.Point) fyne.Position {
		return fyne.NewPos(float32(p.X)*sx, float32(p.Y)*sy)
	}

	objects := []fyne.CanvasObject{r.background}
	for _, p := range scene.Paths() {
		stroke := render.Color(p.Stroke, p.Opacity)
		width := float32(p.StrokeWidth) * scale
		for _, l := range geometry.Lines(geometry.Parse(p.D)) {
			if l.P0 == l.P1 {
				// a click without movement still leaves a round dot
				dot := canvas.NewCircle(stroke)
				center := at(l.P0)
				dot.Resize(fyne.NewSize(width, width))
				dot.Move(center.SubtractXY(width/2, width/2))
				objects = append(objects, dot)
				continue
			}
			line := canvas.NewLine(stroke)
			line.StrokeWidth = width
			line.Position1 = at(l.P0)
			line.Position2 = at(l.P1)
			objects = append(objects, line)
		}
	}
	r.objects = objects
}
