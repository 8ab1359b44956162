package geometry

import (
	"log/slog"

	"Paintix/internal/state"

	"github.com/google/uuid"
	"honnef.co/go/curve"
)

// Logical canvas size. All geometry is expressed in this space regardless
// of how large the canvas is on screen.
const (
	LogicalWidth  = 800
	LogicalHeight = 600
)

// Dispatcher is the part of the store the translator needs.
type Dispatcher interface {
	Dispatch(state.Action)
	View() state.View
}

// Translator converts pointer events into store actions. It tracks a single
// gesture at a time: Idle, then Drawing after a pointer down, then Idle again
// after the pointer is released. It is not safe for concurrent use; feed it
// from the UI event loop.
type Translator struct {
	store   Dispatcher
	brushes map[state.Tool]Brush
	logical curve.Size
	newID   func() string
	onFill  func(color string)
	log     *slog.Logger

	drawing bool
	brush   Brush
}

// Option configures a Translator.
type Option func(*Translator)

// WithRand sets the spray brush's random source, for reproducible strokes.
func WithRand(r Rand) Option {
	return func(t *Translator) { t.brushes = brushes(r) }
}

// WithLogicalSize overrides the logical canvas size.
func WithLogicalSize(w, h float64) Option {
	return func(t *Translator) {
		if w > 0 && h > 0 {
			t.logical = curve.Sz(w, h)
		}
	}
}

// WithIDs sets the generator for path IDs.
func WithIDs(fn func() string) Option {
	return func(t *Translator) { t.newID = fn }
}

// WithFill sets the callback run when the fill tool is used. It receives
// the active colour and is the only effect of a fill gesture.
func WithFill(fn func(color string)) Option {
	return func(t *Translator) { t.onFill = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) { t.log = l }
}

// NewTranslator creates a translator that dispatches to store.
func NewTranslator(store Dispatcher, opts ...Option) *Translator {
	t := &Translator{
		store:   store,
		brushes: brushes(unseeded()),
		logical: curve.Sz(LogicalWidth, LogicalHeight),
		newID:   uuid.NewString,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.log = t.log.With("component", "translator")
	return t
}

// Drawing reports whether a gesture is in progress.
func (t *Translator) Drawing() bool { return t.drawing }

// LogicalSize returns the size of the coordinate space paths are drawn in.
func (t *Translator) LogicalSize() curve.Size { return t.logical }

// ToLogical maps a position on a canvas displayed at the given size into the
// logical coordinate space. A degenerate display size leaves pos unchanged.
func (t *Translator) ToLogical(pos curve.Point, displayed curve.Size) curve.Point {
	if displayed.Width <= 0 || displayed.Height <= 0 {
		return pos
	}
	return pos.Transform(curve.Scale(
		t.logical.Width/displayed.Width,
		t.logical.Height/displayed.Height,
	))
}

// PointerDown starts a gesture. With the fill tool it only runs the fill
// callback. A pointer down while a gesture is already running is ignored.
func (t *Translator) PointerDown(pos curve.Point, displayed curve.Size) {
	if t.drawing {
		t.log.Debug("pointer down during gesture ignored")
		return
	}
	settings := t.store.View().Settings

	if settings.Tool == state.ToolFill {
		if t.onFill != nil {
			t.onFill(settings.Color)
		}
		return
	}
	brush, ok := t.brushes[settings.Tool]
	if !ok {
		t.log.Warn("no brush for tool", "tool", settings.Tool)
		return
	}

	at := t.ToLogical(pos, displayed)
	t.store.Dispatch(state.StartDrawing{
		ID: t.newID(),
		D:  Format(brush.Begin(at, settings)),
	})
	t.drawing = true
	t.brush = brush
}

// PointerMove extends the running gesture with the new position.
func (t *Translator) PointerMove(pos curve.Point, displayed curve.Size) {
	if !t.drawing {
		return
	}
	view := t.store.View()
	if view.Current == nil {
		// The path was dropped under us, by undo or clear.
		return
	}
	at := t.ToLogical(pos, displayed)
	frag := t.brush.Continue(at, view.Settings)
	t.store.Dispatch(state.Drawing{D: Extend(view.Current.D, frag)})
}

// PointerUp ends the running gesture. It must be called for releases
// anywhere on screen, not only over the canvas, so a gesture never gets stuck.
func (t *Translator) PointerUp() {
	if !t.drawing {
		return
	}
	t.store.Dispatch(state.EndDrawing{})
	t.drawing = false
	t.brush = nil
}
