package ui

import (
	"image/color"
	"io"
	"log/slog"
	"testing"

	"Paintix/internal/geometry"
	"Paintix/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
)

func newTestBoard(t *testing.T) (*Board, *state.Store) {
	t.Helper()
	test.NewTempApp(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := state.NewStore(state.Initial(state.DefaultToolSetting()), logger)

	var board *Board
	tr := geometry.NewTranslator(store,
		geometry.WithLogger(logger),
		geometry.WithFill(func(c string) { board.SetBackground(c) }),
	)
	board = NewBoard(store, tr, curve.Sz(geometry.LogicalWidth, geometry.LogicalHeight))
	board.Resize(fyne.NewSize(400, 300))
	t.Cleanup(board.Detach)
	return board, store
}

func press(pos fyne.Position, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}, Button: button}
}

func drag(pos fyne.Position) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: pos}}
}

func TestBoardGestureIsRescaled(t *testing.T) {
	board, store := newTestBoard(t)

	board.MouseDown(press(fyne.NewPos(10, 10), desktop.MouseButtonPrimary))
	board.Dragged(drag(fyne.NewPos(20, 20)))
	board.DragEnd()

	paths := store.View().Paths
	require.Len(t, paths, 1)
	assert.Equal(t, "M20,20 L40,40", paths[0].D)
	assert.Nil(t, store.View().Current)
}

func TestBoardReleaseOutsideEndsGesture(t *testing.T) {
	board, store := newTestBoard(t)

	board.MouseDown(press(fyne.NewPos(10, 10), desktop.MouseButtonPrimary))
	board.Dragged(drag(fyne.NewPos(900, -50)))
	board.DragEnd()
	board.MouseUp(press(fyne.NewPos(900, -50), desktop.MouseButtonPrimary))

	assert.Len(t, store.View().Paths, 1)
	assert.Equal(t, 1, store.View().HistoryDepth)
}

func TestBoardIgnoresSecondaryButton(t *testing.T) {
	board, store := newTestBoard(t)

	board.MouseDown(press(fyne.NewPos(10, 10), desktop.MouseButtonSecondary))
	board.Dragged(drag(fyne.NewPos(20, 20)))
	board.DragEnd()

	assert.Empty(t, store.View().Paths)
}

func TestBoardRenderer(t *testing.T) {
	board, store := newTestBoard(t)
	store.Dispatch(state.StartDrawing{D: "M 20 20 L 40 40 L 40 40"})
	store.Dispatch(state.EndDrawing{})

	r := board.CreateRenderer()
	r.Layout(fyne.NewSize(400, 300))
	objects := r.Objects()
	require.Len(t, objects, 3)

	bg, ok := objects[0].(*canvas.Rectangle)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, bg.FillColor)

	line, ok := objects[1].(*canvas.Line)
	require.True(t, ok)
	assert.Equal(t, fyne.NewPos(10, 10), line.Position1)
	assert.Equal(t, fyne.NewPos(20, 20), line.Position2)
	assert.Equal(t, float32(2.5), line.StrokeWidth)
	assert.Equal(t, color.NRGBA{A: 255}, line.StrokeColor)

	_, ok = objects[2].(*canvas.Circle)
	assert.True(t, ok, "zero-length segment renders as a dot")
}

func TestFillToolChangesBackground(t *testing.T) {
	board, store := newTestBoard(t)
	store.Dispatch(state.SetColor{Color: "#FF0000"})
	store.Dispatch(state.SetTool{Tool: state.ToolFill})

	board.MouseDown(press(fyne.NewPos(50, 50), desktop.MouseButtonPrimary))
	board.DragEnd()

	assert.Equal(t, "#FF0000", board.Scene().Background)
	assert.Empty(t, store.View().Paths)
	assert.Equal(t, desktop.PointerCursor, board.Cursor())

	r := board.CreateRenderer()
	bg := r.Objects()[0].(*canvas.Rectangle)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, bg.FillColor)
}

func TestBoardCursor(t *testing.T) {
	board, store := newTestBoard(t)
	assert.Equal(t, desktop.CrosshairCursor, board.Cursor())
	store.Dispatch(state.SetTool{Tool: state.ToolSpray})
	assert.Equal(t, desktop.CrosshairCursor, board.Cursor())
}

func TestShortcutsDispatchNamedActions(t *testing.T) {
	_, store := newTestBoard(t)
	for _, d := range []string{"M 1 1 L 2 2", "M 3 3 L 4 4"} {
		store.Dispatch(state.StartDrawing{D: d})
		store.Dispatch(state.EndDrawing{})
	}

	var keys fyne.ShortcutHandler
	BindShortcuts(&keys, store)
	ctrlKey := func(k fyne.KeyName) fyne.Shortcut {
		return &desktop.CustomShortcut{KeyName: k, Modifier: fyne.KeyModifierShortcutDefault}
	}

	// The desktop driver turns Ctrl/Cmd+Z into ShortcutUndo.
	keys.TypedShortcut(&fyne.ShortcutUndo{})
	assert.Len(t, store.View().Paths, 1)

	keys.TypedShortcut(ctrlKey(fyne.KeyE))
	assert.Equal(t, state.ToolEraser, store.View().Settings.Tool)

	keys.TypedShortcut(ctrlKey(fyne.KeyK))
	assert.Equal(t, state.ToolPen, store.View().Settings.Tool)

	// And Ctrl/Cmd+C into ShortcutCopy.
	keys.TypedShortcut(&fyne.ShortcutCopy{})
	assert.Empty(t, store.View().Paths)
	assert.Zero(t, store.View().HistoryDepth)
}

func TestShortcutsBindOnWindowCanvas(t *testing.T) {
	_, store := newTestBoard(t)
	w := test.NewWindow(nil)
	defer w.Close()
	BindShortcuts(w.Canvas(), store)
	assert.Len(t, Shortcuts, 4)
}

func TestToolbarDispatches(t *testing.T) {
	_, store := newTestBoard(t)
	tb := NewToolbar(store)

	assert.True(t, tb.undo.Disabled())
	assert.Equal(t, widget.HighImportance, tb.buttons[state.ToolPen].Importance)

	test.Tap(tb.buttons[state.ToolSpray])
	assert.Equal(t, state.ToolSpray, store.View().Settings.Tool)
	assert.Equal(t, widget.HighImportance, tb.buttons[state.ToolSpray].Importance)
	assert.Equal(t, widget.MediumImportance, tb.buttons[state.ToolPen].Importance)

	store.Dispatch(state.StartDrawing{D: "M 1 1"})
	store.Dispatch(state.EndDrawing{})
	assert.False(t, tb.undo.Disabled())

	test.Tap(tb.undo)
	assert.Empty(t, store.View().Paths)
}

func TestBrushControlsDispatch(t *testing.T) {
	_, store := newTestBoard(t)
	bc := NewBrushControls(store, []string{"#000000", "#FF8000"})

	test.Tap(bc.swatches[1])
	assert.Equal(t, "#FF8000", store.View().Settings.Color)

	bc.size.OnChanged(20)
	assert.Equal(t, 20, store.View().Settings.BrushSize)
	assert.Equal(t, "Size: 20px", bc.sizeL.Text)

	bc.opacity.OnChanged(0.30000000000000004)
	assert.Equal(t, 0.3, store.View().Settings.BrushOpacity)
	assert.Equal(t, "Opacity: 30%", bc.opacityL.Text)
}
