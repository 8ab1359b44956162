package geometry

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"Paintix/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
)

var screen = curve.Sz(LogicalWidth, LogicalHeight)

func newTranslator(t *testing.T, opts ...Option) (*Translator, *state.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := state.NewStore(state.Initial(state.DefaultToolSetting()), logger)

	n := 0
	base := []Option{
		WithLogger(logger),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithIDs(func() string { n++; return fmt.Sprintf("path-%d", n) }),
	}
	return NewTranslator(store, append(base, opts...)...), store
}

func TestPenGesture(t *testing.T) {
	tr, store := newTranslator(t)

	tr.PointerDown(curve.Pt(10, 10), screen)
	assert.True(t, tr.Drawing())
	require.NotNil(t, store.View().Current)
	assert.Equal(t, "M10,10", store.View().Current.D)

	tr.PointerMove(curve.Pt(20, 20), screen)
	tr.PointerMove(curve.Pt(30, 25), screen)
	assert.Equal(t, "M10,10 L20,20 L30,25", store.View().Current.D)

	tr.PointerUp()
	assert.False(t, tr.Drawing())

	view := store.View()
	assert.Nil(t, view.Current)
	require.Len(t, view.Paths, 1)
	assert.Equal(t, state.Path{
		ID:          "path-1",
		D:           "M10,10 L20,20 L30,25",
		Stroke:      "#000000",
		StrokeWidth: 5,
		Opacity:     1,
	}, view.Paths[0])
	assert.Equal(t, 1, view.HistoryDepth)
}

func TestStationaryPointerAppendsZeroLengthSegment(t *testing.T) {
	tr, store := newTranslator(t)

	tr.PointerDown(curve.Pt(5, 5), screen)
	tr.PointerMove(curve.Pt(5, 5), screen)
	tr.PointerMove(curve.Pt(5, 5), screen)

	assert.Equal(t, "M5,5 L5,5 L5,5", store.View().Current.D)
}

func TestPositionsAreRescaledToLogicalSize(t *testing.T) {
	tr, store := newTranslator(t)

	half := curve.Sz(400, 300)
	tr.PointerDown(curve.Pt(10, 15), half)
	tr.PointerMove(curve.Pt(200, 150), half)

	assert.Equal(t, "M20,30 L400,300", store.View().Current.D)
}

func TestToLogicalWithDegenerateDisplay(t *testing.T) {
	tr, _ := newTranslator(t)
	assert.Equal(t, curve.Pt(3, 4), tr.ToLogical(curve.Pt(3, 4), curve.Sz(0, 0)))
}

func TestWithLogicalSize(t *testing.T) {
	tr, _ := newTranslator(t, WithLogicalSize(1600, 1200))
	assert.Equal(t, curve.Sz(1600, 1200), tr.LogicalSize())
	assert.Equal(t, curve.Pt(20, 20), tr.ToLogical(curve.Pt(10, 10), screen))
}

func TestFineAndEraserUsePolyline(t *testing.T) {
	for _, tool := range []state.Tool{state.ToolFinePen, state.ToolEraser} {
		t.Run(string(tool), func(t *testing.T) {
			tr, store := newTranslator(t)
			store.Dispatch(state.SetTool{Tool: tool})

			tr.PointerDown(curve.Pt(1, 2), screen)
			tr.PointerMove(curve.Pt(3, 4), screen)
			tr.PointerUp()

			require.Len(t, store.View().Paths, 1)
			assert.Equal(t, "M1,2 L3,4", store.View().Paths[0].D)
		})
	}
}

func TestSprayGesture(t *testing.T) {
	tr, store := newTranslator(t)
	store.Dispatch(state.SetTool{Tool: state.ToolSpray})
	store.Dispatch(state.SetBrushSize{Size: 10})

	center := curve.Pt(100, 100)
	tr.PointerDown(center, screen)
	first := Parse(store.View().Current.D)
	assert.Len(t, first, 2*sprayBeginDashes)

	tr.PointerMove(center, screen)
	tr.PointerMove(center, screen)
	all := Parse(store.View().Current.D)
	assert.Len(t, all, 2*(sprayBeginDashes+2*sprayContinueDashes))

	for i := 0; i < len(all); i += 2 {
		move, line := all[i], all[i+1]
		require.Equal(t, curve.MoveToKind, move.Kind)
		require.Equal(t, curve.LineToKind, line.Kind)
		assert.LessOrEqual(t, math.Abs(move.P0.X-center.X), 5.0)
		assert.LessOrEqual(t, math.Abs(move.P0.Y-center.Y), 5.0)
		assert.InDelta(t, sprayDashLength, line.P0.X-move.P0.X, 1e-9)
		assert.InDelta(t, sprayDashLength, line.P0.Y-move.P0.Y, 1e-9)
	}

	tr.PointerUp()
	require.Len(t, store.View().Paths, 1)
	assert.Equal(t, state.SprayWidth, store.View().Paths[0].StrokeWidth)
}

func TestSprayIsReproducibleWithSeededSource(t *testing.T) {
	draw := func() string {
		tr, store := newTranslator(t)
		store.Dispatch(state.SetTool{Tool: state.ToolSpray})
		tr.PointerDown(curve.Pt(50, 50), screen)
		tr.PointerMove(curve.Pt(60, 60), screen)
		return store.View().Current.D
	}
	assert.Equal(t, draw(), draw())
}

func TestFillBypassesPathPipeline(t *testing.T) {
	var filled []string
	tr, store := newTranslator(t, WithFill(func(c string) { filled = append(filled, c) }))
	store.Dispatch(state.SetColor{Color: "#FF8000"})
	store.Dispatch(state.SetTool{Tool: state.ToolFill})

	tr.PointerDown(curve.Pt(10, 10), screen)
	assert.False(t, tr.Drawing())
	tr.PointerMove(curve.Pt(20, 20), screen)
	tr.PointerUp()

	assert.Equal(t, []string{"#FF8000"}, filled)
	view := store.View()
	assert.Empty(t, view.Paths)
	assert.Nil(t, view.Current)
	assert.Zero(t, view.HistoryDepth)
}

func TestSecondPointerDownIsIgnored(t *testing.T) {
	tr, store := newTranslator(t)

	tr.PointerDown(curve.Pt(1, 1), screen)
	tr.PointerMove(curve.Pt(2, 2), screen)
	tr.PointerDown(curve.Pt(50, 50), screen)

	assert.Equal(t, "M1,1 L2,2", store.View().Current.D)
	assert.Equal(t, "path-1", store.View().Current.ID)
}

func TestMoveAndUpWhileIdleAreIgnored(t *testing.T) {
	tr, store := newTranslator(t)
	calls := 0
	store.Subscribe(func(state.View) { calls++ })

	tr.PointerMove(curve.Pt(1, 1), screen)
	tr.PointerUp()

	assert.Zero(t, calls)
	assert.False(t, tr.Drawing())
}

func TestUndoDuringGesture(t *testing.T) {
	tr, store := newTranslator(t)

	tr.PointerDown(curve.Pt(1, 1), screen)
	tr.PointerUp()
	tr.PointerDown(curve.Pt(2, 2), screen)
	store.Dispatch(state.Undo{})

	// the in-progress path is gone; further moves do nothing
	tr.PointerMove(curve.Pt(3, 3), screen)
	assert.Nil(t, store.View().Current)

	tr.PointerUp()
	assert.False(t, tr.Drawing())
	assert.Empty(t, store.View().Paths)
	assert.Zero(t, store.View().HistoryDepth)
}

func TestToolSwitchMidGestureKeepsBrush(t *testing.T) {
	tr, store := newTranslator(t)

	tr.PointerDown(curve.Pt(1, 1), screen)
	store.Dispatch(state.SetTool{Tool: state.ToolSpray})
	tr.PointerMove(curve.Pt(2, 2), screen)

	assert.Equal(t, "M1,1 L2,2", store.View().Current.D)
}
