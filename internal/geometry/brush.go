// Package geometry turns pointer input into path descriptions and feeds the
// three-phase drawing gesture into the state store.
package geometry

import (
	"math/rand/v2"

	"Paintix/internal/state"

	"honnef.co/go/curve"
)

// Brush generates path elements for one tool. Begin is called on pointer
// down, Continue on every pointer move of the same gesture. Both return only
// the new elements; the translator appends them to the accumulated geometry.
type Brush interface {
	Begin(at curve.Point, ts state.ToolSetting) curve.BezPath
	Continue(at curve.Point, ts state.ToolSetting) curve.BezPath
}

// Rand is the random source of the spray brush. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// polyline draws a single connected line through every pointer position.
type polyline struct{}

func (polyline) Begin(at curve.Point, _ state.ToolSetting) curve.BezPath {
	return curve.BezPath{curve.MoveTo(at)}
}

// Continue always emits a segment, even a zero-length one when the pointer
// did not move.
func (polyline) Continue(at curve.Point, _ state.ToolSetting) curve.BezPath {
	return curve.BezPath{curve.LineTo(at)}
}

const (
	sprayBeginDashes    = 8
	sprayContinueDashes = 5
	sprayDashLength     = 0.5
)

// spray scatters short dashes within half a brush size of the pointer.
// Its output is not reproducible unless rnd is seeded.
type spray struct {
	rnd Rand
}

func (s spray) Begin(at curve.Point, ts state.ToolSetting) curve.BezPath {
	return s.dashes(at, ts.BrushSize, sprayBeginDashes)
}

func (s spray) Continue(at curve.Point, ts state.ToolSetting) curve.BezPath {
	return s.dashes(at, ts.BrushSize, sprayContinueDashes)
}

func (s spray) dashes(at curve.Point, size, n int) curve.BezPath {
	spread := float64(size)
	out := make(curve.BezPath, 0, 2*n)
	for range n {
		p := at.Translate(curve.Vec2{
			X: (s.rnd.Float64() - 0.5) * spread,
			Y: (s.rnd.Float64() - 0.5) * spread,
		})
		out = append(out,
			curve.MoveTo(p),
			curve.LineTo(p.Translate(curve.Vec(sprayDashLength, sprayDashLength))),
		)
	}
	return out
}

// unseeded returns a source seeded from the runtime's global generator.
func unseeded() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// brushes maps every stroke-producing tool to its brush. fill is absent: it
// never produces a path.
func brushes(rnd Rand) map[state.Tool]Brush {
	return map[state.Tool]Brush{
		state.ToolPen:     polyline{},
		state.ToolFinePen: polyline{},
		state.ToolEraser:  polyline{},
		state.ToolSpray:   spray{rnd: rnd},
	}
}
