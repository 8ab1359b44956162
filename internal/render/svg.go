package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"Paintix/internal/geometry"
	"Paintix/internal/state"

	"honnef.co/go/curve"
)

// DefaultBackground is the canvas colour before the fill tool is used.
const DefaultBackground = "white"

// Scene is what a renderer draws: a document view on a background, in a
// logical coordinate space.
type Scene struct {
	View       state.View
	Background string
	Size       curve.Size
}

// Paths returns the paths of the scene back to front: committed paths in
// order, then the path being drawn.
func (s Scene) Paths() []state.Path {
	out := make([]state.Path, 0, len(s.View.Paths)+1)
	out = append(out, s.View.Paths...)
	if s.View.Current != nil {
		out = append(out, *s.View.Current)
	}
	return out
}

// WriteSVG writes the scene as a standalone SVG document. Path geometry is
// re-serialised from its parsed form so that only M, L and Z commands reach
// the output.
func WriteSVG(w io.Writer, s Scene) error {
	bg := s.Background
	if !Valid(bg) {
		bg = DefaultBackground
	}
	width, height := num(s.Size.Width), num(s.Size.Height)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		width, height, width, height)
	b.WriteByte('\n')
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`, html.EscapeString(bg))
	b.WriteByte('\n')

	for _, p := range s.Paths() {
		bp := geometry.Parse(p.D)
		if !s.visible(bp, p.StrokeWidth) {
			continue
		}
		d := geometry.Format(bp)
		c := Color(p.Stroke, p.Opacity)
		opacity := p.Opacity
		if opacity == 0 {
			opacity = 1
		}
		fmt.Fprintf(&b,
			`<path d="%s" stroke="#%02x%02x%02x" stroke-width="%d" fill="none" stroke-linecap="round" stroke-linejoin="round" opacity="%s"/>`,
			d, c.R, c.G, c.B, p.StrokeWidth, num(opacity))
		b.WriteByte('\n')
	}
	b.WriteString("</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// visible reports whether a path stroked at width reaches the canvas. A
// scene without a size shows every non-empty path.
func (s Scene) visible(p curve.BezPath, width int) bool {
	r, ok := geometry.Bounds(p)
	if !ok {
		return false
	}
	if s.Size.Width <= 0 || s.Size.Height <= 0 {
		return true
	}
	half := float64(width) / 2
	r = r.Inflate(half, half)
	return r.MaxX() >= 0 && r.MaxY() >= 0 && r.MinX() <= s.Size.Width && r.MinY() <= s.Size.Height
}

// SVG is WriteSVG into a string.
func SVG(s Scene) string {
	var b strings.Builder
	WriteSVG(&b, s)
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
