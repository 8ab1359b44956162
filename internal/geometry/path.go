package geometry

import (
	"regexp"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// Format renders elements as path-description text ("M10,10 L20,20").
func Format(p curve.BezPath) string {
	return p.SVG(curve.SVGOptions{})
}

// Extend appends the elements of frag to an existing description.
func Extend(d string, frag curve.BezPath) string {
	if len(frag) == 0 {
		return d
	}
	if d == "" {
		return Format(frag)
	}
	return d + " " + Format(frag)
}

var commandRe = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// Parse reads a path description made of M, L, H, V and Z commands, absolute
// or relative, with comma or space separated numbers. Unknown commands and
// malformed numbers are skipped. A move followed by extra coordinate pairs
// draws lines to them, as in SVG.
func Parse(d string) curve.BezPath {
	var (
		out          curve.BezPath
		cur, subpath curve.Point
	)
	for _, match := range commandRe.FindAllStringSubmatch(strings.TrimSpace(d), -1) {
		cmd := match[1]
		coords := parseCoords(match[2])

		switch cmd {
		case "M", "m", "L", "l":
			for i := 0; i+1 < len(coords); i += 2 {
				pt := curve.Pt(coords[i], coords[i+1])
				if cmd == "m" || cmd == "l" {
					pt = cur.Translate(curve.Vec(coords[i], coords[i+1]))
				}
				cur = pt
				if i == 0 && (cmd == "M" || cmd == "m") {
					subpath = pt
					out = append(out, curve.MoveTo(pt))
				} else {
					out = append(out, curve.LineTo(pt))
				}
			}

		case "H", "h":
			for _, x := range coords {
				if cmd == "h" {
					x += cur.X
				}
				cur.X = x
				out = append(out, curve.LineTo(cur))
			}

		case "V", "v":
			for _, y := range coords {
				if cmd == "v" {
					y += cur.Y
				}
				cur.Y = y
				out = append(out, curve.LineTo(cur))
			}

		case "Z", "z":
			if len(out) > 0 {
				out = append(out, curve.ClosePath())
				cur = subpath
			}
		}
	}
	return out
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))

	coords := make([]float64, 0, len(parts))
	for _, part := range parts {
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			coords = append(coords, v)
		}
	}
	return coords
}

// Lines flattens a parsed description into straight segments. Closing a
// subpath yields the segment back to its start.
func Lines(p curve.BezPath) []curve.Line {
	var out []curve.Line
	for seg := range p.Segments() {
		if seg.Kind == curve.LineKind {
			out = append(out, seg.Line())
		}
	}
	return out
}

// Bounds returns the bounding box of the points of p, and false if it has
// none.
func Bounds(p curve.BezPath) (curve.Rect, bool) {
	if len(p) == 0 {
		return curve.Rect{}, false
	}
	r := curve.NewRectFromPoints(p[0].P0, p[0].P0)
	for _, el := range p {
		if el.Kind == curve.MoveToKind || el.Kind == curve.LineToKind {
			r = r.UnionPoint(el.P0)
		}
	}
	return r, true
}
