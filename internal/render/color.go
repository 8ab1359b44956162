// Package render turns document views into pixels-ready data: stroke
// colours for on-screen widgets and SVG for read-only observers.
package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// named covers the colour keywords the document can hold besides hex.
var named = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
}

// Color resolves a stroke colour string and an opacity into an NRGBA.
// Unparseable colours come out black. A zero opacity is treated as fully
// opaque, out-of-range values are clamped.
func Color(s string, opacity float64) color.NRGBA {
	c, err := parse(s)
	if err != nil {
		c = colorful.Color{}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha(opacity)}
}

// Valid reports whether s is a colour Color understands.
func Valid(s string) bool {
	_, err := parse(s)
	return err == nil
}

func parse(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := named[s]; ok {
		s = hex
	}
	return colorful.Hex(s)
}

func alpha(opacity float64) uint8 {
	if opacity == 0 {
		opacity = 1
	}
	opacity = math.Max(0, math.Min(1, opacity))
	return uint8(math.Round(opacity * 255))
}
