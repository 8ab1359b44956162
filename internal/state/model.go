package state

import "slices"

// Tool identifies the active drawing tool.
type Tool string

const (
	ToolPen     Tool = "pen"
	ToolFinePen Tool = "finepen"
	ToolSpray   Tool = "spray"
	ToolFill    Tool = "fill"
	ToolEraser  Tool = "eraser"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPen, ToolFinePen, ToolSpray, ToolFill, ToolEraser}

// Valid reports whether t is one of the known tools.
func (t Tool) Valid() bool {
	return slices.Contains(Tools, t)
}

// Brush limits accepted by the reducer.
const (
	MinBrushSize     = 1
	MaxBrushSize     = 50
	MinBrushOpacity  = 0.1
	MaxBrushOpacity  = 1.0
	MinBrushHardness = 0
	MaxBrushHardness = 100
)

// Stroke widths forced by some tools, independent of the brush size.
const (
	FinePenWidth = 1
	SprayWidth   = 2
)

// EraserStroke is the stroke colour of every eraser path.
const EraserStroke = "white"

// ToolSetting holds the user's control-panel choices.
type ToolSetting struct {
	Tool          Tool    `json:"tool"`
	Color         string  `json:"color"`
	BrushSize     int     `json:"brushSize"`
	BrushOpacity  float64 `json:"brushOpacity"`
	BrushHardness int     `json:"brushHardness"` // reserved, no geometry effect
}

// DefaultToolSetting returns the settings of a fresh canvas.
func DefaultToolSetting() ToolSetting {
	return ToolSetting{
		Tool:          ToolPen,
		Color:         "#000000",
		BrushSize:     5,
		BrushOpacity:  1,
		BrushHardness: 100,
	}
}

// strokeWidth resolves the width a new path gets under these settings.
func (ts ToolSetting) strokeWidth() int {
	switch ts.Tool {
	case ToolFinePen:
		return FinePenWidth
	case ToolSpray:
		return SprayWidth
	default:
		return ts.BrushSize
	}
}

// strokeColor resolves the colour a new path gets under these settings.
func (ts ToolSetting) strokeColor() string {
	if ts.Tool == ToolEraser {
		return EraserStroke
	}
	return ts.Color
}

// Path is one stroke. Once committed it is never modified.
type Path struct {
	ID          string  `json:"id,omitempty"`
	D           string  `json:"d"`
	Stroke      string  `json:"stroke"`
	StrokeWidth int     `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
}

// Document is the drawing itself: committed paths in z-order, the path
// being drawn, and one undo snapshot per committed path.
type Document struct {
	Paths   []Path
	Current *Path
	History [][]Path
}

// State is everything the reducer works on.
type State struct {
	ToolSetting
	Document
}

// Initial returns an empty document with the given settings.
func Initial(ts ToolSetting) State {
	return State{
		ToolSetting: ts,
		Document:    Document{Paths: []Path{}},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Paths = clonePaths(s.Paths)
	if s.Current != nil {
		cur := *s.Current
		out.Current = &cur
	}
	if s.History != nil {
		out.History = make([][]Path, len(s.History))
		for i, snap := range s.History {
			out.History[i] = clonePaths(snap)
		}
	}
	return out
}

// View returns the read-only picture of s handed to observers.
func (s State) View() View {
	v := View{
		Settings:     s.ToolSetting,
		Paths:        clonePaths(s.Paths),
		HistoryDepth: len(s.History),
	}
	if s.Current != nil {
		cur := *s.Current
		v.Current = &cur
	}
	return v
}

// View is an immutable snapshot of the document for renderers and widgets.
// It shares no memory with the store.
type View struct {
	Settings     ToolSetting `json:"settings"`
	Paths        []Path      `json:"paths"`
	Current      *Path       `json:"currentPath,omitempty"`
	HistoryDepth int         `json:"historyDepth"`
}

// Drawing reports whether a gesture is in progress.
func (v View) Drawing() bool { return v.Current != nil }

// clonePaths copies ps into a non-nil slice.
func clonePaths(ps []Path) []Path {
	out := make([]Path, len(ps))
	copy(out, ps)
	return out
}
