package state

// ActionKind names an action for logs and wire messages.
type ActionKind string

const (
	KindSetTool          ActionKind = "set_tool"
	KindSetColor         ActionKind = "set_color"
	KindSetBrushSize     ActionKind = "set_brush_size"
	KindSetBrushOpacity  ActionKind = "set_brush_opacity"
	KindSetBrushHardness ActionKind = "set_brush_hardness"
	KindStartDrawing     ActionKind = "start_drawing"
	KindDrawing          ActionKind = "drawing"
	KindEndDrawing       ActionKind = "end_drawing"
	KindUndo             ActionKind = "undo"
	KindRedo             ActionKind = "redo"
	KindClear            ActionKind = "clear"
)

// Action is anything the reducer accepts.
type Action interface {
	Kind() ActionKind
}

type SetTool struct{ Tool Tool }

type SetColor struct{ Color string }

type SetBrushSize struct{ Size int }

type SetBrushOpacity struct{ Opacity float64 }

type SetBrushHardness struct{ Hardness int }

// StartDrawing opens a new path. D is the first geometry fragment and ID,
// when set, is carried onto the committed path.
type StartDrawing struct {
	ID string
	D  string
}

// Drawing replaces the geometry of the path being drawn. D holds the full
// accumulated description, not a delta.
type Drawing struct{ D string }

type EndDrawing struct{}

type Undo struct{}

// Redo is accepted and ignored; there is no redo stack.
type Redo struct{}

type Clear struct{}

func (SetTool) Kind() ActionKind          { return KindSetTool }
func (SetColor) Kind() ActionKind         { return KindSetColor }
func (SetBrushSize) Kind() ActionKind     { return KindSetBrushSize }
func (SetBrushOpacity) Kind() ActionKind  { return KindSetBrushOpacity }
func (SetBrushHardness) Kind() ActionKind { return KindSetBrushHardness }
func (StartDrawing) Kind() ActionKind     { return KindStartDrawing }
func (Drawing) Kind() ActionKind          { return KindDrawing }
func (EndDrawing) Kind() ActionKind       { return KindEndDrawing }
func (Undo) Kind() ActionKind             { return KindUndo }
func (Redo) Kind() ActionKind             { return KindRedo }
func (Clear) Kind() ActionKind            { return KindClear }
