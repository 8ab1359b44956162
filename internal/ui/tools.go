package ui

import (
	"fmt"
	"image/color"
	"math"

	"Paintix/internal/render"
	"Paintix/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Store is what the widgets need from the state store: a way to dispatch
// actions and read-only views. Widgets never touch the state directly.
type Store interface {
	Dispatch(state.Action)
	View() state.View
	Subscribe(func(state.View)) func()
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(string)

	selected bool
	border   *canvas.Rectangle
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(render.Color(s.Hex, 1))
	rect.SetMinSize(fyne.NewSize(24, 24))

	s.border = canvas.NewRectangle(color.Transparent)
	s.styleBorder()

	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

func (s *colorSwatch) setSelected(selected bool) {
	s.selected = selected
	if s.border != nil {
		s.styleBorder()
		s.border.Refresh()
	}
}

func (s *colorSwatch) styleBorder() {
	if s.selected {
		s.border.StrokeColor = color.Gray{Y: 0x33}
		s.border.StrokeWidth = 2
	} else {
		s.border.StrokeColor = color.Gray{Y: 200}
		s.border.StrokeWidth = 1
	}
}

var toolIcons = map[state.Tool]fyne.Resource{
	state.ToolPen:     theme.DocumentCreateIcon(),
	state.ToolFinePen: theme.ContentAddIcon(),
	state.ToolSpray:   theme.ColorChromaticIcon(),
	state.ToolFill:    theme.ColorPaletteIcon(),
	state.ToolEraser:  theme.ContentClearIcon(),
}

var toolLabels = map[state.Tool]string{
	state.ToolPen:     "Pen (Ctrl+K)",
	state.ToolFinePen: "Fine pen",
	state.ToolSpray:   "Spray",
	state.ToolFill:    "Fill",
	state.ToolEraser:  "Eraser (Ctrl+E)",
}

// Toolbar holds the tool buttons plus undo and clear.
type Toolbar struct {
	store   Store
	buttons map[state.Tool]*widget.Button
	undo    *widget.Button
	content fyne.CanvasObject
}

// NewToolbar creates the tool row. Each button only dispatches an action.
func NewToolbar(store Store) *Toolbar {
	t := &Toolbar{store: store, buttons: make(map[state.Tool]*widget.Button)}

	var row []fyne.CanvasObject
	for _, tool := range state.Tools {
		btn := widget.NewButtonWithIcon(toolLabels[tool], toolIcons[tool], func() {
			store.Dispatch(state.SetTool{Tool: tool})
		})
		t.buttons[tool] = btn
		row = append(row, btn)
	}
	t.undo = widget.NewButtonWithIcon("Undo (Ctrl+Z)", theme.ContentUndoIcon(), func() {
		store.Dispatch(state.Undo{})
	})
	clearBtn := widget.NewButtonWithIcon("Clear (Ctrl+C)", theme.DeleteIcon(), func() {
		store.Dispatch(state.Clear{})
	})
	row = append(row, widget.NewSeparator(), t.undo, clearBtn, layout.NewSpacer())

	t.content = container.NewHBox(row...)
	t.sync(store.View())
	store.Subscribe(func(v state.View) { fyne.Do(func() { t.sync(v) }) })
	return t
}

func (t *Toolbar) Content() fyne.CanvasObject { return t.content }

func (t *Toolbar) sync(v state.View) {
	for tool, btn := range t.buttons {
		want := widget.MediumImportance
		if tool == v.Settings.Tool {
			want = widget.HighImportance
		}
		if btn.Importance != want {
			btn.Importance = want
			btn.Refresh()
		}
	}
	if v.HistoryDepth == 0 {
		t.undo.Disable()
	} else {
		t.undo.Enable()
	}
}

// BrushControls is the side panel: preview, palette, size and opacity.
type BrushControls struct {
	store    Store
	preview  *canvas.Circle
	swatches []*colorSwatch
	size     *widget.Slider
	sizeL    *widget.Label
	opacity  *widget.Slider
	opacityL *widget.Label
	content  fyne.CanvasObject

	syncing bool // set while sliders follow the store, so they do not echo back
}

// NewBrushControls creates the side panel for the given palette.
func NewBrushControls(store Store, palette []string) *BrushControls {
	c := &BrushControls{store: store}

	c.preview = canvas.NewCircle(color.Black)
	c.preview.StrokeColor = color.Gray{Y: 0xcc}
	c.preview.StrokeWidth = 2
	preview := container.NewGridWrap(fyne.NewSize(48, 48), c.preview)

	pick := func(hex string) { store.Dispatch(state.SetColor{Color: hex}) }
	var swatches []fyne.CanvasObject
	for _, hex := range palette {
		sw := newColorSwatch(hex, pick)
		c.swatches = append(c.swatches, sw)
		swatches = append(swatches, sw)
	}
	grid := container.NewGridWithColumns(5, swatches...)

	c.sizeL = widget.NewLabel("")
	c.size = widget.NewSlider(state.MinBrushSize, state.MaxBrushSize)
	c.size.Step = 1
	c.size.OnChanged = func(v float64) {
		if c.syncing {
			return
		}
		store.Dispatch(state.SetBrushSize{Size: int(math.Round(v))})
	}

	c.opacityL = widget.NewLabel("")
	c.opacity = widget.NewSlider(state.MinBrushOpacity, state.MaxBrushOpacity)
	c.opacity.Step = 0.1
	c.opacity.OnChanged = func(v float64) {
		if c.syncing {
			return
		}
		store.Dispatch(state.SetBrushOpacity{Opacity: math.Round(v*10) / 10})
	}

	c.content = container.NewVBox(
		container.NewCenter(preview),
		grid,
		c.sizeL, c.size,
		c.opacityL, c.opacity,
	)
	c.sync(store.View())
	store.Subscribe(func(v state.View) { fyne.Do(func() { c.sync(v) }) })
	return c
}

func (c *BrushControls) Content() fyne.CanvasObject { return c.content }

func (c *BrushControls) sync(v state.View) {
	c.syncing = true
	defer func() { c.syncing = false }()

	ts := v.Settings
	c.preview.FillColor = render.Color(ts.Color, ts.BrushOpacity)
	c.preview.Refresh()

	for _, sw := range c.swatches {
		sw.setSelected(sw.Hex == ts.Color)
	}

	c.sizeL.SetText(fmt.Sprintf("Size: %dpx", ts.BrushSize))
	if c.size.Value != float64(ts.BrushSize) {
		c.size.SetValue(float64(ts.BrushSize))
	}
	c.opacityL.SetText(fmt.Sprintf("Opacity: %d%%", int(math.Round(ts.BrushOpacity*100))))
	if c.opacity.Value != ts.BrushOpacity {
		c.opacity.SetValue(ts.BrushOpacity)
	}
}
