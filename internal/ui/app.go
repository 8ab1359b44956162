package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Window options.
type Options struct {
	Title   string
	Width   float32
	Height  float32
	Palette []string
	Footer  string
}

// RunApp opens the main window around board and blocks until it is closed.
func RunApp(opts Options, store Store, board *Board) {
	myApp := app.New()
	myWindow := myApp.NewWindow(opts.Title)
	myWindow.Resize(fyne.NewSize(opts.Width, opts.Height))
	myWindow.SetContent(Layout(opts, store, board))
	BindShortcuts(myWindow.Canvas(), store)
	myWindow.ShowAndRun()
}

// Layout assembles toolbar, brush panel, board and footer.
func Layout(opts Options, store Store, board *Board) fyne.CanvasObject {
	toolbar := NewToolbar(store)
	brush := NewBrushControls(store, opts.Palette)

	footer := widget.NewLabel(opts.Footer)
	footer.Alignment = fyne.TextAlignCenter

	sidebar := container.NewPadded(brush.Content())
	return container.NewBorder(
		toolbar.Content(),
		footer,
		sidebar,
		nil,
		board,
	)
}
