package ui

import (
	"Paintix/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Shortcut binds one key combination to exactly one action. Ctrl/Cmd+Z and
// Ctrl/Cmd+C reach the canvas as the standard Undo and Copy shortcuts, so
// they are bound as those; the other keys are custom desktop shortcuts.
type Shortcut struct {
	Keys   fyne.Shortcut
	Action state.Action
}

// Shortcuts is the keyboard map of the canvas.
var Shortcuts = []Shortcut{
	{Keys: &fyne.ShortcutUndo{}, Action: state.Undo{}},
	{Keys: ctrl(fyne.KeyK), Action: state.SetTool{Tool: state.ToolPen}},
	{Keys: ctrl(fyne.KeyE), Action: state.SetTool{Tool: state.ToolEraser}},
	{Keys: &fyne.ShortcutCopy{}, Action: state.Clear{}},
}

// ShortcutBinder is the part of a canvas shortcuts are registered on.
type ShortcutBinder interface {
	AddShortcut(fyne.Shortcut, func(fyne.Shortcut))
}

// BindShortcuts registers Shortcuts on c. The handlers dispatch and do
// nothing else.
func BindShortcuts(c ShortcutBinder, d interface{ Dispatch(state.Action) }) {
	for _, sc := range Shortcuts {
		c.AddShortcut(sc.Keys, func(fyne.Shortcut) {
			d.Dispatch(sc.Action)
		})
	}
}

func ctrl(key fyne.KeyName) *desktop.CustomShortcut {
	return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
}
