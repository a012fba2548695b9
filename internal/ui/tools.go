package ui

import (
	"fmt"

	"RectBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar is the top bar: the add action and a status line.
type Toolbar struct {
	*fyne.Container
	status *widget.Label
	cancel func()
}

// NewToolbar builds the toolbar for board. extra is appended to the
// rectangle count, e.g. the inspector address.
func NewToolbar(board *BoardWidget, extra string) *Toolbar {
	add := widget.NewButtonWithIcon("Add Rectangle", theme.ContentAddIcon(), board.AddRectangle)

	tb := &Toolbar{status: widget.NewLabel(statusText(board.store.Len(), extra))}
	tb.cancel = board.store.Subscribe(func(state.Change) {
		tb.status.SetText(statusText(board.store.Len(), extra))
	})

	tb.Container = container.NewHBox(
		add,
		widget.NewSeparator(),
		tb.status,
		layout.NewSpacer(),
	)
	return tb
}

// Close stops the status line from following the store.
func (tb *Toolbar) Close() {
	if tb.cancel != nil {
		tb.cancel()
		tb.cancel = nil
	}
}

func statusText(count int, extra string) string {
	s := fmt.Sprintf("%d rectangles", count)
	if count == 1 {
		s = "1 rectangle"
	}
	if extra != "" {
		s += " | " + extra
	}
	return s
}
