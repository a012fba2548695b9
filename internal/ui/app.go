package ui

import (
	"RectBoard/internal/config"
	"RectBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// RunApp opens the main window and blocks until it is closed.
func RunApp(cfg *config.Config, s *state.Store, status string) {
	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Title)
	myWindow.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	board := NewBoardWidget(s)
	defer board.Close()
	readout := NewReadout(s)
	defer readout.Close()

	toolbar := NewToolbar(board, status)
	defer toolbar.Close()

	content := container.NewBorder(toolbar.Container, readout, nil, nil, board)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
