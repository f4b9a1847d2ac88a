package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// RunApp builds the window around the board and blocks until it closes.
// shareLink, when non-empty, is shown so other peers can join.
func RunApp(shareLink string, board *BoardWidget) {
	inkApp := app.New()
	window := inkApp.NewWindow("InkBoard")
	window.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(board)
	if shareLink != "" {
		board.SetStatus("Share link: " + shareLink)
	}

	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, board)
	window.SetContent(content)
	window.ShowAndRun()
}
