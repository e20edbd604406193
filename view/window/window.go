// Package window shows a board in a fyne window, one positioned rectangle per cell.
package window

import (
	"context"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/sheikhrachel/lifegrid/model"
)

var (
	aliveColor = color.NRGBA{R: 0x3c, G: 0xdc, B: 0x50, A: 0xff}
	deadColor  = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff}
)

// Window is a model.Surface drawing into a fyne window.
// Element writes are queued and applied on the fyne thread by Flush.
type Window struct {
	win      fyne.Window
	grid     *fyne.Container
	status   *widget.Label
	cellSize float32

	mu      sync.Mutex
	pending map[*canvas.Rectangle]bool
}

// New creates the window for a rows x cols board of cellSize pixel cells
func New(a fyne.App, title string, rows, cols, cellSize int) *Window {
	w := &Window{
		win:      a.NewWindow(title),
		grid:     container.NewWithoutLayout(),
		status:   widget.NewLabel(""),
		cellSize: float32(cellSize),
		pending:  make(map[*canvas.Rectangle]bool),
	}

	board := canvas.NewRectangle(deadColor)
	board.SetMinSize(fyne.NewSize(float32(cols*cellSize), float32(rows*cellSize)))

	w.win.SetContent(container.NewBorder(w.status, nil, nil, nil, container.NewStack(board, w.grid)))
	w.win.SetFixedSize(true)
	return w
}

type element struct {
	w    *Window
	rect *canvas.Rectangle
}

func (e *element) SetAlive(alive bool) {
	e.w.mu.Lock()
	e.w.pending[e.rect] = alive
	e.w.mu.Unlock()
}

func fill(alive bool) color.Color {
	if alive {
		return aliveColor
	}
	return deadColor
}

// NewElement places a rectangle at offset and attaches it to the grid container
func (w *Window) NewElement(_ model.Position, offset model.Offset, alive bool) model.Element {
	rect := canvas.NewRectangle(fill(alive))
	rect.Move(fyne.NewPos(float32(offset.X), float32(offset.Y)))
	rect.Resize(fyne.NewSquareSize(w.cellSize))
	w.grid.Add(rect)
	return &element{w: w, rect: rect}
}

// Flush applies the queued cell writes on the fyne thread
func (w *Window) Flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[*canvas.Rectangle]bool, len(pending))
	w.mu.Unlock()

	fyne.Do(func() {
		for rect, alive := range pending {
			rect.FillColor = fill(alive)
			rect.Refresh()
		}
	})
}

// SetStatus replaces the status line
func (w *Window) SetStatus(status string) {
	fyne.Do(func() {
		w.status.SetText(status)
	})
}

// ShowAndRun blocks on the fyne event loop. Closing the window calls stop;
// the window closes itself once ctx is done.
func (w *Window) ShowAndRun(ctx context.Context, stop func()) {
	w.win.SetOnClosed(stop)
	go func() {
		<-ctx.Done()
		fyne.Do(w.win.Close)
	}()
	w.win.ShowAndRun()
}
