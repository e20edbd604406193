package view

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearScreen = "\033[H\033[2J"
)

// Text renders whole frames to a writer. Element writes are buffered and drawn on Flush.
type Text struct {
	mu     sync.Mutex
	w      io.Writer
	clear  bool
	cells  [][]bool
	status string
	err    error

	aliveStyle  lipgloss.Style
	deadStyle   lipgloss.Style
	statusStyle lipgloss.Style
}

// NewText creates a text surface for a rows x cols board.
// When clear is set every frame starts by clearing the terminal.
func NewText(w io.Writer, rows, cols int, clear bool) *Text {
	renderer := lipgloss.NewRenderer(w)

	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}

	return &Text{
		w:           w,
		clear:       clear,
		cells:       cells,
		aliveStyle:  renderer.NewStyle().Foreground(lipgloss.Color("82")),
		deadStyle:   renderer.NewStyle(),
		statusStyle: renderer.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

type textElement struct {
	t   *Text
	pos model.Position
}

func (e *textElement) SetAlive(alive bool) {
	e.t.mu.Lock()
	e.t.cells[e.pos.Row][e.pos.Col] = alive
	e.t.mu.Unlock()
}

// NewElement binds a cell to its character slot; the pixel offset has no meaning on a character grid
func (t *Text) NewElement(pos model.Position, _ model.Offset, alive bool) model.Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cells[pos.Row][pos.Col] = alive
	return &textElement{t: t, pos: pos}
}

// SetStatus sets the line printed above the next frame
func (t *Text) SetStatus(status string) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// Flush draws the status line and the grid
func (t *Text) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	if t.clear {
		sb.WriteString(clearScreen)
	}
	if t.status != "" {
		sb.WriteString(t.statusStyle.Render(t.status))
		sb.WriteByte('\n')
	}
	for _, row := range t.cells {
		t.renderRow(&sb, row)
		sb.WriteByte('\n')
	}

	if _, err := io.WriteString(t.w, sb.String()); err != nil && t.err == nil {
		t.err = errors.Wrap(err, "[Text.Flush] failed to write frame")
	}
}

// Err returns the first write error, if any
func (t *Text) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// renderRow styles runs of equal cells together
func (t *Text) renderRow(sb *strings.Builder, row []bool) {
	for start := 0; start < len(row); {
		end := start
		for end < len(row) && row[end] == row[start] {
			end++
		}
		if row[start] {
			sb.WriteString(t.aliveStyle.Render(strings.Repeat(gridPosBlock, end-start)))
		} else {
			sb.WriteString(t.deadStyle.Render(strings.Repeat(gridPosEmpty, end-start)))
		}
		start = end
	}
}
