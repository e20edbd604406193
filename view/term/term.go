// Package term draws a board on a tcell screen, two columns per cell, below a status line.
package term

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/lifegrid/model"
)

const boardTop = 1

// Screen is a model.Surface backed by a tcell screen
type Screen struct {
	screen tcell.Screen

	aliveStyle  tcell.Style
	deadStyle   tcell.Style
	statusStyle tcell.Style
}

// New wraps an initialised tcell screen
func New(screen tcell.Screen, invert bool) *Screen {
	fg, bg := tcell.ColorBlack, tcell.ColorGreen
	if invert {
		fg, bg = bg, fg
	}

	return &Screen{
		screen:      screen,
		aliveStyle:  tcell.StyleDefault.Foreground(fg).Background(bg),
		deadStyle:   tcell.StyleDefault.Foreground(bg).Background(fg),
		statusStyle: tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

type element struct {
	s   *Screen
	pos model.Position
}

func (e *element) SetAlive(alive bool) {
	e.s.draw(e.pos, alive)
}

func (s *Screen) draw(pos model.Position, alive bool) {
	style := s.deadStyle
	if alive {
		style = s.aliveStyle
	}
	x, y := pos.Col*2, boardTop+pos.Row
	s.screen.SetContent(x, y, ' ', nil, style)
	s.screen.SetContent(x+1, y, ' ', nil, style)
}

// NewElement draws the cell's initial state into the back buffer
func (s *Screen) NewElement(pos model.Position, _ model.Offset, alive bool) model.Element {
	s.draw(pos, alive)
	return &element{s: s, pos: pos}
}

// SetStatus replaces the status line
func (s *Screen) SetStatus(status string) {
	width, _ := s.screen.Size()
	runes := []rune(status)
	for x := range max(width, len(runes)) {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		s.screen.SetContent(x, 0, r, nil, s.statusStyle)
	}
}

// Flush presents the pending cell writes
func (s *Screen) Flush() {
	s.screen.Show()
}

// Listen handles terminal events until ctx is done, calling quit on q, Esc or Ctrl-C
func (s *Screen) Listen(ctx context.Context, quit func()) {
	events := make(chan tcell.Event)
	go s.screen.ChannelEvents(events, ctx.Done())

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					quit()
					return
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		}
	}
}
