package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/lifegrid/model"
)

func TestTextFlush(t *testing.T) {
	var buf bytes.Buffer
	text := NewText(&buf, 2, 3, false)

	board, err := model.NewBoard(2, 3, 10, model.Alive(
		model.Position{Row: 0, Col: 0},
		model.Position{Row: 1, Col: 2},
	), text)
	require.NoError(t, err)
	require.Equal(t, 2, board.Population())

	text.SetStatus("gen 0")
	text.Flush()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "gen 0", lines[0])
	assert.Equal(t, "██    ", lines[1])
	assert.Equal(t, "    ██", lines[2])
}

func TestTextElementWrites(t *testing.T) {
	var buf bytes.Buffer
	text := NewText(&buf, 1, 4, true)

	elements := make([]model.Element, 4)
	for c := range 4 {
		pos := model.Position{Row: 0, Col: c}
		elements[c] = text.NewElement(pos, model.OffsetOf(pos, 10), false)
	}
	elements[1].SetAlive(true)
	elements[2].SetAlive(true)

	// nothing is drawn until Flush
	assert.Zero(t, buf.Len())

	text.Flush()
	assert.Equal(t, clearScreen+"  ████  \n", buf.String())
	assert.NoError(t, text.Err())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestTextWriteError(t *testing.T) {
	text := NewText(failingWriter{}, 1, 1, false)
	text.Flush()
	assert.ErrorContains(t, text.Err(), "closed")
}
