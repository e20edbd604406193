package window

import (
	"context"
	"testing"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/lifegrid/model"
)

func TestWindowElements(t *testing.T) {
	a := test.NewTempApp(t)
	w := New(a, "life", 2, 3, 10)

	board, err := model.NewBoard(2, 3, 10, model.Alive(model.Position{Row: 1, Col: 1}), w)
	require.NoError(t, err)

	require.Len(t, w.grid.Objects, 6)
	for i, obj := range w.grid.Objects {
		rect, ok := obj.(*canvas.Rectangle)
		require.True(t, ok)
		assert.Equal(t, float32((i%3)*10), rect.Position().X)
		assert.Equal(t, float32((i/3)*10), rect.Position().Y)
		assert.Equal(t, float32(10), rect.Size().Width)
	}

	center := w.grid.Objects[4].(*canvas.Rectangle)
	assert.Equal(t, aliveColor, center.FillColor)

	_, err = model.NewEngine(board).Tick(context.Background())
	require.NoError(t, err)

	assert.Equal(t, deadColor, center.FillColor)
	assert.Empty(t, w.pending)
}
