package model

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	board, surface := newTestBoard(t, 3, 4, Alive(Position{Row: 1, Col: 2}))

	require.Equal(t, 3, board.Rows())
	require.Equal(t, 4, board.Cols())
	require.Len(t, surface.created, 12)

	// elements are created in row-major order at cell-size offsets
	for i, pos := range surface.created {
		assert.Equal(t, Position{Row: i / 4, Col: i % 4}, pos)
		assert.Equal(t, Offset{X: pos.Col * 10, Y: pos.Row * 10}, surface.offsets[i])
	}

	for r := range 3 {
		for c := range 4 {
			cell, ok := board.Cell(r, c)
			require.True(t, ok)
			assert.Equal(t, Position{Row: r, Col: c}, cell.Position())
		}
	}

	assert.True(t, board.Alive(1, 2))
	assert.Equal(t, 1, board.Population())
	assert.Zero(t, surface.writes)
}

func TestNewBoardErrors(t *testing.T) {
	surface := &recordingSurface{}

	tests := []struct {
		name    string
		rows    int
		cols    int
		size    int
		seed    Seeder
		surface Surface
		want    error
	}{
		{name: "zero rows", rows: 0, cols: 5, size: 10, seed: Dead(), surface: surface, want: ErrInvalidDimensions},
		{name: "negative cols", rows: 5, cols: -1, size: 10, seed: Dead(), surface: surface, want: ErrInvalidDimensions},
		{name: "zero cell size", rows: 5, cols: 5, size: 0, seed: Dead(), surface: surface, want: ErrInvalidCellSize},
		{name: "nil seeder", rows: 5, cols: 5, size: 10, seed: nil, surface: surface, want: ErrNilSeeder},
		{name: "nil surface", rows: 5, cols: 5, size: 10, seed: Dead(), surface: nil, want: ErrNilSurface},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoard(tt.rows, tt.cols, tt.size, tt.seed, tt.surface)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestBoardOutOfBounds(t *testing.T) {
	board, _ := newTestBoard(t, 3, 3, Bernoulli(rand.New(rand.NewSource(1)), 1))

	for _, pos := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {-5, 10}} {
		_, ok := board.Cell(pos.Row, pos.Col)
		assert.False(t, ok, "%v", pos)
		assert.False(t, board.Alive(pos.Row, pos.Col), "%v", pos)
	}
}

func TestNeighbourCountFullBoard(t *testing.T) {
	board, _ := newTestBoard(t, 5, 5, Bernoulli(rand.New(rand.NewSource(1)), 1))

	tests := []struct {
		pos  Position
		want int
	}{
		{pos: Position{Row: 0, Col: 0}, want: 3},
		{pos: Position{Row: 0, Col: 4}, want: 3},
		{pos: Position{Row: 4, Col: 0}, want: 3},
		{pos: Position{Row: 4, Col: 4}, want: 3},
		{pos: Position{Row: 0, Col: 2}, want: 5},
		{pos: Position{Row: 2, Col: 0}, want: 5},
		{pos: Position{Row: 2, Col: 2}, want: 8},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, board.NeighbourCount(tt.pos), "%v", tt.pos)
	}
}

func TestNeighbourCountIsBoundedAndPure(t *testing.T) {
	board, surface := newTestBoard(t, 12, 9, Bernoulli(rand.New(rand.NewSource(42)), 0.5))
	before := board.Hash()

	for r := range board.Rows() {
		for c := range board.Cols() {
			pos := Position{Row: r, Col: c}
			first := board.NeighbourCount(pos)
			assert.Equal(t, first, board.NeighbourCount(pos))

			inBounds := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if (dr != 0 || dc != 0) && r+dr >= 0 && r+dr < board.Rows() && c+dc >= 0 && c+dc < board.Cols() {
						inBounds++
					}
				}
			}
			assert.GreaterOrEqual(t, first, 0)
			assert.LessOrEqual(t, first, inBounds)
		}
	}

	assert.Equal(t, before, board.Hash())
	assert.Zero(t, surface.writes)
}

func TestNeighbourCountLiteral(t *testing.T) {
	// .#.
	// ##.
	// ..#
	board, _ := newTestBoard(t, 3, 3, Alive(
		Position{Row: 0, Col: 1},
		Position{Row: 1, Col: 0},
		Position{Row: 1, Col: 1},
		Position{Row: 2, Col: 2},
	))

	assert.Equal(t, 3, board.NeighbourCount(Position{Row: 0, Col: 0}))
	assert.Equal(t, 3, board.NeighbourCount(Position{Row: 1, Col: 1}))
	assert.Equal(t, 3, board.NeighbourCount(Position{Row: 1, Col: 2}))
	assert.Equal(t, 2, board.NeighbourCount(Position{Row: 2, Col: 0}))
	assert.Equal(t, 3, board.NeighbourCount(Position{Row: 2, Col: 1}))
}

func TestHashTracksState(t *testing.T) {
	a, _ := newTestBoard(t, 4, 4, Alive(Block(Position{Row: 1, Col: 1})...))
	b, _ := newTestBoard(t, 4, 4, Alive(Block(Position{Row: 1, Col: 1})...))
	c, _ := newTestBoard(t, 4, 4, Alive(Blinker(Position{Row: 1, Col: 0})...))

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}
