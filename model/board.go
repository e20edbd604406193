package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrInvalidCellSize   = errors.New("cell size must be positive")
	ErrNilSurface        = errors.New("surface is required")
	ErrNilSeeder         = errors.New("seeder is required")
)

// Board is the fixed-size table of cells for one simulation
type Board struct {
	rows     int
	cols     int
	cellSize int
	cells    [][]Cell
	surface  Surface
}

// NewBoard creates a rows x cols board, seeding each cell and binding it to a freshly created element.
// Elements are requested from the surface in row-major order.
func NewBoard(rows, cols, cellSize int, seed Seeder, surface Surface) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewBoard] got %dx%d", rows, cols)
	}
	if cellSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidCellSize, "[NewBoard] got %d", cellSize)
	}
	if seed == nil {
		return nil, errors.WithStack(ErrNilSeeder)
	}
	if surface == nil {
		return nil, errors.WithStack(ErrNilSurface)
	}

	cells := make([][]Cell, rows)
	for r := range rows {
		cells[r] = make([]Cell, cols)
		for c := range cols {
			pos := Position{Row: r, Col: c}
			alive := seed(pos)
			cells[r][c] = Cell{
				pos:     pos,
				alive:   alive,
				element: surface.NewElement(pos, OffsetOf(pos, cellSize), alive),
			}
		}
	}

	return &Board{
		rows:     rows,
		cols:     cols,
		cellSize: cellSize,
		cells:    cells,
		surface:  surface,
	}, nil
}

// Rows returns the number of rows
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns
func (b *Board) Cols() int {
	return b.cols
}

// CellSize returns the pixel size of a cell
func (b *Board) CellSize() int {
	return b.cellSize
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Cell returns the cell at (row, col). ok is false when the position is off the board.
func (b *Board) Cell(row, col int) (cell Cell, ok bool) {
	if !b.inBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[row][col], true
}

// Alive returns the state of a cell, false when off the board
func (b *Board) Alive(row, col int) bool {
	if !b.inBounds(row, col) {
		return false
	}
	return b.cells[row][col].alive
}

// NeighbourCount counts the living in-bounds Moore neighbours of pos. The board is not modified.
func (b *Board) NeighbourCount(pos Position) int {
	count := 0

	minRow := max(0, pos.Row-1)
	maxRow := min(b.rows-1, pos.Row+1)
	minCol := max(0, pos.Col-1)
	maxCol := min(b.cols-1, pos.Col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == pos.Row && c == pos.Col {
				continue
			}
			if b.cells[r][c].alive {
				count++
			}
		}
	}

	return count
}

// Population returns the total number of living cells
func (b *Board) Population() (count int) {
	for r := range b.rows {
		for c := range b.cols {
			if b.cells[r][c].alive {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 digest of the current board state
func (b *Board) Hash() string {
	h := md5.New()
	row := make([]byte, b.cols)
	for r := range b.rows {
		for c := range b.cols {
			row[c] = 0
			if b.cells[r][c].alive {
				row[c] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// set updates a cell and its element only when the state differs
func (b *Board) set(r, c int, alive bool) bool {
	cell := &b.cells[r][c]
	if cell.alive == alive {
		return false
	}
	cell.alive = alive
	cell.element.SetAlive(alive)
	return true
}

// apply advances the board to gen, returning the number of changed cells and the new population
func (b *Board) apply(gen *Generation) (changed, population int) {
	for r := range b.rows {
		for c := range b.cols {
			alive := gen.Get(r, c)
			if b.set(r, c, alive) {
				changed++
			}
			if alive {
				population++
			}
		}
	}
	if changed > 0 {
		b.flush()
	}
	return changed, population
}

// reseed redraws every cell from seed, writing only the changed elements
func (b *Board) reseed(seed Seeder) (changed int) {
	for r := range b.rows {
		for c := range b.cols {
			if b.set(r, c, seed(Position{Row: r, Col: c})) {
				changed++
			}
		}
	}
	if changed > 0 {
		b.flush()
	}
	return changed
}

func (b *Board) flush() {
	if f, ok := b.surface.(Flusher); ok {
		f.Flush()
	}
}
