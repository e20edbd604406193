package model

// Position is the (row, col) index of a cell on the board
type Position struct {
	Row int
	Col int
}

// Offset is the on-screen pixel offset of a cell's element
type Offset struct {
	X int
	Y int
}

// OffsetOf returns the pixel offset for pos on a grid of cellSize pixels
func OffsetOf(pos Position, cellSize int) Offset {
	return Offset{X: pos.Col * cellSize, Y: pos.Row * cellSize}
}

// Element is the visual projection of a single cell. It is written to, never read from.
type Element interface {
	SetAlive(alive bool)
}

// Surface creates the visual elements of a board, once per cell, in row-major order.
type Surface interface {
	NewElement(pos Position, offset Offset, alive bool) Element
}

// Flusher is implemented by surfaces that batch element writes and present them together.
type Flusher interface {
	Flush()
}

// Cell is a single board entry
type Cell struct {
	pos     Position
	alive   bool
	element Element
}

// Position returns the cell's fixed board position
func (c Cell) Position() Position {
	return c.pos
}

// Alive reports whether the cell is currently alive
func (c Cell) Alive() bool {
	return c.alive
}
