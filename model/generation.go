package model

import "sync"

// Generation is a frozen next-state buffer computed during a tick
type Generation struct {
	rows  int
	cols  int
	cells [][]bool
}

// NewGeneration creates an all-dead buffer with the specified dimensions
func NewGeneration(rows, cols int) *Generation {
	g := &Generation{}
	g.Reset(rows, cols)
	return g
}

// Reset resizes the buffer to new dimensions, leaving every cell dead
func (g *Generation) Reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	if len(g.cells) != rows {
		g.cells = make([][]bool, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]bool, cols)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear marks all cells dead
func (g *Generation) Clear() {
	for i := range g.cells {
		clear(g.cells[i])
	}
}

// Set records the next state of a cell
func (g *Generation) Set(row, col int, alive bool) {
	if row >= 0 && row < g.rows && col >= 0 && col < g.cols {
		g.cells[row][col] = alive
	}
}

// Get returns the next state of a cell
func (g *Generation) Get(row, col int) bool {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return false
	}
	return g.cells[row][col]
}

// GenerationPool reuses tick buffers between generations
type GenerationPool struct {
	pool sync.Pool
}

func NewGenerationPool() *GenerationPool {
	return &GenerationPool{
		pool: sync.Pool{
			New: func() any {
				return &Generation{}
			},
		},
	}
}

// Get retrieves a buffer from the pool, resetting its dimensions
func (p *GenerationPool) Get(rows, cols int) *Generation {
	g := p.pool.Get().(*Generation)
	g.Reset(rows, cols)
	return g
}

// Put returns a buffer to the pool
func (p *GenerationPool) Put(g *Generation) {
	if g == nil {
		return
	}
	g.Clear()
	p.pool.Put(g)
}
