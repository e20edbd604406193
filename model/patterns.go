package model

import "math/rand"

// Seeder decides the initial state of the cell at pos
type Seeder func(pos Position) bool

// Bernoulli seeds every cell alive independently with probability p
func Bernoulli(rng *rand.Rand, p float64) Seeder {
	return func(Position) bool {
		return rng.Float64() < p
	}
}

// Dead seeds an empty board
func Dead() Seeder {
	return func(Position) bool { return false }
}

// Alive seeds exactly the given positions
func Alive(positions ...Position) Seeder {
	return Overlay(Dead(), positions...)
}

// Overlay forces the given positions alive on top of base
func Overlay(base Seeder, positions ...Position) Seeder {
	set := make(map[Position]struct{}, len(positions))
	for _, pos := range positions {
		set[pos] = struct{}{}
	}
	return func(pos Position) bool {
		// base is drawn for every cell, overlaid ones included
		alive := base(pos)
		if _, ok := set[pos]; ok {
			return true
		}
		return alive
	}
}

// Glider returns a south-east travelling glider with its bounding box at origin
func Glider(origin Position) []Position {
	return shape(origin, []string{
		".#.",
		"..#",
		"###",
	})
}

// Block returns the 2x2 still life
func Block(origin Position) []Position {
	return shape(origin, []string{
		"##",
		"##",
	})
}

// Blinker returns a horizontal period-2 oscillator
func Blinker(origin Position) []Position {
	return shape(origin, []string{"###"})
}

// Showcase overlays a couple of gliders, a blinker and a block on base, scaled to the board size
func Showcase(rows, cols int, base Seeder) Seeder {
	var positions []Position
	if rows >= 10 && cols >= 10 {
		positions = append(positions, Glider(Position{Row: 5, Col: 5})...)
		if rows >= 15 && cols >= 20 {
			positions = append(positions, Glider(Position{Row: 5, Col: cols - 8})...)
		}

		positions = append(positions, Blinker(Position{Row: rows / 4, Col: cols / 4})...)
		if cols >= 30 {
			positions = append(positions, Block(Position{Row: 3 * rows / 4, Col: 3 * cols / 4})...)
		}
	}
	return Overlay(base, positions...)
}

func shape(origin Position, rows []string) (positions []Position) {
	for r, line := range rows {
		for c, ch := range line {
			if ch == '#' {
				positions = append(positions, Position{Row: origin.Row + r, Col: origin.Col + c})
			}
		}
	}
	return
}
