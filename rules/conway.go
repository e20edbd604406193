package rules

/*
Next applies Conway's Game of Life rules (B3/S23) to determine the next state of a cell.

	alive, neighbours < 2      -> dead (underpopulation)
	alive, neighbours in {2,3} -> alive
	alive, neighbours > 3      -> dead (overpopulation)
	dead, neighbours == 3      -> alive (birth)
	dead, otherwise            -> dead
*/
func Next(alive bool, neighbours int) bool {
	if alive {
		return neighbours == 2 || neighbours == 3
	}
	return neighbours == 3
}
