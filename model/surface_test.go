package model

// recordingSurface counts element writes and flushes
type recordingSurface struct {
	created []Position
	offsets []Offset
	writes  int
	flushes int
}

type recordingElement struct {
	surface *recordingSurface
	pos     Position
	alive   bool
}

func (s *recordingSurface) NewElement(pos Position, offset Offset, alive bool) Element {
	s.created = append(s.created, pos)
	s.offsets = append(s.offsets, offset)
	return &recordingElement{surface: s, pos: pos, alive: alive}
}

func (s *recordingSurface) Flush() {
	s.flushes++
}

func (e *recordingElement) SetAlive(alive bool) {
	e.surface.writes++
	e.alive = alive
}

func newTestBoard(t interface {
	Helper()
	Fatalf(string, ...any)
}, rows, cols int, seed Seeder) (*Board, *recordingSurface) {
	t.Helper()
	surface := &recordingSurface{}
	board, err := NewBoard(rows, cols, 10, seed, surface)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return board, surface
}

func alivePositions(b *Board) (positions []Position) {
	for r := range b.Rows() {
		for c := range b.Cols() {
			if b.Alive(r, c) {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}
	return
}
