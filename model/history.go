package model

import "slices"

const defaultHistorySize = 3

// History keeps the hashes of recent board states to detect still lifes and short cycles
type History struct {
	size   int
	hashes []string
}

// NewHistory creates a history remembering the last size states
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{size: size}
}

// Observe records hash and reports whether it repeats one of the remembered states
func (h *History) Observe(hash string) bool {
	repeated := slices.Contains(h.hashes, hash)

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}

	return repeated
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
