package model

// minHistory is how many generations must be recorded before a grid can be
// called stagnant
const minHistory = 3

// History keeps the hashes of recent generations for cycle detection
type History struct {
	size   int
	hashes []string
}

// NewHistory creates a history retaining at most size hashes
func NewHistory(size int) *History {
	if size < minHistory {
		size = minHistory
	}
	return &History{size: size}
}

// Record adds a generation hash and drops the oldest beyond the limit
func (h *History) Record(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether hash matches one of the last few recorded
// generations, i.e. the grid is static or in a short cycle
func (h *History) IsStagnant(hash string) bool {
	if len(h.hashes) < minHistory {
		return false
	}
	for _, prev := range h.hashes[len(h.hashes)-minHistory:] {
		if prev == hash {
			return true
		}
	}
	return false
}

// Reset forgets every recorded generation
func (h *History) Reset() {
	h.hashes = nil
}
