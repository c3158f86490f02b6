package model

import (
	"crypto/md5"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Grid is a fixed-size, non-wrapping Game of Life board.
//
// Two equally sized bit buffers hold the current generation and the scratch
// generation computed by a step. Cell (x, y) lives at index y*width + x in
// both. A Grid is not safe for concurrent use.
type Grid struct {
	width  uint
	height uint
	curr   *bitset.BitSet
	next   *bitset.BitSet
}

// NewGrid creates a grid with the specified dimensions, all cells dead.
// Zero width or height is legal and yields an empty grid.
func NewGrid(width, height uint) *Grid {
	size := width * height
	return &Grid{
		width:  width,
		height: height,
		curr:   bitset.New(size),
		next:   bitset.New(size),
	}
}

// Width returns the width of the grid
func (g *Grid) Width() uint {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() uint {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y uint) bool {
	return x < g.width && y < g.height
}

func (g *Grid) index(x, y uint) uint {
	return y*g.width + x
}

// Get returns the state of a cell in the current generation.
// ok is false when (x, y) is out of range.
func (g *Grid) Get(x, y uint) (alive, ok bool) {
	if !g.InBounds(x, y) {
		return false, false
	}
	return g.curr.Test(g.index(x, y)), true
}

// Set overwrites a cell and returns its previous state.
// Out of range coordinates leave the grid untouched and report ok == false.
func (g *Grid) Set(x, y uint, alive bool) (prev, ok bool) {
	if !g.InBounds(x, y) {
		return false, false
	}
	i := g.index(x, y)
	prev = g.curr.Test(i)
	g.curr.SetTo(i, alive)
	return prev, true
}

// Toggle flips a cell and returns its new state.
//
// Note the asymmetry with Set, which returns the previous state. Callers
// depend on both conventions.
func (g *Grid) Toggle(x, y uint) (now, ok bool) {
	if !g.InBounds(x, y) {
		return false, false
	}
	i := g.index(x, y)
	g.curr.Flip(i)
	return g.curr.Test(i), true
}

// Clear kills every cell of the current generation
func (g *Grid) Clear() {
	g.curr.ClearAll()
}

// countNeighbors counts living neighbours in the 3x3 window around (x, y),
// clamped to the grid. Positions outside the grid are not counted.
func (g *Grid) countNeighbors(x, y uint) int {
	minX, maxX := x, x
	if x > 0 {
		minX = x - 1
	}
	if x+1 < g.width {
		maxX = x + 1
	}
	minY, maxY := y, y
	if y > 0 {
		minY = y - 1
	}
	if y+1 < g.height {
		maxY = y + 1
	}

	count := 0
	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.curr.Test(g.index(nx, ny)) {
				count++
			}
		}
	}
	return count
}

// LivingCells returns the total number of living cells
func (g *Grid) LivingCells() int {
	return int(g.curr.Count())
}

// Hash returns an MD5 digest of the current generation, used to spot
// repeating states
func (g *Grid) Hash() string {
	h := md5.New()
	row := make([]byte, g.width)
	for y := range g.height {
		for x := range g.width {
			row[x] = 0
			if g.curr.Test(g.index(x, y)) {
				row[x] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
