package model

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownPattern is returned by LookupPattern for names that are not registered
var ErrUnknownPattern = errors.New("unknown pattern")

// Pattern is a named seed, a list of [x, y] coordinates relative to the
// placement origin
type Pattern struct {
	Name  string
	Descr string
	Cells [][2]uint
}

var patterns = map[string]Pattern{
	"block": {
		Name:  "block",
		Descr: "2x2 still life",
		Cells: [][2]uint{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	"blinker": {
		Name:  "blinker",
		Descr: "period 2 oscillator",
		Cells: [][2]uint{{1, 0}, {1, 1}, {1, 2}},
	},
	"glider": {
		Name:  "glider",
		Descr: "smallest spaceship",
		Cells: [][2]uint{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
	},
	"gun": {
		Name:  "gun",
		Descr: "Gosper glider gun",
		Cells: [][2]uint{
			{1, 5}, {1, 6}, {2, 5}, {2, 6},
			{13, 3}, {14, 3}, {12, 4}, {16, 4}, {11, 5}, {17, 5},
			{11, 6}, {15, 6}, {17, 6}, {18, 6}, {11, 7}, {17, 7},
			{12, 8}, {16, 8}, {13, 9}, {14, 9},
			{21, 3}, {22, 3}, {21, 4}, {22, 4}, {21, 5}, {22, 5},
			{23, 2}, {23, 6}, {25, 1}, {25, 2}, {25, 6}, {25, 7},
			{35, 3}, {36, 3}, {35, 4}, {36, 4},
		},
	},
}

// PatternNames returns the registered pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPattern returns the registered pattern with the given name
func LookupPattern(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrUnknownPattern, "[LookupPattern] %q", name)
	}
	return p, nil
}

// Place sets the pattern's cells alive with its origin at (startX, startY).
// Cells falling outside the grid are skipped; the number placed is returned.
func (g *Grid) Place(p Pattern, startX, startY uint) (placed int) {
	for _, c := range p.Cells {
		if _, ok := g.Set(startX+c[0], startY+c[1], true); ok {
			placed++
		}
	}
	return
}

// Randomize fills the grid with living cells at the given density
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := range g.height {
		for x := range g.width {
			g.Set(x, y, rng.Float64() < density)
		}
	}
}

// InjectRandomLife adds some random cells to break stagnation
func (g *Grid) InjectRandomLife(rng *rand.Rand, count int) {
	if g.width == 0 || g.height == 0 {
		return
	}
	for i := 0; i < count; i++ {
		g.Set(uint(rng.Int63n(int64(g.width))), uint(rng.Int63n(int64(g.height))), true)
	}
}
