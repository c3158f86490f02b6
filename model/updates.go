package model

import (
	"iter"

	"github.com/sheikhrachel/go-life/rules"
)

// Update describes one cell whose liveness changed during a step
type Update struct {
	X     uint
	Y     uint
	Alive bool
}

// Step advances the grid by exactly one generation, discarding the updates
func (g *Grid) Step() {
	for range g.Updates() {
	}
}

// Updates returns a sequence that advances the grid by one generation and
// yields an Update for every cell whose state changes.
//
// Cells are visited column by column (x outer, y inner). Neighbour counts are
// read from the current generation only and results land in the scratch
// buffer, so the visiting order affects the order of updates and never the
// resulting generation. Once every cell is computed the two buffers are
// swapped.
//
// Stopping early (break, or stop from iter.Pull) still completes the pass
// silently, so the grid always ends on a whole generation. An iter.Pull
// consumer that neither drains the sequence nor calls stop leaves the grid
// half stepped.
//
// The sequence is single use: ranging over it again yields nothing and does
// not step. Call Updates again for the next generation. The grid must not be
// mutated while the sequence is running.
func (g *Grid) Updates() iter.Seq[Update] {
	used := false
	return func(yield func(Update) bool) {
		if used {
			return
		}
		used = true

		emit := true
		for x := range g.width {
			for y := range g.height {
				i := g.index(x, y)
				alive := g.curr.Test(i)
				lives := rules.ApplyConwayRules(g.countNeighbors(x, y), alive)
				g.next.SetTo(i, lives)

				if emit && lives != alive {
					emit = yield(Update{X: x, Y: y, Alive: lives})
				}
			}
		}

		g.curr, g.next = g.next, g.curr
	}
}
