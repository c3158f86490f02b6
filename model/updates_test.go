package model

import (
	"iter"
	"testing"
)

func collect(seq iter.Seq[Update]) []Update {
	var out []Update
	for u := range seq {
		out = append(out, u)
	}
	return out
}

func newBlinker() *Grid {
	g := NewGrid(5, 5)
	seed(g, [2]uint{2, 1}, [2]uint{2, 2}, [2]uint{2, 3})
	return g
}

func TestUpdates_BlockIsStill(t *testing.T) {
	g := NewGrid(4, 4)
	seed(g, [2]uint{1, 1}, [2]uint{1, 2}, [2]uint{2, 1}, [2]uint{2, 2})

	for step := 1; step <= 2; step++ {
		if updates := collect(g.Updates()); len(updates) != 0 {
			t.Fatalf("step %d: got %d updates, want 0: %v", step, len(updates), updates)
		}
	}
	if g.LivingCells() != 4 {
		t.Errorf("LivingCells() = %d, want 4", g.LivingCells())
	}
}

func TestUpdates_Blinker(t *testing.T) {
	g := newBlinker()
	start := alive(g)

	// x outer, y inner
	want := []Update{
		{X: 1, Y: 2, Alive: true},
		{X: 2, Y: 1, Alive: false},
		{X: 2, Y: 3, Alive: false},
		{X: 3, Y: 2, Alive: true},
	}
	got := collect(g.Updates())
	if len(got) != len(want) {
		t.Fatalf("got %d updates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("update %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	horizontal := map[[2]uint]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	if !sameCells(alive(g), horizontal) {
		t.Fatalf("after one step alive = %v, want %v", alive(g), horizontal)
	}

	if n := len(collect(g.Updates())); n != 4 {
		t.Fatalf("second step: got %d updates, want 4", n)
	}
	if !sameCells(alive(g), start) {
		t.Errorf("after two steps alive = %v, want %v", alive(g), start)
	}
}

func TestUpdates_NoWrapAtEdge(t *testing.T) {
	// vertical line on the right edge; wrapping would also birth (0, 1)
	g := NewGrid(4, 4)
	seed(g, [2]uint{3, 0}, [2]uint{3, 1}, [2]uint{3, 2})

	got := collect(g.Updates())
	if len(got) != 3 {
		t.Fatalf("got %d updates, want 3: %v", len(got), got)
	}
	want := map[[2]uint]bool{{2, 1}: true, {3, 1}: true}
	if !sameCells(alive(g), want) {
		t.Errorf("alive = %v, want %v", alive(g), want)
	}
}

func TestUpdates_CornerCell(t *testing.T) {
	// L in the corner: every cell has two neighbours, (1, 1) is born
	g := NewGrid(3, 3)
	seed(g, [2]uint{0, 0}, [2]uint{1, 0}, [2]uint{0, 1})

	got := collect(g.Updates())
	if len(got) != 1 || got[0] != (Update{X: 1, Y: 1, Alive: true}) {
		t.Fatalf("updates = %v, want [{1 1 true}]", got)
	}
	if a, _ := g.Get(0, 0); !a {
		t.Error("corner cell died")
	}
}

func TestUpdates_DrainMatchesStep(t *testing.T) {
	glider, err := LookupPattern("glider")
	if err != nil {
		t.Fatal(err)
	}
	a, b := NewGrid(12, 12), NewGrid(12, 12)
	a.Place(glider, 2, 2)
	b.Place(glider, 2, 2)

	for gen := 1; gen <= 30; gen++ {
		before := alive(b)
		a.Step()
		updates := collect(b.Updates())

		if a.Hash() != b.Hash() {
			t.Fatalf("generation %d: drained updates diverged from Step", gen)
		}

		// replaying the updates onto the previous generation gives the new one
		for _, u := range updates {
			if u.Alive {
				before[[2]uint{u.X, u.Y}] = true
			} else {
				delete(before, [2]uint{u.X, u.Y})
			}
		}
		if !sameCells(before, alive(b)) {
			t.Fatalf("generation %d: updates do not describe the change", gen)
		}
	}
}

func TestUpdates_GliderMoves(t *testing.T) {
	glider, _ := LookupPattern("glider")
	g, want := NewGrid(10, 10), NewGrid(10, 10)
	g.Place(glider, 2, 2)
	want.Place(glider, 3, 3)

	for range 4 {
		g.Step()
	}
	if g.Hash() != want.Hash() {
		t.Errorf("glider after 4 steps = %v, want %v", alive(g), alive(want))
	}
}

func TestUpdates_SingleUse(t *testing.T) {
	g := newBlinker()
	seq := g.Updates()
	collect(seq)
	after := g.Hash()

	if n := len(collect(seq)); n != 0 {
		t.Fatalf("reused sequence yielded %d updates", n)
	}
	if g.Hash() != after {
		t.Fatal("reused sequence stepped the grid")
	}
}

func TestUpdates_EarlyBreakCompletesStep(t *testing.T) {
	g, want := newBlinker(), newBlinker()
	want.Step()

	for range g.Updates() {
		break
	}
	if g.Hash() != want.Hash() {
		t.Errorf("after break alive = %v, want %v", alive(g), alive(want))
	}
}

func TestUpdates_PullStopCompletesStep(t *testing.T) {
	g, want := newBlinker(), newBlinker()
	want.Step()

	next, stop := iter.Pull(g.Updates())
	u, ok := next()
	if !ok || u != (Update{X: 1, Y: 2, Alive: true}) {
		t.Fatalf("first pull = (%+v, %v)", u, ok)
	}
	stop()

	if g.Hash() != want.Hash() {
		t.Errorf("after stop alive = %v, want %v", alive(g), alive(want))
	}
}

func TestUpdates_EmptyGrid(t *testing.T) {
	for _, g := range []*Grid{NewGrid(0, 0), NewGrid(0, 3), NewGrid(3, 0)} {
		if n := len(collect(g.Updates())); n != 0 {
			t.Errorf("%dx%d grid yielded %d updates", g.Width(), g.Height(), n)
		}
		g.Step()
	}
}

func BenchmarkGrid_Step(b *testing.B) {
	gun, _ := LookupPattern("gun")
	g := NewGrid(200, 200)
	g.Place(gun, 0, 0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Step()
	}
}
