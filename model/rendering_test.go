package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestTerminalRenderer_Display(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, false)
	g := NewGrid(3, 2)
	seed(g, [2]uint{1, 0}, [2]uint{2, 1})

	if err := r.Display(g); err != nil {
		t.Fatal(err)
	}
	if want := ".#.\n..#\n"; out.String() != want {
		t.Errorf("Display() wrote %q, want %q", out.String(), want)
	}
}

func TestTerminalRenderer_DisplayUpdates(t *testing.T) {
	var out bytes.Buffer
	r := NewTerminalRenderer(&out, false)
	g := newBlinker()

	changed, err := r.DisplayUpdates(g.Updates(), 2, g.Height())
	if err != nil {
		t.Fatal(err)
	}
	if changed != 4 {
		t.Errorf("changed = %d, want 4", changed)
	}
	for _, want := range []string{
		"\x1b[5;2H#", // (1, 2) born
		"\x1b[4;3H.", // (2, 1) died
		"\x1b[6;3H.", // (2, 3) died
		"\x1b[5;4H#", // (3, 2) born
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q missing %q", out.String(), want)
		}
	}
	if !strings.HasSuffix(out.String(), "\x1b[8;1H") {
		t.Errorf("cursor not parked below the grid: %q", out.String())
	}
	if g.LivingCells() != 3 {
		t.Errorf("grid not stepped, LivingCells() = %d", g.LivingCells())
	}
}

func TestTerminalRenderer_WriteErrors(t *testing.T) {
	r := NewTerminalRenderer(failingWriter{}, false)
	g := newBlinker()

	if err := r.Display(g); err == nil {
		t.Error("Display() returned nil error")
	}
	if err := r.Clear(); err == nil {
		t.Error("Clear() returned nil error")
	}
	if _, err := r.DisplayUpdates(g.Updates(), 0, g.Height()); err == nil {
		t.Error("DisplayUpdates() returned nil error")
	}
}

func TestTerminalRenderer_Clear(t *testing.T) {
	var out bytes.Buffer
	if err := NewTerminalRenderer(&out, true).Clear(); err != nil {
		t.Fatal(err)
	}
	if out.String() != ansiClear {
		t.Errorf("Clear() wrote %q", out.String())
	}
}
