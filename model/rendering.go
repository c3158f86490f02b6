package model

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	gridPosAlive = "#"
	gridPosDead  = "."

	ansiClear = "\x1b[2J\x1b[1;1H"
)

// TerminalRenderer draws a grid as text, one character per cell
type TerminalRenderer struct {
	out io.Writer
	au  aurora.Aurora
}

// NewTerminalRenderer creates a renderer writing to out; color enables ANSI
// colours for living cells
func NewTerminalRenderer(out io.Writer, color bool) *TerminalRenderer {
	return &TerminalRenderer{
		out: out,
		au:  aurora.NewAurora(color),
	}
}

func (r *TerminalRenderer) cell(alive bool) string {
	if alive {
		return r.au.Green(gridPosAlive).String()
	}
	return gridPosDead
}

// Display renders the whole grid row by row
func (r *TerminalRenderer) Display(g *Grid) error {
	var b bytes.Buffer
	for y := range g.Height() {
		for x := range g.Width() {
			alive, _ := g.Get(x, y)
			b.WriteString(r.cell(alive))
		}
		b.WriteByte('\n')
	}
	if _, err := r.out.Write(b.Bytes()); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}

// DisplayUpdates drains a step's updates, redrawing only the changed cells
// in place. top is the number of terminal lines above the grid's first row.
// The cursor is parked below the grid afterwards.
func (r *TerminalRenderer) DisplayUpdates(updates iter.Seq[Update], top, height uint) (changed int, err error) {
	var b bytes.Buffer
	for u := range updates {
		fmt.Fprintf(&b, "\x1b[%d;%dH%s", top+u.Y+1, u.X+1, r.cell(u.Alive))
		changed++
	}
	fmt.Fprintf(&b, "\x1b[%d;1H", top+height+1)
	if _, err = r.out.Write(b.Bytes()); err != nil {
		return changed, errors.Wrap(err, "[DisplayUpdates] failed to write updates")
	}
	return changed, nil
}

// Clear clears the terminal screen and homes the cursor
func (r *TerminalRenderer) Clear() error {
	if _, err := io.WriteString(r.out, ansiClear); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
