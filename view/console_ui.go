package view

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	viewHeader = "header"
	viewStatus = "status"
	viewField  = "field"
	viewHelp   = "help"

	leftColumnWidth = 28
	minFrameRate    = 10 * time.Millisecond
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is the interactive terminal front end. The grid is shared between
// the gocui main loop and the run loop, so every access goes through mu.
type ConsoleUI struct {
	g  *gocui.Gui
	au aurora.Aurora
	k  []keyBinding

	mu         sync.Mutex
	grid       *model.Grid
	config     utils.Config
	rng        *rand.Rand
	stats      *utils.Stats
	generation int
	changed    int
	stopCh     chan struct{}

	liveFiller string
	deadFiller string
}

// NewConsoleUI creates the UI around an already seeded grid
func NewConsoleUI(grid *model.Grid, config utils.Config, rng *rand.Rand) (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to create gui")
	}

	au := aurora.NewAurora(config.Color)
	t := &ConsoleUI{
		g:          g,
		au:         au,
		grid:       grid,
		config:     config,
		rng:        rng,
		stats:      utils.NewStats(),
		changed:    -1,
		liveFiller: au.Green("#").String(),
		deadFiller: ".",
	}
	g.Mouse = true
	g.SetManagerFunc(t.layout)

	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Random", t.cmdRandom, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdToggle, viewField},
	}
	for _, kb := range t.k {
		h := kb.handler
		if err := g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			g.Close()
			return nil, errors.Wrapf(err, "[NewConsoleUI] failed to bind %s", kb.name)
		}
	}
	return t, nil
}

// Start runs the gocui main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] main loop failed")
	}
	return nil
}

// step advances the grid one generation, counting the flipped cells
func (t *ConsoleUI) step() (finished bool) {
	t.mu.Lock()
	start := time.Now()
	changed := 0
	for range t.grid.Updates() {
		changed++
	}
	t.generation++
	t.changed = changed
	t.stats.Update(t.generation, t.grid.LivingCells(), changed, time.Since(start))
	finished = t.config.MaxGenerations > 0 && t.generation >= t.config.MaxGenerations
	t.mu.Unlock()

	t.refresh()
	return finished
}

// run steps the grid every frame until stopCh is closed
func (t *ConsoleUI) run(stopCh chan struct{}) {
	ticker := time.NewTicker(max(t.config.FrameRate, minFrameRate))
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if t.step() {
				t.g.Update(func(*gocui.Gui) error { return t.cmdStop(nil) })
				return
			}
		}
	}
}

func (t *ConsoleUI) refresh() {
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderStatus(g)
		return nil
	})
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, err := g.View(viewField)
	if err != nil {
		return
	}
	v.Clear()

	maxW, maxH := v.Size()
	var b bytes.Buffer

	t.mu.Lock()
	width, height := t.grid.Width(), t.grid.Height()
	for y := range height {
		if int(y) >= maxH {
			break
		}
		if y != 0 {
			b.WriteByte('\n')
		}
		if int(y) == maxH-1 && (int(width) > maxW || int(height) > maxH) {
			b.WriteString(t.au.Red("The field is larger than the view").String())
			break
		}
		for x := range width {
			if int(x) >= maxW {
				break
			}
			if alive, _ := t.grid.Get(x, y); alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	t.mu.Unlock()

	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, err := g.View(viewStatus)
	if err != nil {
		return
	}
	v.Clear()

	t.mu.Lock()
	defer t.mu.Unlock()
	mode := t.au.Blue("waiting").String()
	if t.stopCh != nil {
		mode = t.au.Cyan("running").String()
	}
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", t.grid.Width(), t.grid.Height()))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", t.config.FrameRate))
	_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", t.generation))
	_, _ = fmt.Fprintln(v, t.renderProp("Live cells", "%v", t.grid.LivingCells()))
	if t.changed >= 0 {
		_, _ = fmt.Fprintln(v, t.renderProp("Changed", "%v", t.changed))
	}
	_, _ = fmt.Fprintln(v, t.renderProp("Avg pop", "%.1f", t.stats.AveragePopulation))
	_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", mode))
}

func (t *ConsoleUI) renderProp(name, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+t.au.Green(name).String()+": "+valueFormat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(viewHeader, -1, -1, maxX, 1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
		text := "Conway's Game of Life"
		_, _ = fmt.Fprint(v, strings.Repeat(" ", max(0, (maxX-len(text))/2))+text)
	}

	if v, err := g.SetView(viewStatus, 0, 2, leftColumnWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	t.renderStatus(g)

	if v, err := g.SetView(viewField, leftColumnWidth+1, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Field"
	}
	t.renderField(g)

	if v, err := g.SetView(viewHelp, -1, maxY-3, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		var b bytes.Buffer
		b.WriteString("KEYS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.au.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprint(v, b.String())
	}
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	_ = t.cmdStop(nil)
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.mu.Lock()
	running := t.stopCh != nil
	t.mu.Unlock()
	if !running {
		t.step()
	}
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopCh != nil {
		return nil
	}
	t.stopCh = make(chan struct{})
	go t.run(t.stopCh)
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.mu.Lock()
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
	t.mu.Unlock()
	t.refresh()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	_ = t.cmdStop(nil)
	t.mu.Lock()
	t.grid.Clear()
	t.generation = 0
	t.changed = -1
	t.mu.Unlock()
	t.refresh()
	return nil
}

func (t *ConsoleUI) cmdRandom(_ *gocui.View) error {
	_ = t.cmdStop(nil)
	t.mu.Lock()
	t.grid.Randomize(t.rng, t.config.RandomDensity)
	t.generation = 0
	t.changed = -1
	t.mu.Unlock()
	t.refresh()
	return nil
}

func (t *ConsoleUI) cmdToggle(v *gocui.View) error {
	cx, cy := v.Cursor()
	if cx < 0 || cy < 0 {
		return nil
	}
	t.mu.Lock()
	_, ok := t.grid.Toggle(uint(cx), uint(cy))
	t.mu.Unlock()
	if ok {
		t.refresh()
	}
	return nil
}
