package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
	"github.com/sheikhrachel/go-life/view"
)

var errInterrupted = errors.New("interrupted")

// cliOptions holds command line overrides. Negative numbers and empty
// strings mean "keep the config file value"; bool flags can only switch a
// feature on.
type cliOptions struct {
	configPath     string
	width          int
	height         int
	frameRate      time.Duration
	maxGenerations int
	pattern        string
	density        float64
	interactive    bool
	incremental    bool
	color          bool
	autoRestart    bool
}

func parseFlags() cliOptions {
	o := cliOptions{
		configPath:     "config.json",
		width:          -1,
		height:         -1,
		frameRate:      -1,
		maxGenerations: -1,
		density:        -1,
	}
	patterns := append(model.PatternNames(), utils.PatternRandom)

	flaggy.SetName("go-life")
	flaggy.SetDescription("Conway's Game of Life in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&o.configPath, "f", "config", "JSON config file, defaults are used when it is missing")
	flaggy.Int(&o.width, "x", "width", "Width of the grid")
	flaggy.Int(&o.height, "y", "height", "Height of the grid")
	flaggy.Duration(&o.frameRate, "i", "interval", "Interval between generations, for example 150ms")
	flaggy.Int(&o.maxGenerations, "g", "generations", "Stop after this many generations, 0 runs forever")
	flaggy.String(&o.pattern, "p", "pattern", "Seed pattern ["+strings.Join(patterns, "|")+"]")
	flaggy.Float64(&o.density, "d", "density", "Density of living cells for the random pattern")
	flaggy.Bool(&o.interactive, "n", "interactive", "Start the interactive UI")
	flaggy.Bool(&o.incremental, "u", "incremental", "Redraw only the cells that changed")
	flaggy.Bool(&o.color, "c", "color", "Colour living cells")
	flaggy.Bool(&o.autoRestart, "a", "auto-restart", "Reseed on extinction or stagnation")
	flaggy.Parse()

	return o
}

// apply overlays the flags that were set on top of c
func (o cliOptions) apply(c *utils.Config) {
	if o.width >= 0 {
		c.Width = o.width
	}
	if o.height >= 0 {
		c.Height = o.height
	}
	if o.frameRate >= 0 {
		c.FrameRate = o.frameRate
	}
	if o.maxGenerations >= 0 {
		c.MaxGenerations = o.maxGenerations
	}
	if o.pattern != "" {
		c.Pattern = o.pattern
	}
	if o.density >= 0 {
		c.RandomDensity = o.density
	}
	c.Interactive = c.Interactive || o.interactive
	c.Incremental = c.Incremental || o.incremental
	c.Color = c.Color || o.color
	c.AutoRestart = c.AutoRestart || o.autoRestart
}

func main() {
	opts := parseFlags()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(opts.configPath)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			log.Fatalf("%+v", err)
		}
		config = utils.DefaultConfig()
	}
	opts.apply(&config)
	if err = config.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	s, err := initializeGame(config, os.Stdout)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	if config.Interactive {
		ui, err := view.NewConsoleUI(s.grid, config, s.rng)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		if err = ui.Start(); err != nil {
			log.Fatalf("%+v", err)
		}
		return
	}

	displayGameInfo(s)
	time.Sleep(time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer cancel()
		return runGame(ctx, s)
	})
	eg.Go(func() error {
		select {
		case sig := <-sigChan:
			return errors.Wrapf(errInterrupted, "[main] received %v", sig)
		case <-ctx.Done():
			return nil
		}
	})

	err = eg.Wait()
	switch {
	case errors.Cause(err) == errInterrupted:
		fmt.Println("\nShutting down gracefully...")
	case err != nil:
		log.Fatalf("%+v", err)
	}
	fmt.Printf("Final stats: %d generations in %.1f seconds, %.1f avg population\n",
		s.stats.TotalGenerations, s.stats.Runtime().Seconds(), s.stats.AveragePopulation)
}

// runGame is the frame loop. It returns nil when the generation limit is
// reached or ctx is cancelled.
func runGame(ctx context.Context, s *session) error {
	var (
		generation     = 0
		changed        = -1
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
		fullRedraw     = true
	)

	for {
		if ctx.Err() != nil {
			return nil
		}
		frameStart := time.Now()

		livingCells, density, status, isStagnant := updateGameState(s, generation, changed, lastFrameTime)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if err := drawFrame(s, fullRedraw, generation, livingCells, density, status, lastRestartGen); err != nil {
			return err
		}
		fullRedraw = !s.config.Incremental

		if s.config.MaxGenerations > 0 && generation >= s.config.MaxGenerations {
			fmt.Fprintf(s.out, "\x1b[%d;1HReached maximum generations limit (%d)\n",
				uint(statusLines)+s.grid.Height()+1, s.config.MaxGenerations)
			return nil
		}

		shouldRestart, reason := checkRestartConditions(livingCells, stagnantCount, generation, s.config)
		if shouldRestart && s.config.AutoRestart {
			fmt.Fprintf(s.out, "Restarting due to %s...\x1b[K\n", reason)
			if err := restartGame(s); err != nil {
				return err
			}
			lastRestartGen = generation
			stagnantCount = 0
			fullRedraw = true
		} else if stagnantCount >= 2 && stagnantCount < s.config.StagnationThreshold && s.config.AutoRestart {
			// Inject some life to try to break the stagnation
			s.grid.InjectRandomLife(s.rng, s.config.InjectionCount)
			fullRedraw = true
		}

		var err error
		if fullRedraw {
			changed = 0
			for range s.grid.Updates() {
				changed++
			}
		} else if changed, err = s.renderer.DisplayUpdates(s.grid.Updates(), statusLines, s.grid.Height()); err != nil {
			return err
		}
		generation++

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.config.FrameRate):
		}
	}
}

// drawFrame prints the status block and, on a full redraw, the whole grid.
// Otherwise the grid was already patched in place by DisplayUpdates.
func drawFrame(s *session, full bool, generation, livingCells int, density float64, status string, lastRestartGen int) error {
	if full {
		if err := s.renderer.Clear(); err != nil {
			return err
		}
	} else {
		fmt.Fprint(s.out, "\x1b[H")
	}

	displayGameStatus(s, generation, livingCells, density, status, lastRestartGen)

	if full {
		return s.renderer.Display(s.grid)
	}
	return nil
}
