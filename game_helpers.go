package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/logrusorgru/aurora"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// statusLines is the number of terminal lines printed above the grid
const statusLines = 3

// session bundles everything the frame loop needs
type session struct {
	config   utils.Config
	grid     *model.Grid
	history  *model.History
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	rng      *rand.Rand
	au       aurora.Aurora
	out      io.Writer
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, out io.Writer) (*session, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	grid, err := newSeededGrid(config, rng)
	if err != nil {
		return nil, err
	}

	return &session{
		config:   config,
		grid:     grid,
		history:  model.NewHistory(config.StagnationThreshold + minHistorySize),
		renderer: model.NewTerminalRenderer(out, config.Color),
		stats:    utils.NewStats(),
		rng:      rng,
		au:       aurora.NewAurora(config.Color),
		out:      out,
	}, nil
}

// minHistorySize keeps a few generations beyond the stagnation threshold
const minHistorySize = 2

// newSeededGrid builds a grid of the configured size and seeds it
func newSeededGrid(config utils.Config, rng *rand.Rand) (*model.Grid, error) {
	grid := model.NewGrid(uint(config.Width), uint(config.Height))
	if config.Pattern == utils.PatternRandom {
		grid.Randomize(rng, config.RandomDensity)
		return grid, nil
	}

	p, err := model.LookupPattern(config.Pattern)
	if err != nil {
		return nil, err
	}
	grid.Place(p, 0, 0)
	return grid, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(s *session) {
	fmt.Fprintf(s.out, "Pattern: %s | Incremental: %v | Auto restart: %v\n",
		s.au.Cyan(s.config.Pattern), s.config.Incremental, s.config.AutoRestart)
	fmt.Fprintf(s.out, "Grid: %dx%d | Initial living cells: %d\n",
		s.grid.Width(), s.grid.Height(), s.grid.LivingCells())
	fmt.Fprintln(s.out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(s.out)
}

// updateGameState updates the game state and returns status information
func updateGameState(
	s *session,
	generation, changed int,
	lastFrameTime time.Time,
) (int, float64, string, bool) {
	livingCells := s.grid.LivingCells()
	density := 0.0
	if cells := s.grid.Width() * s.grid.Height(); cells > 0 {
		density = float64(livingCells) / float64(cells) * 100
	}

	// Update performance stats
	s.stats.Update(generation, livingCells, changed, time.Since(lastFrameTime))

	// Check for stagnation before recording the current generation
	hash := s.grid.Hash()
	isStagnant := s.history.IsStagnant(hash)
	s.history.Record(hash)

	status := s.au.Green("Active").String()
	if isStagnant {
		status = s.au.Yellow("Stagnant").String()
	}
	if livingCells == 0 {
		status = s.au.Red("Extinct").String()
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus writes exactly statusLines lines, each cleared to the
// end of the line so it can overwrite a previous frame in place
func displayGameStatus(
	s *session,
	generation, livingCells int,
	density float64,
	status string,
	lastRestartGen int,
) {
	fmt.Fprintf(s.out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\x1b[K\n",
		generation, livingCells, density, status)
	fmt.Fprintf(s.out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\x1b[K\n",
		s.stats.GenerationsPerSecond, s.stats.AveragePopulation, s.stats.Runtime().Seconds())

	changed := "-"
	if s.stats.LastChanged >= 0 {
		changed = fmt.Sprint(s.stats.LastChanged)
	}
	fmt.Fprintf(s.out, "Changed last step: %s | Generations since restart: %d\x1b[K\n",
		changed, generation-lastRestartGen)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%200 == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame reseeds a fresh grid of the same size
func restartGame(s *session) error {
	grid, err := newSeededGrid(s.config, s.rng)
	if err != nil {
		return err
	}
	s.grid = grid
	s.history.Reset()
	return nil
}
