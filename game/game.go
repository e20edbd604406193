// Package game wires configuration, surface and engine together and reacts to each tick.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/utils"
)

// statsLogEvery is how many generations pass between periodic stats log lines
const statsLogEvery = 100

// StatusSetter is implemented by surfaces that can show a status line
type StatusSetter interface {
	SetStatus(status string)
}

// Game observes an engine's ticks: it keeps stats, updates the status line,
// restarts stagnant boards and enforces the generation limit.
type Game struct {
	config  utils.Config
	engine  *model.Engine
	status  StatusSetter
	logger  log.Logger
	rng     *rand.Rand
	stats   *utils.Stats
	lastRun time.Time

	stagnantCount  int
	lastRestartGen int
	restarts       int
}

// NewSeeder returns the initial-state seeder selected by config
func NewSeeder(config utils.Config, rng *rand.Rand) model.Seeder {
	center := model.Position{Row: config.Rows/2 - 1, Col: config.Cols/2 - 1}
	random := model.Bernoulli(rng, config.InitialAliveProbability)

	switch config.Pattern {
	case utils.PatternGlider:
		return model.Alive(model.Glider(center)...)
	case utils.PatternBlock:
		return model.Alive(model.Block(center)...)
	case utils.PatternBlinker:
		return model.Alive(model.Blinker(center)...)
	case utils.PatternShowcase:
		return model.Showcase(config.Rows, config.Cols, random)
	default:
		return random
	}
}

// New builds the board on surface and the engine that drives it
func New(config utils.Config, surface model.Surface, logger log.Logger) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[game.New] invalid configuration")
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	board, err := model.NewBoard(config.Rows, config.Cols, config.CellPixelSize, NewSeeder(config, rng), surface)
	if err != nil {
		return nil, errors.Wrap(err, "[game.New] failed to build board")
	}

	g := &Game{
		config: config,
		engine: model.NewEngine(board, model.WithWorkers(config.Workers), model.WithLogger(logger)),
		logger: logger,
		rng:    rng,
		stats:  utils.NewStats(),
	}
	if s, ok := surface.(StatusSetter); ok {
		g.status = s
	}

	level.Info(logger).Log(
		"msg", "board ready",
		"rows", config.Rows,
		"cols", config.Cols,
		"pattern", config.Pattern,
		"seed", seed,
		"population", board.Population(),
	)
	g.setStatus(fmt.Sprintf("Gen: 0 | Living: %d | Grid: %dx%d | q to quit",
		board.Population(), config.Rows, config.Cols))

	return g, nil
}

// Engine returns the engine driven by the game
func (g *Game) Engine() *model.Engine {
	return g.engine
}

// Stats returns the running statistics
func (g *Game) Stats() *utils.Stats {
	return g.stats
}

// Observe is called after every tick. It returns false to stop the run.
func (g *Game) Observe(report model.Report) bool {
	now := time.Now()
	var sinceLast time.Duration
	if !g.lastRun.IsZero() {
		sinceLast = now.Sub(g.lastRun)
	}
	g.lastRun = now
	g.stats.Update(report.Generation, report.Population, report.Changed, sinceLast)

	if report.Stagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	g.setStatus(g.statusLine(report))

	if report.Generation%statsLogEvery == 0 {
		level.Debug(g.logger).Log(
			"msg", "stats",
			"generation", report.Generation,
			"population", report.Population,
			"gen_per_sec", fmt.Sprintf("%.1f", g.stats.GenerationsPerSecond),
			"avg_population", fmt.Sprintf("%.1f", g.stats.AveragePopulation),
			"avg_changed", fmt.Sprintf("%.1f", g.stats.AverageChanged),
		)
	}

	if g.config.MaxGenerations > 0 && report.Generation >= g.config.MaxGenerations {
		level.Info(g.logger).Log("msg", "reached maximum generations limit", "max_generations", g.config.MaxGenerations)
		return false
	}

	if shouldRestart, reason := checkRestartConditions(report.Population, g.stagnantCount, g.config); shouldRestart && g.config.AutoRestart {
		g.restart(report.Generation, reason)
	}

	return true
}

func (g *Game) restart(generation int, reason string) {
	changed, err := g.engine.Reseed(NewSeeder(g.config, g.rng))
	if err != nil {
		level.Warn(g.logger).Log("msg", "restart skipped", "reason", reason, "err", err)
		return
	}

	g.restarts++
	g.lastRestartGen = generation
	g.stagnantCount = 0
	level.Info(g.logger).Log("msg", "restarted", "reason", reason, "generation", generation, "changed", changed)
}

func (g *Game) statusLine(report model.Report) string {
	board := g.engine.Board()
	density := float64(report.Population) / float64(board.Rows()*board.Cols()) * 100

	state := "Active"
	if g.stagnantCount > 0 {
		state = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}
	if report.Population == 0 {
		state = "Extinct"
	}

	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Changed: %d | %s | %.1f gen/sec | Since restart: %d",
		report.Generation, report.Population, density, report.Changed, state,
		g.stats.GenerationsPerSecond, report.Generation-g.lastRestartGen)
}

func (g *Game) setStatus(status string) {
	if g.status != nil {
		g.status.SetStatus(status)
	}
}

// LogFinalStats logs the run summary
func (g *Game) LogFinalStats() {
	level.Info(g.logger).Log(
		"msg", "final stats",
		"generations", g.engine.Generation(),
		"runtime", g.stats.Runtime().Round(time.Millisecond),
		"gen_per_sec", fmt.Sprintf("%.1f", g.stats.GenerationsPerSecond),
		"avg_population", fmt.Sprintf("%.1f", g.stats.AveragePopulation),
		"cell_writes", g.stats.TotalWrites,
		"restarts", g.restarts,
	)
}

// checkRestartConditions determines if the board should be reseeded
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}
