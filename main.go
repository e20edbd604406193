package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/gdamore/tcell/v2"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/sheikhrachel/lifegrid/game"
	"github.com/sheikhrachel/lifegrid/utils"
	"github.com/sheikhrachel/lifegrid/view"
	"github.com/sheikhrachel/lifegrid/view/term"
	"github.com/sheikhrachel/lifegrid/view/window"
)

const defaultConfigFile = "config.json"

func main() {
	a := cli.NewApp()
	a.Name = "lifegrid"
	a.Usage = "animate Conway's Game of Life on a fixed grid"
	a.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: defaultConfigFile, Usage: "config file (.json, .toml, .yaml)"},
		cli.IntFlag{Name: "rows", Usage: "board rows"},
		cli.IntFlag{Name: "cols", Usage: "board columns"},
		cli.IntFlag{Name: "cell-size", Usage: "cell size in pixels"},
		cli.Float64Flag{Name: "probability, p", Usage: "initial alive probability per cell"},
		cli.IntFlag{Name: "interval", Usage: "tick interval in milliseconds"},
		cli.IntFlag{Name: "workers", Usage: "row bands counted in parallel per tick (0 = one per CPU)"},
		cli.Int64Flag{Name: "seed", Usage: "random seed (0 = time based)"},
		cli.StringFlag{Name: "pattern", Usage: "random, glider, block, blinker or showcase"},
		cli.StringFlag{Name: "renderer, r", Usage: "text, term or window"},
		cli.IntFlag{Name: "max-generations", Usage: "stop after this many generations (0 = never)"},
		cli.BoolFlag{Name: "auto-restart", Usage: "reseed the board on extinction or stagnation"},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error or none"},
		cli.StringFlag{Name: "log-file", Usage: "write logs to this file instead of stderr"},
	}
	a.Action = run

	if err := a.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err = config.Validate(); err != nil {
		return err
	}

	logOut := io.Writer(os.Stderr)
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrapf(err, "[run] failed to open log file: %+v", config.LogFile)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := utils.NewLogger(logOut, config.LogLevel)
	if err != nil {
		return err
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch config.Renderer {
	case utils.RendererTerm:
		return runTerm(ctx, config, logger)
	case utils.RendererWindow:
		return runWindow(ctx, config, logger)
	default:
		return runText(ctx, config, logger)
	}
}

// loadConfig reads the config file, falling back to defaults when the default file is absent,
// then applies command line overrides
func loadConfig(c *cli.Context) (utils.Config, error) {
	path := c.String("config")
	config, err := utils.LoadConfig(path)
	if err != nil {
		if c.IsSet("config") || !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		config = utils.DefaultConfig()
	}

	if c.IsSet("rows") {
		config.Rows = c.Int("rows")
	}
	if c.IsSet("cols") {
		config.Cols = c.Int("cols")
	}
	if c.IsSet("cell-size") {
		config.CellPixelSize = c.Int("cell-size")
	}
	if c.IsSet("probability") {
		config.InitialAliveProbability = c.Float64("probability")
	}
	if c.IsSet("interval") {
		config.TickIntervalMs = c.Int("interval")
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}
	if c.IsSet("seed") {
		config.Seed = c.Int64("seed")
	}
	if c.IsSet("pattern") {
		config.Pattern = c.String("pattern")
	}
	if c.IsSet("renderer") {
		config.Renderer = c.String("renderer")
	}
	if c.IsSet("max-generations") {
		config.MaxGenerations = c.Int("max-generations")
	}
	if c.IsSet("auto-restart") {
		config.AutoRestart = c.Bool("auto-restart")
	}
	if c.IsSet("log-level") {
		config.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		config.LogFile = c.String("log-file")
	}

	return config, nil
}

func runText(ctx context.Context, config utils.Config, logger log.Logger) error {
	surface := view.NewText(os.Stdout, config.Rows, config.Cols, true)
	g, err := game.New(config, surface, logger)
	if err != nil {
		return err
	}
	surface.Flush()

	err = g.Engine().Run(ctx, config.TickInterval(), g.Observe)
	g.LogFinalStats()
	if err != nil {
		return err
	}
	return surface.Err()
}

func runTerm(ctx context.Context, config utils.Config, logger log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runTerm] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runTerm] failed to initialize screen")
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := term.New(screen, false)
	g, err := game.New(config, surface, logger)
	if err != nil {
		return err
	}
	surface.Flush()
	go surface.Listen(ctx, cancel)

	err = g.Engine().Run(ctx, config.TickInterval(), g.Observe)
	g.LogFinalStats()
	return err
}

func runWindow(ctx context.Context, config utils.Config, logger log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := window.New(app.New(), "lifegrid", config.Rows, config.Cols, config.CellPixelSize)
	g, err := game.New(config, surface, logger)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer cancel()
		done <- g.Engine().Run(ctx, config.TickInterval(), g.Observe)
	}()

	surface.ShowAndRun(ctx, cancel)
	cancel()

	err = <-done
	g.LogFinalStats()
	return err
}
