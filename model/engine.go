package model

import (
	"context"
	"runtime"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/sheikhrachel/lifegrid/rules"
)

var (
	ErrTickInProgress  = errors.New("tick already in progress")
	ErrInvalidInterval = errors.New("tick interval must be positive")
)

// Report describes the outcome of a single tick
type Report struct {
	Generation int
	Population int
	Changed    int
	Duration   time.Duration
	// Stagnant is set when the new state repeats one of the last few states
	Stagnant bool
}

// Engine owns a board and advances it one generation per tick
type Engine struct {
	board      *Board
	pool       *GenerationPool
	history    *History
	busy       *semaphore.Weighted
	workers    int
	generation int
	logger     log.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers sets how many row bands the counting phase is split into. n <= 0 uses one per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		e.workers = n
	}
}

// WithLogger sets the engine logger
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPool shares a buffer pool between engines
func WithPool(pool *GenerationPool) Option {
	return func(e *Engine) {
		if pool != nil {
			e.pool = pool
		}
	}
}

// WithHistorySize sets how many recent states are compared for stagnation
func WithHistorySize(size int) Option {
	return func(e *Engine) {
		e.history = NewHistory(size)
	}
}

func NewEngine(board *Board, opts ...Option) *Engine {
	e := &Engine{
		board:   board,
		pool:    NewGenerationPool(),
		history: NewHistory(defaultHistorySize),
		busy:    semaphore.NewWeighted(1),
		workers: 1,
		logger:  log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Board returns the board driven by the engine
func (e *Engine) Board() *Board {
	return e.board
}

// Generation returns the number of completed ticks
func (e *Engine) Generation() int {
	return e.generation
}

// Tick advances the board by one generation.
// Every next state is computed against the frozen current generation before any cell is written.
func (e *Engine) Tick(ctx context.Context) (Report, error) {
	if !e.busy.TryAcquire(1) {
		return Report{}, ErrTickInProgress
	}
	defer e.busy.Release(1)

	start := time.Now()

	next := e.pool.Get(e.board.rows, e.board.cols)
	defer e.pool.Put(next)

	if err := e.compute(ctx, next); err != nil {
		return Report{}, errors.Wrapf(err, "[Tick] failed to compute generation %d", e.generation+1)
	}

	changed, population := e.board.apply(next)
	e.generation++

	return Report{
		Generation: e.generation,
		Population: population,
		Changed:    changed,
		Duration:   time.Since(start),
		Stagnant:   e.history.Observe(e.board.Hash()),
	}, nil
}

// compute fills next from the current board, splitting rows between workers
func (e *Engine) compute(ctx context.Context, next *Generation) error {
	var (
		b             = e.board
		eg, egCtx     = errgroup.WithContext(ctx)
		rowsPerWorker = (b.rows + e.workers - 1) / e.workers // Ceiling division
	)

	for i := range e.workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, b.rows)
		)
		if startRow >= b.rows {
			break
		}

		eg.Go(func() error {
			for r := startRow; r < endRow; r++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				for c := range b.cols {
					pos := Position{Row: r, Col: c}
					next.Set(r, c, rules.Next(b.cells[r][c].alive, b.NeighbourCount(pos)))
				}
			}
			return nil
		})
	}

	return eg.Wait()
}

// Reseed redraws every cell from seed between ticks, writing only the cells that change
func (e *Engine) Reseed(seed Seeder) (int, error) {
	if seed == nil {
		return 0, errors.WithStack(ErrNilSeeder)
	}
	if !e.busy.TryAcquire(1) {
		return 0, ErrTickInProgress
	}
	defer e.busy.Release(1)

	changed := e.board.reseed(seed)
	e.history.Reset()
	level.Debug(e.logger).Log("msg", "board reseeded", "generation", e.generation, "changed", changed)

	return changed, nil
}

// Run ticks the engine every interval until ctx is done or observe returns false.
// A tick that overruns the interval delays the next one; ticks never overlap.
func (e *Engine) Run(ctx context.Context, interval time.Duration, observe func(Report) bool) error {
	if interval <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "[Run] got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			level.Info(e.logger).Log("msg", "run stopped", "reason", ctx.Err(), "generation", e.generation)
			return nil
		case <-ticker.C:
		}

		report, err := e.Tick(ctx)
		switch {
		case errors.Is(err, ErrTickInProgress):
			level.Warn(e.logger).Log("msg", "tick skipped", "err", err)
			continue
		case err != nil && ctx.Err() != nil:
			level.Info(e.logger).Log("msg", "run stopped", "reason", ctx.Err(), "generation", e.generation)
			return nil
		case err != nil:
			return err
		}

		if observe != nil && !observe(report) {
			level.Info(e.logger).Log("msg", "run stopped", "reason", "observer", "generation", e.generation)
			return nil
		}
	}
}
