// Package strategy builds a basic-strategy table by Monte Carlo sweep.
//
// A sweep enumerates every (starting hand, dealer up-card, action) cell,
// plays a fixed number of pinned rounds for each and keeps the mean payoff.
// Cells are split into batches that run as independent tasks; each task
// owns its game and random stream, and the caller merges the returned
// statistics.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/basicstrategy/internal/deck"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/lox/basicstrategy/internal/rules"
	"github.com/lox/basicstrategy/internal/runid"
	"github.com/lox/basicstrategy/internal/statistics"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidConfig = errors.New("invalid sweep config")

const (
	DefaultTrials        = 10000
	DefaultBatchSize     = 2000
	DefaultProgressEvery = 5 * time.Second

	// runIDStream is the random stream reserved for the run ID; task
	// streams count up from zero.
	runIDStream = math.MaxUint64
)

// Config controls a sweep.
type Config struct {
	Rules rules.Rules

	// Trials is the number of rounds played per cell.
	Trials int
	// BatchSize caps the rounds one task plays.
	BatchSize int
	// Workers bounds the tasks running at once. Zero uses GOMAXPROCS.
	Workers int
	// Seed fixes every task's random stream. Zero picks a time-based seed.
	Seed int64
	Bet  float64

	// IncludeBlackjacks keeps rounds settled by a natural in the mean.
	IncludeBlackjacks bool

	// Actions restricts the actions swept. Empty means all of them.
	Actions []game.Action
	// Hands restricts the starting hands swept. Empty means all of them.
	Hands []StartingHand
	// Upcards restricts the dealer up-cards swept. Empty means A,2..10.
	Upcards []deck.Rank

	Logger        *log.Logger
	Clock         quartz.Clock
	ProgressEvery time.Duration
}

func (c Config) withDefaults() Config {
	if c.Trials == 0 {
		c.Trials = DefaultTrials
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Bet == 0 {
		c.Bet = 1
	}
	if len(c.Actions) == 0 {
		c.Actions = game.Actions
	}
	if len(c.Hands) == 0 {
		c.Hands = StartingHands()
	}
	if len(c.Upcards) == 0 {
		c.Upcards = Upcards
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.ProgressEvery == 0 {
		c.ProgressEvery = DefaultProgressEvery
	}
	c.Seed = randutil.Seed(c.Seed)
	return c
}

// Validate checks the config after defaults are applied.
func (c Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Trials < 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Bet < 0 {
		return fmt.Errorf("%w: bet must be positive, got %v", ErrInvalidConfig, c.Bet)
	}
	for _, a := range c.Actions {
		if a < game.Hit || a > game.Split {
			return fmt.Errorf("%w: unknown action %d", ErrInvalidConfig, a)
		}
	}
	for _, up := range c.Upcards {
		if !up.Valid() {
			return fmt.Errorf("%w: unknown up-card rank %d", ErrInvalidConfig, up)
		}
	}
	for _, h := range c.Hands {
		if len(h.Compositions) == 0 {
			return fmt.Errorf("%w: starting hand %s %d has no compositions", ErrInvalidConfig, h.Category, h.Total)
		}
	}
	return nil
}

// Result is the outcome of a sweep.
type Result struct {
	RunID   string
	Table   *Table
	Seed    int64
	Cells   int
	Failed  int
	Elapsed time.Duration
}

// Sweeper runs strategy sweeps. It holds no state between runs.
type Sweeper struct {
	cfg Config
}

// NewSweeper applies defaults and validates cfg. Invalid rules are rejected
// here, before any simulation runs.
func NewSweeper(cfg Config) (*Sweeper, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sweeper{cfg: cfg}, nil
}

// Config returns the effective config.
func (s *Sweeper) Config() Config { return s.cfg }

type cell struct {
	key    Key
	hand   StartingHand
	action game.Action
}

// task is one batch of a cell. start is the cell-wide index of the first
// trial, used to rotate through the hand's compositions.
type task struct {
	index int
	cell  int
	start int
	count int
}

type taskResult struct {
	cell  int
	stats *statistics.Statistics
	err   error
}

type cellState struct {
	stats *statistics.Statistics
	err   error
}

func (s *Sweeper) cells() []cell {
	var cells []cell
	for _, h := range s.cfg.Hands {
		for _, up := range s.cfg.Upcards {
			for _, a := range s.cfg.Actions {
				cells = append(cells, cell{
					key:    Key{Category: h.Category, Total: h.Total, Upcard: collapse(up)},
					hand:   h,
					action: a,
				})
			}
		}
	}
	return cells
}

func (s *Sweeper) tasks(numCells int) []task {
	var tasks []task
	for c := 0; c < numCells; c++ {
		for start := 0; start < s.cfg.Trials; start += s.cfg.BatchSize {
			count := min(s.cfg.BatchSize, s.cfg.Trials-start)
			tasks = append(tasks, task{index: len(tasks), cell: c, start: start, count: count})
		}
	}
	return tasks
}

// Run sweeps every cell and builds the table. Per-cell failures are logged
// and recorded as FailedEV; only cancellation of ctx fails the run.
func (s *Sweeper) Run(ctx context.Context) (*Result, error) {
	cfg := s.cfg
	started := cfg.Clock.Now()

	cells := s.cells()
	tasks := s.tasks(len(cells))
	id := runid.New(started, randutil.Derive(cfg.Seed, runIDStream))
	cfg.Logger.Info("Starting sweep",
		"run", id,
		"rules", cfg.Rules.Name,
		"cells", len(cells),
		"tasks", len(tasks),
		"trials", cfg.Trials,
		"workers", cfg.Workers,
		"seed", cfg.Seed)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	results := make(chan taskResult, cfg.Workers)

	go func() {
		defer close(results)
		for _, t := range tasks {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				res := s.runTask(gctx, cells[t.cell], t)
				select {
				case results <- res:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		_ = g.Wait()
	}()

	states := make([]cellState, len(cells))
	done := 0
	lastReport := started
	for res := range results {
		st := &states[res.cell]
		if st.stats == nil {
			st.stats = &statistics.Statistics{}
		}
		st.stats.Merge(res.stats)
		if res.err != nil && st.err == nil {
			st.err = res.err
		}

		done++
		if cfg.Clock.Since(lastReport) >= cfg.ProgressEvery {
			lastReport = cfg.Clock.Now()
			cfg.Logger.Info("Sweep progress",
				"done", done,
				"tasks", len(tasks),
				"elapsed", cfg.Clock.Since(started).Round(time.Millisecond))
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID: id,
		Table: NewTable(),
		Seed:  cfg.Seed,
		Cells: len(cells),
	}
	for i, c := range cells {
		st := states[i]
		if st.err != nil {
			result.Failed++
			s.logFailure(c, st.err)
		}
		result.Table.Set(c.key, c.action, st.stats, st.err)
	}
	result.Elapsed = cfg.Clock.Since(started)

	cfg.Logger.Info("Sweep complete",
		"run", result.RunID,
		"cells", result.Cells,
		"failed", result.Failed,
		"elapsed", result.Elapsed.Round(time.Millisecond))
	return result, nil
}

// runTask plays one batch on its own game. Errors end the batch and are
// returned with whatever was collected so far.
func (s *Sweeper) runTask(ctx context.Context, c cell, t task) taskResult {
	cfg := s.cfg
	out := taskResult{cell: t.cell, stats: &statistics.Statistics{}}

	g, err := game.New(cfg.Rules,
		game.WithRNG(randutil.Derive(cfg.Seed, uint64(t.index))),
		game.WithLogger(cfg.Logger.With("cell", c.key.String(), "action", c.action)))
	if err != nil {
		out.err = err
		return out
	}

	comps := c.hand.Compositions
	counts := allocate(t.start, t.count, comps)
	for i, comp := range comps {
		n := counts[i]
		if n == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			out.err = err
			return out
		}

		dealer, player := pin(comp, c.key.Upcard)
		stats, err := g.RunTrials(n, dealer, player, c.action, cfg.Bet, cfg.IncludeBlackjacks)
		out.stats.Merge(stats)
		if err != nil {
			out.err = fmt.Errorf("%s %s with %s%s: %w", c.key, c.action, comp[0], comp[1], err)
			return out
		}
	}
	return out
}

// allocate splits the trials in [start, start+count) between compositions in
// proportion to their weight. Trial j goes to slot j modulo the total weight
// and each composition owns Weight consecutive slots, so batches add up to
// the same split a single batch would give.
func allocate(start, count int, comps []Composition) []int {
	total := 0
	for _, c := range comps {
		total += c.Weight()
	}
	counts := make([]int, len(comps))
	slot := 0
	for i, c := range comps {
		for w := c.Weight(); w > 0; w-- {
			counts[i] += share(start, count, total, slot)
			slot++
		}
	}
	return counts
}

// share counts the trials in [start, start+count) whose index is congruent
// to i modulo n.
func share(start, count, n, i int) int {
	return countBelow(start+count, n, i) - countBelow(start, n, i)
}

func countBelow(limit, n, i int) int {
	if limit <= i {
		return 0
	}
	return (limit-i-1)/n + 1
}

func (s *Sweeper) logFailure(c cell, err error) {
	if errors.Is(err, game.ErrIllegalAction) {
		s.cfg.Logger.Debug("Action not applicable", "cell", c.key, "action", c.action, "error", err)
		return
	}
	s.cfg.Logger.Warn("Cell failed", "cell", c.key, "action", c.action, "error", err)
}
