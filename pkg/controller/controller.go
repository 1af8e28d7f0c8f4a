// Package controller coordinates the working array, the base snapshot and at
// most one running sort.
//
// A [Controller] owns three pieces of state:
//   - the base snapshot, replaced only by [Controller.RandomizeAndLoad]
//   - the working array the renderers read and the active sort mutates
//   - the highlight state published by the active sort
//
// Starting a sort while another is running is rejected with a BUSY error.
// After a run completes or is cancelled, the next start reloads the working
// array from the base first, so the same algorithm always replays the same
// steps until the array is randomized again.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/sortviz/pkg/errors"
	"github.com/matzehuels/sortviz/pkg/observability"
	"github.com/matzehuels/sortviz/pkg/sorting"
	"github.com/matzehuels/sortviz/pkg/source"
	"github.com/matzehuels/sortviz/pkg/visual"
)

// Defaults matching the classic 130-bar, 750-pixel screen.
const (
	DefaultSize     = 130
	DefaultMaxValue = 750
	DefaultUnit     = time.Millisecond
)

// Options configures a [Controller]. Zero fields take defaults.
type Options struct {
	Size     int           // number of bars
	MaxValue int           // exclusive upper bound of bar heights
	Unit     time.Duration // wall time of one pause unit at speed 1; negative disables pacing
	Speed    float64       // pacing multiplier, 2 runs twice as fast

	Source   source.Intn
	Launcher Launcher
	Sleeper  Sleeper
	Logger   *log.Logger
}

// View is read-only access to the working array.
type View interface {
	Len() int
	Get(i int) int
	Values() []int
}

// RunResult describes the latest run.
type RunResult struct {
	ID        string            `json:"id"`
	Algorithm sorting.Algorithm `json:"algorithm"`
	N         int               `json:"n"`
	Emits     int               `json:"emits"`
	Pauses    int               `json:"pauses"`
	Started   time.Time         `json:"started"`
	Duration  time.Duration     `json:"duration"`
	Running   bool              `json:"running"`
	Error     string            `json:"error,omitempty"`
	Err       error             `json:"-"`
}

// Cancelled reports whether the run was interrupted.
func (r RunResult) Cancelled() bool {
	return errors.Is(r.Err, errors.ErrCodeCancelled)
}

// Controller is safe for concurrent use.
type Controller struct {
	size     int
	maxValue int
	unit     time.Duration
	rng      source.Intn
	launch   Launcher
	sleeper  Sleeper
	logger   *log.Logger

	bars  *visual.Bars
	state visual.State
	speed speed

	mu         sync.Mutex // guards the fields below, never held by the hot path
	base       []int
	running    bool
	needsReset bool
	cancel     context.CancelFunc
	done       chan struct{} // of the latest run, closed once it has fully finished
	last       *RunResult
}

// New validates opts, generates the first base snapshot and loads it.
func New(opts Options) (*Controller, error) {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.MaxValue == 0 {
		opts.MaxValue = DefaultMaxValue
	}
	if opts.Unit == 0 {
		opts.Unit = DefaultUnit
	}
	if opts.Speed == 0 {
		opts.Speed = 1
	}
	if err := errors.ValidateArraySize(opts.Size); err != nil {
		return nil, err
	}
	if err := errors.ValidateMaxValue(opts.MaxValue); err != nil {
		return nil, err
	}
	if err := errors.ValidateSpeed(opts.Speed); err != nil {
		return nil, err
	}
	if opts.Source == nil {
		opts.Source = source.NewRandom()
	}
	if opts.Launcher == nil {
		opts.Launcher = GoLauncher
	}
	if opts.Sleeper == nil {
		opts.Sleeper = TimerSleeper{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	c := &Controller{
		size:     opts.Size,
		maxValue: opts.MaxValue,
		unit:     opts.Unit,
		rng:      opts.Source,
		launch:   opts.Launcher,
		sleeper:  opts.Sleeper,
		logger:   opts.Logger,
		bars:     visual.NewBars(opts.Size),
	}
	c.speed.store(opts.Speed)

	if err := c.RandomizeAndLoad(); err != nil {
		return nil, err
	}
	return c, nil
}

// RandomizeAndLoad replaces the base snapshot with fresh random heights,
// loads it into the working array and clears the highlight.
func (c *Controller) RandomizeAndLoad() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return errors.New(errors.ErrCodeBusy, "cannot randomize while a sort is running")
	}

	base, err := source.Generate(c.rng, c.size, c.maxValue)
	if err != nil {
		return err
	}
	c.base = base
	c.loadLocked()

	c.logger.Info("new random list generated", "n", c.size, "max", c.maxValue)
	observability.Sort().OnRandomize(context.Background(), c.size, c.maxValue)
	return nil
}

// LoadFromBase copies the base snapshot into the working array and clears
// the highlight. Calling it twice is the same as calling it once.
func (c *Controller) LoadFromBase() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return errors.New(errors.ErrCodeBusy, "cannot reset while a sort is running")
	}
	c.loadLocked()
	return nil
}

func (c *Controller) loadLocked() {
	c.bars.Load(c.base)
	c.state.Reset()
	c.needsReset = false
}

// StartSort launches the named algorithm against the working array and
// returns the run ID. The run is bound to ctx: cancelling ctx interrupts it.
func (c *Controller) StartSort(ctx context.Context, id string) (string, error) {
	alg, err := sorting.Parse(id)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return "", errors.New(errors.ErrCodeBusy, "a sort is already running")
	}
	if c.needsReset {
		c.loadLocked()
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	res := &RunResult{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Algorithm: alg,
		N:         c.size,
		Started:   time.Now(),
		Running:   true,
	}
	c.running = true
	c.cancel = cancel
	c.done = done
	c.last = res
	c.mu.Unlock()

	c.logger.Info("sort started", "algorithm", alg.Title(), "run", res.ID, "n", res.N)
	observability.Sort().OnSortStart(runCtx, res.ID, string(alg), res.N)

	c.launch(func() { c.run(runCtx, cancel, alg, res, done) })
	return res.ID, nil
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, alg sorting.Algorithm, res *RunResult, done chan struct{}) {
	defer close(done)
	defer cancel()

	p := &pacer{
		ctx:     ctx,
		state:   &c.state,
		sleeper: c.sleeper,
		unit:    c.unit,
		speed:   &c.speed,
	}
	err := alg.Func()(c.bars, p)
	if err != nil {
		c.state.Reset()
		err = errors.Wrap(errors.ErrCodeCancelled, err, "%s interrupted", alg.Title())
	} else {
		c.state.Complete()
	}

	c.mu.Lock()
	res.Emits = p.emits
	res.Pauses = p.pauses
	res.Duration = time.Since(res.Started)
	res.Running = false
	res.Err = err
	if err != nil {
		res.Error = errors.UserMessage(err)
	}
	c.running = false
	c.needsReset = true
	c.cancel = nil
	stats := observability.RunStats{N: res.N, Emits: res.Emits, Pauses: res.Pauses, Duration: res.Duration}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("sort cancelled", "algorithm", alg.Title(), "run", res.ID, "emits", stats.Emits, "duration", stats.Duration)
	} else {
		c.logger.Info("sort complete", "algorithm", alg.Title(), "run", res.ID,
			"emits", stats.Emits, "pauses", stats.Pauses, "duration", stats.Duration)
	}
	observability.Sort().OnSortComplete(context.WithoutCancel(ctx), res.ID, string(alg), stats, err)
}

// Cancel interrupts the active run and reports whether there was one. The
// run finishes asynchronously; use [Controller.Wait] to block until it has.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return false
	}
	c.cancel()
	return true
}

// Wait blocks until the latest run, including its logging and hooks, has
// finished.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Running reports whether a sort is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Bars returns the working array.
func (c *Controller) Bars() View { return c.bars }

// State returns the current highlight.
func (c *Controller) State() visual.Snapshot { return c.state.Load() }

// Frame reads the working array and the highlight for one render.
func (c *Controller) Frame() visual.Frame { return visual.Capture(c.bars, &c.state) }

// Base returns a copy of the base snapshot.
func (c *Controller) Base() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.base...)
}

// LastRun returns the most recent run, which may still be in progress.
func (c *Controller) LastRun() (RunResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return RunResult{}, false
	}
	return *c.last, true
}

// Speed returns the current pacing multiplier.
func (c *Controller) Speed() float64 { return c.speed.load() }

// SetSpeed changes the pacing multiplier. It takes effect at the next pause,
// including for a run already in progress.
func (c *Controller) SetSpeed(s float64) error {
	if err := errors.ValidateSpeed(s); err != nil {
		return err
	}
	c.speed.store(s)
	c.logger.Debug("speed changed", "speed", s)
	return nil
}

// Size returns the number of bars.
func (c *Controller) Size() int { return c.size }

// MaxValue returns the exclusive upper bound of bar heights.
func (c *Controller) MaxValue() int { return c.maxValue }
