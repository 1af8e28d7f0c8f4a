package controller

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/matzehuels/sortviz/pkg/sorting"
	"github.com/matzehuels/sortviz/pkg/visual"
)

// Launcher runs a sort task. The default starts a goroutine; tests pass one
// that runs the task inline.
type Launcher func(task func())

// GoLauncher runs each task on its own goroutine.
func GoLauncher(task func()) { go task() }

// Sleeper blocks the sorting goroutine for d, or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps on a timer.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// speed is a float64 multiplier stored as bits so the running sort can read
// it without locking.
type speed struct{ bits atomic.Uint64 }

func (s *speed) load() float64   { return math.Float64frombits(s.bits.Load()) }
func (s *speed) store(v float64) { s.bits.Store(math.Float64bits(v)) }

// pacer is the Tracer handed to a running sort. It publishes highlights to
// the shared state and turns pause units into sleeps.
type pacer struct {
	ctx     context.Context
	state   *visual.State
	sleeper Sleeper
	unit    time.Duration
	speed   *speed

	emits  int
	pauses int
}

func (p *pacer) Emit(h sorting.Highlight) {
	p.emits++
	p.state.Emit(h)
}

func (p *pacer) Pause(units int) error {
	p.pauses++
	if err := p.ctx.Err(); err != nil {
		return err
	}
	if p.unit <= 0 {
		return nil
	}
	return p.sleeper.Sleep(p.ctx, pauseFor(units, p.unit, p.speed.load()))
}

// pauseFor scales units of unit by speed, saturating at the longest
// representable duration.
func pauseFor(units int, unit time.Duration, speed float64) time.Duration {
	d := float64(units) * float64(unit) / speed
	if d >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(d)
}
