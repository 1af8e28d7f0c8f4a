package cli

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sortviz/internal/config"
	"github.com/matzehuels/sortviz/pkg/controller"
	"github.com/matzehuels/sortviz/pkg/observability"
	"github.com/matzehuels/sortviz/pkg/source"
)

// =============================================================================
// Config
// =============================================================================

// loadConfig returns the effective configuration: defaults, config files,
// SORTVIZ_* environment variables.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := c.loader.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// arrayFlags override config values when set on the command line.
type arrayFlags struct {
	size     int
	maxValue int
	seed     uint64
	speed    float64
	noDelay  bool
}

func addArrayFlags(cmd *cobra.Command, f *arrayFlags) {
	cmd.Flags().IntVarP(&f.size, "size", "n", 0, "number of bars")
	cmd.Flags().IntVar(&f.maxValue, "max", 0, "exclusive upper bound of bar heights")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for the random array")
	cmd.Flags().Float64Var(&f.speed, "speed", 0, "pacing multiplier (2 = twice as fast)")
	cmd.Flags().BoolVar(&f.noDelay, "no-delay", false, "run without pauses")
}

// apply copies the flags that were set onto cfg and revalidates it.
func (f *arrayFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Array.Size = f.size
	}
	if flags.Changed("max") {
		cfg.Array.MaxValue = f.maxValue
	}
	if flags.Changed("seed") {
		seed := f.seed
		cfg.Array.Seed = &seed
	}
	if flags.Changed("speed") {
		cfg.Pacing.Speed = f.speed
	}
	if f.noDelay {
		cfg.Pacing.Unit = 0
	}
	return cfg.Validate()
}

// =============================================================================
// Controller Factory
// =============================================================================

// controllerOptions maps cfg onto controller options. A zero pacing unit in
// the config means no delay.
func controllerOptions(cfg *config.Config, logger *log.Logger) controller.Options {
	opts := controller.Options{
		Size:     cfg.Array.Size,
		MaxValue: cfg.Array.MaxValue,
		Unit:     cfg.Pacing.Unit.Std(),
		Speed:    cfg.Pacing.Speed,
		Logger:   logger,
	}
	if opts.Unit == 0 {
		opts.Unit = -1
	}
	if cfg.Array.Seed != nil {
		opts.Source = source.New(*cfg.Array.Seed)
	}
	return opts
}

func newController(cfg *config.Config, logger *log.Logger) (*controller.Controller, error) {
	ctrl, err := controller.New(controllerOptions(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	return ctrl, nil
}

// =============================================================================
// Session Stats
// =============================================================================

// sessionStats counts what happened during this process through the
// observability hooks.
type sessionStats struct {
	observability.NoopSortHooks
	observability.NoopHTTPHooks

	runs      atomic.Int64
	cancelled atomic.Int64
	emits     atomic.Int64
	requests  atomic.Int64
}

func (s *sessionStats) install() {
	observability.SetSortHooks(s)
	observability.SetHTTPHooks(s)
}

func (s *sessionStats) OnSortComplete(_ context.Context, _, _ string, stats observability.RunStats, err error) {
	s.runs.Add(1)
	s.emits.Add(int64(stats.Emits))
	if err != nil {
		s.cancelled.Add(1)
	}
}

func (s *sessionStats) OnRequest(context.Context, string, string) {
	s.requests.Add(1)
}

// summary renders e.g. "3 runs · 1 cancelled".
func (s *sessionStats) summary() string {
	runs := s.runs.Load()
	out := fmt.Sprintf("%d run", runs)
	if runs != 1 {
		out += "s"
	}
	if n := s.cancelled.Load(); n > 0 {
		out += fmt.Sprintf(" · %d cancelled", n)
	}
	return out
}
