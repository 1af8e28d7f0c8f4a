// Package config loads sortviz settings from TOML or YAML files and
// SORTVIZ_* environment variables, and watches the active file for changes.
package config

import (
	"fmt"
	"time"

	"github.com/matzehuels/sortviz/pkg/errors"
)

// Config holds the complete application configuration
type Config struct {
	Array  ArrayConfig  `toml:"array" yaml:"array"`
	Pacing PacingConfig `toml:"pacing" yaml:"pacing"`
	UI     UIConfig     `toml:"ui" yaml:"ui"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// ArrayConfig shapes the generated bar array
type ArrayConfig struct {
	Size     int     `toml:"size" yaml:"size"`                       // number of bars
	MaxValue int     `toml:"max_value" yaml:"max_value"`             // exclusive upper bound of heights
	Seed     *uint64 `toml:"seed,omitempty" yaml:"seed,omitempty"` // fixed seed; random when unset
}

// PacingConfig controls how fast sorts play back
type PacingConfig struct {
	Unit  Duration `toml:"unit" yaml:"unit"`   // wall time of one pause unit
	Speed float64  `toml:"speed" yaml:"speed"` // multiplier applied to every pause
}

// UIConfig configures the terminal renderer
type UIConfig struct {
	Refresh    Duration `toml:"refresh" yaml:"refresh"`         // frame interval
	Theme      string   `toml:"theme" yaml:"theme"`             // classic|mono
	ShowLegend bool     `toml:"show_legend" yaml:"show_legend"` // key help under the bars
}

// ServerConfig configures the HTTP control surface
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Themes accepted by UIConfig.Theme.
var Themes = []string{"classic", "mono"}

// DefaultConfig returns the classic 130 bar setup at real-time pacing.
func DefaultConfig() *Config {
	return &Config{
		Array: ArrayConfig{
			Size:     130,
			MaxValue: 750,
		},
		Pacing: PacingConfig{
			Unit:  Duration(time.Millisecond),
			Speed: 1.0,
		},
		UI: UIConfig{
			Refresh:    Duration(33 * time.Millisecond),
			Theme:      "classic",
			ShowLegend: true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateArrayConfig(); err != nil {
		return err
	}
	if err := c.validatePacingConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	return nil
}

func (c *Config) validateArrayConfig() error {
	if err := errors.ValidateArraySize(c.Array.Size); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "array.size")
	}
	if err := errors.ValidateMaxValue(c.Array.MaxValue); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "array.max_value")
	}
	return nil
}

func (c *Config) validatePacingConfig() error {
	if c.Pacing.Unit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pacing.unit must be non-negative, got %s", c.Pacing.Unit)
	}
	if err := errors.ValidateSpeed(c.Pacing.Speed); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "pacing.speed")
	}
	return nil
}

func (c *Config) validateUIConfig() error {
	if c.UI.Refresh.Std() < time.Millisecond {
		return errors.New(errors.ErrCodeInvalidConfig, "ui.refresh must be at least 1ms, got %s", c.UI.Refresh)
	}
	for _, t := range Themes {
		if c.UI.Theme == t {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid ui.theme: %s (must be one of: classic, mono)", c.UI.Theme)
}

// Duration is a time.Duration written as "33ms" in both file formats.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}
