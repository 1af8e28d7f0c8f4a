package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sortviz/pkg/errors"
)

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig,
			"config file must have a .toml, .yaml or .yml extension: %s", path)
	}
}

// DefaultPaths returns the config file search paths in priority order. The
// user config directory honors XDG_CONFIG_HOME.
func DefaultPaths() []string {
	paths := []string{
		".sortviz.toml", // Project-specific config (highest priority)
		".sortviz.yaml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "sortviz", "config.toml"), // User config
			filepath.Join(dir, "sortviz", "config.yaml"),
		)
	}
	return paths
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a loader over [DefaultPaths] and the process environment.
func NewLoader() *Loader {
	return &Loader{
		configPaths: DefaultPaths(),
		getenv:      os.Getenv,
	}
}

// Paths returns the search paths in priority order.
func (l *Loader) Paths() []string {
	return append([]string(nil), l.configPaths...)
}

// Load builds the configuration from, lowest priority first:
//  1. Built-in defaults
//  2. Config files in the search paths, or only customPath when set
//  3. Environment variables
//
// Command line flags are applied by the caller.
func (l *Loader) Load(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := loadFromFile(config, filepath.Clean(customPath)); err != nil {
			return nil, err
		}
	} else {
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			path := l.configPaths[i]
			if !fileExists(path) {
				continue
			}
			if err := loadFromFile(config, path); err != nil {
				return nil, err
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Resolve returns the file that [Loader.Load] reads with the highest
// priority: customPath when set, else the first existing search path.
func (l *Loader) Resolve(customPath string) (string, bool) {
	if customPath != "" {
		return filepath.Clean(customPath), true
	}
	for _, path := range l.configPaths {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// loadFromFile decodes path on top of config. Keys absent from the file keep
// their current values.
func loadFromFile(config *Config, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Decode(bytes.NewReader(data), format, config); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return nil
}

// Decode reads one document in format onto config.
func Decode(r io.Reader, format Format, config *Config) error {
	switch format {
	case FormatTOML:
		_, err := toml.NewDecoder(r).Decode(config)
		return err
	case FormatYAML:
		err := yaml.NewDecoder(r).Decode(config)
		if err == io.EOF {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Encode writes config in format.
func Encode(w io.Writer, format Format, config *Config) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(config)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(config); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Array Config
		"SORTVIZ_ARRAY_SIZE":      func(v string) error { return parseInt(v, &config.Array.Size) },
		"SORTVIZ_ARRAY_MAX_VALUE": func(v string) error { return parseInt(v, &config.Array.MaxValue) },
		"SORTVIZ_ARRAY_SEED":      func(v string) error { return parseSeed(v, &config.Array.Seed) },

		// Pacing Config
		"SORTVIZ_PACING_UNIT":  func(v string) error { return parseDuration(v, &config.Pacing.Unit) },
		"SORTVIZ_PACING_SPEED": func(v string) error { return parseFloat(v, &config.Pacing.Speed) },

		// UI Config
		"SORTVIZ_UI_REFRESH":     func(v string) error { return parseDuration(v, &config.UI.Refresh) },
		"SORTVIZ_UI_THEME":       func(v string) error { config.UI.Theme = v; return nil },
		"SORTVIZ_UI_SHOW_LEGEND": func(v string) error { return parseBool(v, &config.UI.ShowLegend) },

		// Server Config
		"SORTVIZ_SERVER_ADDR": func(v string) error { config.Server.Addr = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid value for %s", envVar)
			}
		}
	}
	return nil
}

// fileExists checks if a regular file exists
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = Duration(val)
	return nil
}

func parseSeed(s string, dst **uint64) error {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = &val
	return nil
}
