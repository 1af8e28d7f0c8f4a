package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/sortviz/pkg/errors"
)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	Path     string
	Load     func() (*Config, error)
	Debounce time.Duration
	Logger   *log.Logger
}

// Watch starts watching and returns a channel of successfully reloaded
// configs. Invalid edits are logged and skipped. The channel is closed once
// ctx is done.
//
// The parent directory is watched rather than the file so that editors which
// save by rename keep being observed.
func (w *Watcher) Watch(ctx context.Context) (<-chan *Config, error) {
	if w.Path == "" || w.Load == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "watcher needs a path and a loader")
	}
	target, err := filepath.Abs(w.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve %s", w.Path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to create watcher")
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		_ = fw.Close()
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "watch %s", filepath.Dir(target))
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := w.Logger
	if logger == nil {
		logger = log.Default()
	}

	out := make(chan *Config)
	go w.loop(ctx, fw, target, debounce, logger, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, target string, debounce time.Duration, logger *log.Logger, out chan<- *Config) {
	defer close(out)
	defer func() {
		if err := fw.Close(); err != nil {
			logger.Debug("failed to close config watcher", "error", err)
		}
	}()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !relevant(event, target) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)

		case <-timer.C:
			cfg, err := w.Load()
			if err != nil {
				logger.Warn("config reload failed", "path", target, "error", err)
				continue
			}
			logger.Info("config reloaded", "path", target)
			select {
			case out <- cfg:
			case <-ctx.Done():
				return
			}
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
