// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about array generation, sort runs, and the HTTP control
// surface.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSortHooks(&mySortHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sort().OnSortStart(ctx, runID, "heap", 130)
//	// ... run the sort ...
//	observability.Sort().OnSortComplete(ctx, runID, "heap", stats, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sort Hooks
// =============================================================================

// RunStats summarizes one sort run.
type RunStats struct {
	N        int
	Emits    int
	Pauses   int
	Duration time.Duration
}

// SortHooks receives events from the sort controller.
type SortHooks interface {
	// OnRandomize records a freshly generated base array.
	OnRandomize(ctx context.Context, n, maxValue int)

	// OnSortStart records the launch of a run.
	OnSortStart(ctx context.Context, runID, algorithm string, n int)

	// OnSortComplete records the end of a run. err is non-nil for an
	// interrupted run.
	OnSortComplete(ctx context.Context, runID, algorithm string, stats RunStats, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP control surface.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSortHooks is a no-op implementation of SortHooks.
type NoopSortHooks struct{}

func (NoopSortHooks) OnRandomize(context.Context, int, int)                           {}
func (NoopSortHooks) OnSortStart(context.Context, string, string, int)                {}
func (NoopSortHooks) OnSortComplete(context.Context, string, string, RunStats, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sortHooks SortHooks = NoopSortHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetSortHooks registers custom sort hooks.
// This should be called once at application startup before any sort runs.
func SetSortHooks(h SortHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sortHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Sort returns the registered sort hooks.
func Sort() SortHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sortHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sortHooks = NoopSortHooks{}
	httpHooks = NoopHTTPHooks{}
}
