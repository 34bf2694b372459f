// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about separation runs, cache operations, and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the separation core never
// imports an observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSeparationHooks(&mySeparationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Separation().OnPassStart(ctx, pass, cols, rows)
//	// ... run the pass ...
//	observability.Separation().OnPassComplete(ctx, pass, separable, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Separation Hooks
// =============================================================================

// SeparationHooks receives events from separation loops.
type SeparationHooks interface {
	// Pass events
	OnPassStart(ctx context.Context, pass, cols, rows int)
	OnPassComplete(ctx context.Context, pass int, separable bool, duration time.Duration)

	// OnSearchComplete records the order search for one dimension ("rows" or
	// "cols") of a pass.
	OnSearchComplete(ctx context.Context, dimension string, explored, yielded int, duration time.Duration)

	// OnLoopComplete records the end of a loop.
	OnLoopComplete(ctx context.Context, passes int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSeparationHooks is a no-op implementation of SeparationHooks.
type NoopSeparationHooks struct{}

func (NoopSeparationHooks) OnPassStart(context.Context, int, int, int)                        {}
func (NoopSeparationHooks) OnPassComplete(context.Context, int, bool, time.Duration)          {}
func (NoopSeparationHooks) OnSearchComplete(context.Context, string, int, int, time.Duration) {}
func (NoopSeparationHooks) OnLoopComplete(context.Context, int, time.Duration)                {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	separationHooks SeparationHooks = NoopSeparationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetSeparationHooks registers custom separation hooks.
// This should be called once at application startup before any separation runs.
func SetSeparationHooks(h SeparationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		separationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Separation returns the registered separation hooks.
func Separation() SeparationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return separationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
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
	separationHooks = NoopSeparationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
