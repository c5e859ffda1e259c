// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about diagram generation turns, cache
// operations, and assistant calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core pipeline free of observability framework
// dependencies.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTurnHooks(&myTurnHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Turn().OnLayoutStart(ctx, nodeCount)
//	// ... compute layout ...
//	observability.Turn().OnLayoutComplete(ctx, nodeCount, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Turn Hooks
// =============================================================================

// TurnHooks receives events from the diagram generation pipeline.
type TurnHooks interface {
	// Extraction events. rejected is true when a block was present but
	// failed parsing or validation.
	OnExtractComplete(ctx context.Context, found, rejected bool)

	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration)

	// Synthesis events. skippedEdges counts connectors dropped by the
	// dangling-edge defense.
	OnSynthesizeComplete(ctx context.Context, shapeCount, connectorCount, skippedEdges int)
}

// =============================================================================
// Assistant Hooks
// =============================================================================

// AssistantHooks receives events from language-model provider calls.
type AssistantHooks interface {
	// OnRequest records an outgoing completion request.
	OnRequest(ctx context.Context, model string)

	// OnResponse records a completion response.
	OnResponse(ctx context.Context, model string, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopTurnHooks is a no-op implementation of TurnHooks.
type NoopTurnHooks struct{}

func (NoopTurnHooks) OnExtractComplete(context.Context, bool, bool)        {}
func (NoopTurnHooks) OnLayoutStart(context.Context, int)                   {}
func (NoopTurnHooks) OnLayoutComplete(context.Context, int, time.Duration) {}
func (NoopTurnHooks) OnSynthesizeComplete(context.Context, int, int, int)  {}

// NoopAssistantHooks is a no-op implementation of AssistantHooks.
type NoopAssistantHooks struct{}

func (NoopAssistantHooks) OnRequest(context.Context, string)                        {}
func (NoopAssistantHooks) OnResponse(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	turnHooks      TurnHooks      = NoopTurnHooks{}
	assistantHooks AssistantHooks = NoopAssistantHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetTurnHooks registers custom turn hooks.
// This should be called once at application startup.
func SetTurnHooks(h TurnHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		turnHooks = h
	}
}

// SetAssistantHooks registers custom assistant hooks.
// This should be called once at application startup.
func SetAssistantHooks(h AssistantHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		assistantHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Turn returns the registered turn hooks.
func Turn() TurnHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return turnHooks
}

// Assistant returns the registered assistant hooks.
func Assistant() AssistantHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return assistantHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	turnHooks = NoopTurnHooks{}
	assistantHooks = NoopAssistantHooks{}
	cacheHooks = NoopCacheHooks{}
}
