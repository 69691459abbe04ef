// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline stages and merge progress.
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
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetMergeHooks(&myMergeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Merge().OnPass(ctx, pass, before, after)
//	observability.Merge().OnRelax(ctx, round, pixelDiff, threshold)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the unshred pipeline.
type PipelineHooks interface {
	// Decode events
	OnDecodeStart(ctx context.Context, path string)
	OnDecodeComplete(ctx context.Context, path string, width, height int, duration time.Duration, err error)

	// Reconstruct events
	OnReconstructStart(ctx context.Context, width, height int)
	OnReconstructComplete(ctx context.Context, shreds int, duration time.Duration, err error)

	// Encode events
	OnEncodeStart(ctx context.Context, path string)
	OnEncodeComplete(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// Merge Hooks
// =============================================================================

// MergeHooks receives events from the section merging loop.
type MergeHooks interface {
	// OnPass records one merge pass and the section count before and after it.
	OnPass(ctx context.Context, pass, before, after int)

	// OnRelax records a relaxation round and the new strictness.
	OnRelax(ctx context.Context, round, pixelDiff, threshold int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, string) {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnReconstructStart(context.Context, int, int)                     {}
func (NoopPipelineHooks) OnReconstructComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnEncodeStart(context.Context, string)                            {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, string, time.Duration, error)   {}

// NoopMergeHooks is a no-op implementation of MergeHooks.
type NoopMergeHooks struct{}

func (NoopMergeHooks) OnPass(context.Context, int, int, int)  {}
func (NoopMergeHooks) OnRelax(context.Context, int, int, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	mergeHooks    MergeHooks    = NoopMergeHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetMergeHooks registers custom merge hooks.
func SetMergeHooks(h MergeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		mergeHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Merge returns the registered merge hooks.
func Merge() MergeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return mergeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	mergeHooks = NoopMergeHooks{}
}
