// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries call the registered hooks; main (or a test) decides what they do.
// The defaults are no-ops, so the render pipeline carries no dependency on any
// metrics backend.
//
//	observability.SetRenderHooks(myHooks)
//
//	observability.Render().OnRenderStart(ctx, "loop", "png")
//	// ... render ...
//	observability.Render().OnRenderComplete(ctx, "loop", "png", len(data), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, diagram, format string)
	OnRenderComplete(ctx context.Context, diagram, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from artifact cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
	OnCacheError(ctx context.Context, key string, err error)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, string) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)          {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)         {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)     {}
func (NoopCacheHooks) OnCacheError(context.Context, string, error) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers render hooks. nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults. Intended for tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
