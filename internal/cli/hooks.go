package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports render and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRenderStart(_ context.Context, diagram, format string) {
	h.logger.Debug("render start", "diagram", diagram, "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, diagram, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "diagram", diagram, "format", format, "error", err)
		return
	}
	h.logger.Debug("render done", "diagram", diagram, "format", format, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h logHooks) OnCacheError(_ context.Context, key string, err error) {
	h.logger.Warn("cache error", "key", key, "error", err)
}
