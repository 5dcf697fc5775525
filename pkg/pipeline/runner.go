package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/loopchart/pkg/cache"
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute renders every requested format of one diagram concurrently.
// The first failing format cancels the others.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	type output struct {
		data []byte
		hit  bool
	}
	outputs := make([]output, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() error {
			data, hit, err := r.renderCached(gctx, opts, format)
			if err != nil {
				return err
			}
			outputs[i] = output{data: data, hit: hit}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Diagram:   opts.Diagram,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Cached:    make(map[string]bool, len(opts.Formats)),
	}
	for i, format := range opts.Formats {
		result.Artifacts[format] = outputs[i].data
		result.Cached[format] = outputs[i].hit
		result.Stats.Bytes += len(outputs[i].data)
		if outputs[i].hit {
			result.Stats.CacheHits++
		}
	}
	result.Stats.RenderTime = time.Since(start)

	opts.Logger.Debug("rendered outputs",
		"diagram", opts.Diagram,
		"formats", opts.Formats,
		"cached", result.Stats.CacheHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderCached returns the artifact for format, from the cache when present.
// Cache failures are logged and treated as misses.
func (r *Runner) renderCached(ctx context.Context, opts Options, format string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format))
	hooks := observability.Cache()

	if !opts.NoCache {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			hooks.OnCacheError(ctx, key, err)
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		case hit:
			hooks.OnCacheHit(ctx, key)
			return data, true, nil
		default:
			hooks.OnCacheMiss(ctx, key)
		}
	}

	data, err := r.render(ctx, opts, format)
	if err != nil {
		return nil, false, err
	}

	if !opts.NoCache {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			hooks.OnCacheError(ctx, key, err)
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			hooks.OnCacheSet(ctx, key, len(data))
		}
	}
	return data, false, nil
}

func (r *Runner) render(ctx context.Context, opts Options, format string) ([]byte, error) {
	hooks := observability.Render()
	diagram := string(opts.Diagram)

	hooks.OnRenderStart(ctx, diagram, format)
	start := time.Now()
	data, err := guard(func() ([]byte, error) { return Render(ctx, opts, format) })
	hooks.OnRenderComplete(ctx, diagram, format, len(data), time.Since(start), err)

	if err != nil {
		return nil, asRenderError(err, diagram, format)
	}
	opts.Logger.Debug("rendered artifact", "diagram", diagram, "format", format, "bytes", len(data), "duration", time.Since(start))
	return data, nil
}

// guard runs fn, reporting a panic as a RENDER_FAILED error instead of
// unwinding the errgroup goroutine.
func guard(fn func() ([]byte, error)) (data []byte, err error) {
	defer func() {
		if v := recover(); v != nil {
			data, err = nil, errors.New(errors.ErrCodeRenderFailed, "render panicked: %v", v)
		}
	}()
	return fn()
}

// asRenderError keeps coded errors and context cancellation as they are and
// wraps everything else as RENDER_FAILED.
func asRenderError(err error, diagram, format string) error {
	if errors.GetCode(err) != "" || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s %s", diagram, format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
