package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/topodiagram/pkg/cache"
	"github.com/matzehuels/topodiagram/pkg/diagram"
	"github.com/matzehuels/topodiagram/pkg/errors"
	topoio "github.com/matzehuels/topodiagram/pkg/io"
	"github.com/matzehuels/topodiagram/pkg/observability"
	"github.com/matzehuels/topodiagram/pkg/render"
	"github.com/matzehuels/topodiagram/pkg/render/dot"
)

// Runner executes runs against a shared cache.
//
// The Runner is stateless except for the cache and logger; it does not keep
// results. It may be shared between goroutines running different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute builds, renders and writes one diagram.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	logger := opts.Logger
	result := &Result{}

	// Stage 1: Build
	start := time.Now()
	d, err := r.build(ctx, &opts)
	if err != nil {
		return nil, err
	}
	result.Diagram = d
	result.Stats.BuildTime = time.Since(start)
	result.Stats.NodeCount = d.NodeCount()
	result.Stats.ClusterCount = d.ClusterCount()
	result.Stats.EdgeCount = d.EdgeCount()

	logger.Info("built diagram",
		"nodes", result.Stats.NodeCount,
		"clusters", result.Stats.ClusterCount,
		"edges", result.Stats.EdgeCount)

	// Stage 2: Convert
	result.DOT = dot.ToDOT(d, dot.Options{Detailed: opts.Detailed})
	result.DOTHash = cache.Hash([]byte(result.DOT))

	// Stage 3: Render
	start = time.Now()
	data, hit, err := r.renderArtifact(ctx, logger, result.DOT, opts.Format, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered diagram",
		"format", opts.Format,
		"bytes", len(data),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	// Stage 4: Write
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	path := filepath.Join(opts.Dir, d.Spec().OutputName())
	err = topoio.WriteFile(path, data)
	observability.Pipeline().OnWrite(ctx, path, len(data), err)
	if err != nil {
		return nil, err
	}
	result.Path = path
	result.Size = len(data)
	result.Stats.WriteTime = time.Since(start)

	return result, nil
}

// Describe builds the diagram without rendering or writing anything.
func (r *Runner) Describe(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.build(ctx, &opts)
}

func (r *Runner) build(ctx context.Context, opts *Options) (*diagram.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Topology)

	start := time.Now()
	d, err := diagram.Draw(opts.Spec(), opts.build)
	if err != nil {
		hooks.OnBuildComplete(ctx, opts.Topology, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, opts.Topology, d.NodeCount(), time.Since(start), nil)
	return d, nil
}

// RenderWithCacheInfo renders src in format and reports whether the bytes
// came from the cache. DOT output is returned as is and never cached.
// Failed cache writes are logged and otherwise ignored.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, src string, format diagram.Format, refresh bool) ([]byte, bool, error) {
	return r.renderArtifact(ctx, r.Logger, src, format, refresh)
}

func (r *Runner) renderArtifact(ctx context.Context, logger *log.Logger, src string, format diagram.Format, refresh bool) ([]byte, bool, error) {
	if format == diagram.FormatDOT {
		return []byte(src), false, nil
	}

	key := r.Keyer.ArtifactKey(cache.Hash([]byte(src)), string(format))
	cacheHooks := observability.Cache()

	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Debug("cache read failed", "err", err)
		case hit && len(data) > 0:
			cacheHooks.OnCacheHit(ctx, string(format))
			return data, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, string(format))
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, string(format))
	start := time.Now()
	data, err := render.Render(ctx, src, format)
	hooks.OnRenderComplete(ctx, string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		logger.Debug("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, string(format), len(data))
	}
	return data, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	if err := r.Cache.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close cache")
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
