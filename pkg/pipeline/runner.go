package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/davidblanc347/parodesign/pkg/assistant"
	"github.com/davidblanc347/parodesign/pkg/cache"
	"github.com/davidblanc347/parodesign/pkg/errors"
	"github.com/davidblanc347/parodesign/pkg/extract"
	"github.com/davidblanc347/parodesign/pkg/graph"
	"github.com/davidblanc347/parodesign/pkg/layout"
	"github.com/davidblanc347/parodesign/pkg/observability"
	"github.com/davidblanc347/parodesign/pkg/shape"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, generator, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache     cache.Cache
	Generator assistant.Generator
	Logger    *log.Logger
}

// NewRunner creates a runner.
// If c is nil, a NullCache is used (caching disabled).
// gen may be nil when only ProcessResponse is needed.
func NewRunner(c cache.Cache, gen assistant.Generator, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Generator: gen,
		Logger:    logger,
	}
}

// RunTurn runs one complete turn: ask the assistant, then process its
// response into a drawable batch if it carries a diagram.
func (r *Runner) RunTurn(ctx context.Context, description string, opts Options) (*Result, error) {
	if r.Generator == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "runner has no generator configured")
	}

	response, err := r.Generator.Generate(ctx, description)
	if err != nil {
		return nil, err
	}
	return r.ProcessResponse(ctx, response, opts)
}

// ProcessResponse runs the extract → validate → layout → synthesize flow
// over assistant response text.
//
// A response without a valid diagram block is not an error; the returned
// result has Found == false and carries only the response text.
func (r *Runner) ProcessResponse(ctx context.Context, response string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Response: response}

	// Stage 1+2: Extract and validate
	extractStart := time.Now()
	model, found := extract.Extract(response)
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Found = found
	result.Rejected = !found && extract.HasDiagram(response)
	observability.Turn().OnExtractComplete(ctx, found, result.Rejected)

	if !found {
		if result.Rejected {
			r.Logger.Warn("diagram block rejected, treating turn as plain chat")
		}
		return result, nil
	}

	result.Model = model
	result.ModelHash = graph.Hash(model)
	result.Stats.NodeCount = len(model.Nodes)
	result.Stats.EdgeCount = len(model.Edges)

	r.Logger.Info("extracted diagram",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount)

	// Stage 3: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, model, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(res.Nodes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Synthesize
	synthStart := time.Now()
	batch, batchHit, err := r.SynthesizeWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	result.Batch = batch
	result.Stats.SynthesizeTime = time.Since(synthStart)
	result.CacheInfo.BatchHit = batchHit

	r.Logger.Info("synthesized batch",
		"shapes", len(batch.Shapes),
		"connectors", len(batch.Connectors),
		"cached", batchHit,
		"duration", result.Stats.SynthesizeTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, m graph.Model, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Result{}, false, err
	}

	key := cache.LayoutKey(graph.Hash(m), opts.Layout)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// A corrupt entry falls through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Turn().OnLayoutStart(ctx, len(m.Nodes))
	start := time.Now()
	res := layout.Layout(m, opts.Layout)
	observability.Turn().OnLayoutComplete(ctx, len(m.Nodes), time.Since(start))

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return res, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, m graph.Model, opts Options) (layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, m, opts)
	return res, err
}

// SynthesizeWithCacheInfo synthesizes a shape batch with caching and
// returns cache hit info. Cache hits are re-minted so every returned batch
// carries fresh shape and connector ids.
func (r *Runner) SynthesizeWithCacheInfo(ctx context.Context, res layout.Result, opts Options) (shape.Batch, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return shape.Batch{}, false, err
	}

	layoutData, err := json.Marshal(res)
	if err != nil {
		return shape.Batch{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	key := cache.BatchKey(cache.Hash(layoutData), opts.Layout)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached shape.Batch
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "batch")
				fresh := cached.WithFreshIDs()
				observability.Turn().OnSynthesizeComplete(ctx, len(fresh.Shapes), len(fresh.Connectors), len(fresh.SkippedEdges))
				return fresh, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "batch")
	}

	batch := shape.Synthesize(res, opts.Layout.Direction)
	observability.Turn().OnSynthesizeComplete(ctx, len(batch.Shapes), len(batch.Connectors), len(batch.SkippedEdges))

	if data, err := json.Marshal(batch); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLBatch)
		observability.Cache().OnCacheSet(ctx, "batch", len(data))
	}
	return batch, false, nil
}

// Synthesize is a convenience wrapper that discards the cache hit info.
func (r *Runner) Synthesize(ctx context.Context, res layout.Result, opts Options) (shape.Batch, error) {
	batch, _, err := r.SynthesizeWithCacheInfo(ctx, res, opts)
	return batch, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
