package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialstack/pkg/cache"
	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/observability"
	"github.com/matzehuels/radialstack/pkg/render/radial"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/table"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// Runner executes the pipeline.
//
// The Runner is stateless except for the logger and the artifact cache - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Logger *log.Logger

	// LayoutOptions are passed to every layout, after the options derived
	// from Options.
	LayoutOptions []layout.Option

	// Cache stores rendered artifacts. Nil disables caching.
	Cache cache.Cache

	// Keyer builds artifact keys. Nil uses the default keyer.
	Keyer cache.Keyer

	// TTL is the lifetime of cached artifacts. Zero never expires.
	TTL time.Duration
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(logger *log.Logger, opts ...layout.Option) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, LayoutOptions: opts}
}

// WithCache sets the artifact cache and returns r.
func (r *Runner) WithCache(c cache.Cache, keyer cache.Keyer, ttl time.Duration) *Runner {
	r.Cache, r.Keyer, r.TTL = c, keyer, ttl
	return r
}

// Close releases the artifact cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

// Execute runs the complete transform → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, tbl table.Table, host palette.Host, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.Rows = len(tbl.Rows)

	// Stage 1: Transform
	transformStart := time.Now()
	records, err := r.Transform(ctx, tbl)
	result.Stats.TransformTime = time.Since(transformStart)
	if err != nil {
		if !errors.NoData(err) {
			return nil, fmt.Errorf("transform: %w", err)
		}
		return r.skip(ctx, result, opts, err)
	}
	result.Records = records
	result.Layers = transform.LayerNames(records)
	result.Stats.SegmentCount = len(records)
	result.Stats.LayerCount = len(result.Layers)

	logger.Info("transformed table",
		"rows", result.Stats.Rows,
		"segments", result.Stats.SegmentCount,
		"layers", result.Stats.LayerCount)

	// Stage 2: Layout
	layoutStart := time.Now()
	sc, err := r.Layout(ctx, records, result.Layers, host, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	if err != nil {
		if !stderrors.Is(err, layout.ErrNothingToDraw) {
			return nil, fmt.Errorf("layout: %w", err)
		}
		return r.skip(ctx, result, opts, err)
	}
	result.Scene = sc
	result.Stats.ElementCount = sc.Len()

	logger.Info("computed layout",
		"elements", sc.Len(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hits, err := r.render(ctx, sc, records, result.Layers, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.CacheHits = hits

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Transform reshapes tbl into segment records.
func (r *Runner) Transform(ctx context.Context, tbl table.Table) ([]transform.SegmentRecord, error) {
	hooks := observability.Pipeline()
	hooks.OnTransformStart(ctx, len(tbl.Rows))
	start := time.Now()

	records, err := transform.Transform(tbl)
	hooks.OnTransformComplete(ctx, len(records), len(transform.LayerNames(records)), time.Since(start), err)
	if err == nil && len(records) == 0 {
		err = errors.New(errors.ErrCodeEmptyInput, "table has no rows")
	}
	return records, err
}

// Layout composes the scene of records.
func (r *Runner) Layout(ctx context.Context, records []transform.SegmentRecord, layers []string, host palette.Host, opts Options) (scene.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return scene.Scene{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(records))
	start := time.Now()

	lopts := append([]layout.Option{layout.WithOrdinalOptions(opts.Ordinal...)}, r.LayoutOptions...)
	ropts := []radial.Option{radial.WithLayoutOptions(lopts...)}
	if opts.Static {
		ropts = append(ropts, radial.WithStatic())
	}
	sc, err := radial.Compose(records, layers, layout.Viewport{Width: opts.Width, Height: opts.Height}, host, opts.Style, ropts...)
	hooks.OnLayoutComplete(ctx, sc.Len(), time.Since(start), err)
	return sc, err
}

// skip fills result for data that leaves nothing to draw. The only
// artifact is an empty SVG document.
func (r *Runner) skip(ctx context.Context, result *Result, opts Options, reason error) (*Result, error) {
	result.Skipped = true
	result.SkipReason = errors.UserMessage(reason)
	opts.Logger.Warn("nothing to draw", "reason", result.SkipReason)

	artifacts, err := r.Render(ctx, EmptyScene(opts), nil, nil, Options{
		Width:   opts.Width,
		Height:  opts.Height,
		Formats: []string{FormatSVG},
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
