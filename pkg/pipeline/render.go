package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/radialstack/pkg/cache"
	"github.com/matzehuels/radialstack/pkg/observability"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/render/radial/sink"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// SkippedHeader is set by hosts on responses for charts with nothing to draw.
const SkippedHeader = "X-Radial-Skipped"

// Render serializes sc into every format of opts concurrently. records and
// layers are embedded in JSON output when non-nil.
func (r *Runner) Render(ctx context.Context, sc scene.Scene, records []transform.SegmentRecord, layers []string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.render(ctx, sc, records, layers, opts)
	return artifacts, err
}

// render is Render that also reports how many artifacts came from the cache.
func (r *Runner) render(ctx context.Context, sc scene.Scene, records []transform.SegmentRecord, layers []string, opts Options) (map[string][]byte, int, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	sceneHash := r.sceneHash(sc, records, layers, opts)

	var (
		mu        sync.Mutex
		hits      int
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key := r.artifactKey(sceneHash, format, opts)
			if data, ok := r.cached(gctx, key, opts); ok {
				mu.Lock()
				artifacts[format] = data
				hits++
				mu.Unlock()
				return nil
			}
			data, err := RenderFormat(sc, records, layers, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			opts.Logger.Debug("rendered format", "format", format, "size", humanize.Bytes(uint64(len(data))))
			r.store(gctx, key, data, opts)
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return artifacts, hits, nil
}

// sceneHash identifies the render input. It is empty when caching is off
// or the input cannot be hashed.
func (r *Runner) sceneHash(sc scene.Scene, records []transform.SegmentRecord, layers []string, opts Options) string {
	if r.Cache == nil {
		return ""
	}
	h, err := cache.HashJSON(struct {
		Scene   scene.Scene               `json:"scene"`
		Records []transform.SegmentRecord `json:"records,omitempty"`
		Layers  []string                  `json:"layers,omitempty"`
	}{sc, records, layers})
	if err != nil {
		opts.Logger.Debug("scene not cacheable", "err", err)
		return ""
	}
	return h
}

func (r *Runner) artifactKey(sceneHash, format string, opts Options) string {
	if sceneHash == "" {
		return ""
	}
	keyer := r.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	ko := cache.ArtifactKeyOpts{Format: format, Static: opts.Static, Prefix: opts.Prefix, Font: opts.Style.FontFamily}
	if format == FormatPNG {
		ko.Scale = opts.Scale
	}
	return keyer.ArtifactKey(sceneHash, ko)
}

// cached looks key up. Cache failures are logged and treated as misses.
func (r *Runner) cached(ctx context.Context, key string, opts Options) ([]byte, bool) {
	if key == "" {
		return nil, false
	}
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("artifact cache read failed", "err", err)
		return nil, false
	}
	return data, ok
}

func (r *Runner) store(ctx context.Context, key string, data []byte, opts Options) {
	if key == "" {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		opts.Logger.Warn("artifact cache write failed", "err", err)
	}
}

// RenderFormat serializes sc into one format.
func RenderFormat(sc scene.Scene, records []transform.SegmentRecord, layers []string, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return sink.RenderSVG(sc, svgOptions(opts)...), nil
	case FormatJSON:
		jopts := []sink.JSONOption{}
		if records != nil {
			jopts = append(jopts, sink.WithJSONRecords(records, layers))
		}
		if opts.Static {
			jopts = append(jopts, sink.WithJSONStatic())
		}
		return sink.RenderJSON(sc, jopts...)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return sink.RenderPNG(sc, sink.WithScale(scale))
	default:
		return sink.RenderPDF(sc)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Static {
		out = append(out, sink.WithStatic())
	}
	if opts.Prefix != "" {
		out = append(out, sink.WithIDPrefix(opts.Prefix))
	}
	if opts.Style.FontFamily != "" {
		out = append(out, sink.WithFontFamily(opts.Style.FontFamily))
	}
	return out
}

// EmptyScene returns the scene of a chart with nothing to draw.
func EmptyScene(opts Options) scene.Scene {
	return scene.Scene{Width: opts.Width, Height: opts.Height, FontFamily: opts.Style.FontFamily}
}
