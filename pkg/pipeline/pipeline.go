// Package pipeline provides the transform → layout → render pipeline for
// radial charts.
//
// The CLI, the HTTP host and the MCP host all run charts through this
// package, so defaults, validation and the handling of empty data behave the
// same way at every entry point.
//
// # Stages
//
//  1. Transform: reshape table rows into per-segment records
//  2. Layout: compute the scene (geometry and animation timeline)
//  3. Render: serialize the scene into every requested format
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, tbl, palette.Map{"AZ": "#f00"}, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	if result.Skipped {
//	    // nothing to draw; result.Artifacts["svg"] is an empty document
//	}
//
// Data that leaves nothing to draw (no rows, a missing role, an unusable
// viewport) is not an error: the result is marked Skipped. Invalid options
// and malformed values are returned as errors.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and MCP
// =============================================================================

const (
	// DefaultWidth is the default viewport width in layout units.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in layout units.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Width   float64        `json:"width,omitempty"`
	Height  float64        `json:"height,omitempty"`
	Formats []string       `json:"formats,omitempty"`
	Static  bool           `json:"static,omitempty"`
	Style   styles.Options `json:"style,omitempty"`
	Scale   float64        `json:"scale,omitempty"`  // PNG only
	Prefix  string         `json:"prefix,omitempty"` // SVG element ID prefix

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Ordinal []palette.Option `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the transformed segment records.
	Records []transform.SegmentRecord

	// Layers is the stacking, color and legend order.
	Layers []string

	// Scene is the composed chart. It is empty when Skipped.
	Scene scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Skipped is set when the data left nothing to draw.
	Skipped bool

	// SkipReason explains Skipped.
	SkipReason string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows          int
	SegmentCount  int
	LayerCount    int
	ElementCount  int
	TransformTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
	CacheHits     int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	if err := o.Style.Validate(); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 16 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be between 0 and 16, got %v", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.Style = o.Style.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = lo.Uniq(o.Formats)
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
