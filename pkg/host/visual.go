// Package host adapts the radial chart to a dashboard host lifecycle.
//
// A host constructs one [Visual] per chart instance, hands it a drawing
// surface once through [Visual.OnInit] and then calls [Visual.OnUpdate]
// whenever the data, viewport, palette or style changes. Every update
// rebuilds the chart from scratch: the surface is cleared first, so a new
// update supersedes whatever the previous one drew, including animations
// still in flight.
//
// The adapter never fails towards the host. Bad data, an unusable viewport
// or even a panic in the renderer leave the surface empty and are reported
// in the returned [Status] for logging.
package host

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/render/radial"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/table"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// Update is everything the host supplies on one update.
type Update struct {
	Table    table.Table
	Viewport layout.Viewport
	Palette  palette.Host
	Style    styles.Options
	Static   bool
}

// Status reports the outcome of an update.
type Status struct {
	Drawn    bool
	Elements int
	Segments int
	Layers   int
	Code     errors.Code // set when nothing was drawn
	Reason   string
	Warnings []string
}

func (s Status) String() string {
	if s.Drawn {
		return fmt.Sprintf("drew %d elements (%d segments, %d layers)", s.Elements, s.Segments, s.Layers)
	}
	return fmt.Sprintf("nothing drawn: %s", s.Reason)
}

// Option configures a Visual.
type Option func(*Visual)

// WithRenderOptions passes options to every render.
func WithRenderOptions(opts ...radial.Option) Option {
	return func(v *Visual) { v.opts = append(v.opts, opts...) }
}

// Visual is one chart instance. Its methods are safe for concurrent use,
// though hosts normally call them serially.
type Visual struct {
	mu      sync.Mutex
	id      string
	surface scene.Surface
	style   styles.Options
	last    scene.Scene
	records []transform.SegmentRecord
	opts    []radial.Option
}

// New returns a Visual that draws onto an in-memory surface until OnInit
// provides one.
func New(opts ...Option) *Visual {
	v := &Visual{surface: scene.NewMemorySurface(), style: styles.Defaults()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// OnInit binds the visual to its drawing surface and assigns the instance
// ID. A nil surface keeps the in-memory default.
func (v *Visual) OnInit(s scene.Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.id = uuid.NewString()
	if s != nil {
		v.surface = s
	}
	v.surface.Clear()
}

// ID returns the instance ID assigned by OnInit. Hosts that place several
// charts in one document use it as an element ID prefix.
func (v *Visual) ID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.id
}

// Scene returns the scene drawn by the last successful update.
func (v *Visual) Scene() scene.Scene {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last
}

// Records returns the records of the last update.
func (v *Visual) Records() []transform.SegmentRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.records
}

// OnUpdate transforms the table and redraws the chart.
func (v *Visual) OnUpdate(u Update) (st Status) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.surface.Clear()
	v.last, v.records = scene.Scene{}, nil
	defer func() {
		if r := recover(); r != nil {
			v.surface.Clear()
			v.last = scene.Scene{}
			st = Status{Code: errors.ErrCodeInternal, Reason: fmt.Sprintf("render panicked: %v", r)}
		}
	}()

	style := u.Style
	if err := style.Validate(); err != nil {
		st.Warnings = append(st.Warnings, errors.UserMessage(err)+"; using default style")
		style = styles.Defaults()
	}
	v.style = style.WithDefaults()

	records, err := transform.Transform(u.Table)
	if err != nil {
		return v.fail(st, err)
	}
	v.records = records
	layers := transform.LayerNames(records)
	st.Segments, st.Layers = len(records), len(layers)

	opts := v.opts
	if u.Static {
		opts = append(opts[:len(opts):len(opts)], radial.WithStatic())
	}
	sc, err := radial.Compose(records, layers, u.Viewport, u.Palette, v.style, opts...)
	if err != nil {
		return v.fail(st, err)
	}
	scene.Draw(v.surface, sc)
	v.last = sc
	st.Drawn, st.Elements = true, sc.Len()
	return st
}

func (v *Visual) fail(st Status, err error) Status {
	v.surface.Clear()
	st.Code = errors.GetCode(err)
	st.Reason = errors.UserMessage(err)
	return st
}

// OnEnumerateStyleOptions returns the editable style properties with their
// current values.
func (v *Visual) OnEnumerateStyleOptions() []styles.Property {
	v.mu.Lock()
	defer v.mu.Unlock()
	return styles.Schema(v.style)
}
