// Package palette assigns colors to layers.
//
// Arcs are always colored by an [Ordinal] palette over the chart's layer
// order. Layer labels and legend entries prefer the host palette ([Host])
// and fall back to the ordinal color. Host palettes can be loaded from TOML:
//
//	unknown = "#ccc"
//	scheme  = ["#1f77b4", "#ff7f0e"]
//
//	[colors]
//	AZ = "#d62728"
//	NY = "#2ca02c"
package palette

// Category10 is the d3 schemeCategory10 sequence.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Unknown is the neutral color for keys without an assigned color.
const Unknown = "#ccc"

// Ordinal maps a fixed key domain onto a color sequence by position.
type Ordinal struct {
	index   map[string]int
	colors  []string
	unknown string
	cycle   bool
}

// Option configures an Ordinal.
type Option func(*Ordinal)

// WithColors replaces the color sequence. An empty sequence is ignored.
func WithColors(colors []string) Option {
	return func(o *Ordinal) {
		if len(colors) > 0 {
			o.colors = append([]string(nil), colors...)
		}
	}
}

// WithUnknown sets the fallback color.
func WithUnknown(c string) Option {
	return func(o *Ordinal) {
		if c != "" {
			o.unknown = c
		}
	}
}

// WithCycle makes keys past the end of the sequence wrap around to its
// start instead of falling back to the unknown color.
func WithCycle() Option {
	return func(o *Ordinal) { o.cycle = true }
}

// NewOrdinal returns a palette over domain. Duplicate keys keep their
// first position.
func NewOrdinal(domain []string, opts ...Option) *Ordinal {
	o := &Ordinal{
		index:   make(map[string]int, len(domain)),
		colors:  Category10,
		unknown: Unknown,
	}
	for _, opt := range opts {
		opt(o)
	}
	for _, k := range domain {
		if _, ok := o.index[k]; !ok {
			o.index[k] = len(o.index)
		}
	}
	return o
}

// Color returns the color of key.
func (o *Ordinal) Color(key string) string {
	i, ok := o.index[key]
	if !ok {
		return o.unknown
	}
	if i >= len(o.colors) {
		if !o.cycle {
			return o.unknown
		}
		i %= len(o.colors)
	}
	return o.colors[i]
}

// Unknown returns the fallback color.
func (o *Ordinal) Unknown() string { return o.unknown }

// Host is a palette supplied by the embedding host.
type Host interface {
	Color(key string) (string, bool)
}

// Map is a Host backed by a fixed key to color table.
type Map map[string]string

// Color implements Host.
func (m Map) Color(key string) (string, bool) {
	c, ok := m[key]
	return c, ok && c != ""
}

// LabelColor returns the host color of key, falling back to the ordinal
// color. h may be nil.
func LabelColor(h Host, o *Ordinal, key string) string {
	if h != nil {
		if c, ok := h.Color(key); ok {
			return c
		}
	}
	return o.Color(key)
}
