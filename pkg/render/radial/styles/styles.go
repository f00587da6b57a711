// Package styles holds the user-editable style options of the radial chart
// and the property schema a host uses to build its formatting pane.
package styles

import (
	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/fonts"
)

const (
	// DefaultLayerFontSize is the font size of the layer labels in the hole.
	DefaultLayerFontSize = 14.0

	// DefaultLegendFontSize is the font size of legend entries.
	DefaultLegendFontSize = 12.0
)

// Options are the style options a host can edit.
type Options struct {
	FontFamily     string  `mapstructure:"font_family" json:"fontFamily,omitempty"`
	LayerFontSize  float64 `mapstructure:"layer_font_size" json:"layerFontSize,omitempty"`
	LegendFontSize float64 `mapstructure:"legend_font_size" json:"legendFontSize,omitempty"`
}

// Defaults returns the default style options.
func Defaults() Options {
	return Options{
		FontFamily:     fonts.FontFamily,
		LayerFontSize:  DefaultLayerFontSize,
		LegendFontSize: DefaultLegendFontSize,
	}
}

// WithDefaults returns o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	d := Defaults()
	if o.FontFamily == "" {
		o.FontFamily = d.FontFamily
	}
	if o.LayerFontSize == 0 {
		o.LayerFontSize = d.LayerFontSize
	}
	if o.LegendFontSize == 0 {
		o.LegendFontSize = d.LegendFontSize
	}
	return o
}

// Validate checks the font sizes. Zero values are valid and mean "default".
func (o Options) Validate() error {
	if err := errors.ValidateFontSize("layerFontSize", o.LayerFontSize); err != nil {
		return err
	}
	if err := errors.ValidateFontSize("legendFontSize", o.LegendFontSize); err != nil {
		return err
	}
	if len(o.FontFamily) > 256 {
		return errors.New(errors.ErrCodeInvalidStyle, "fontFamily too long (max 256 characters)")
	}
	return nil
}

// LegendRowHeight is the vertical distance between legend entries.
func (o Options) LegendRowHeight() float64 {
	return o.WithDefaults().LegendFontSize * 5 / 3
}

// PropertyType is the editor type of a style property.
type PropertyType string

const (
	PropertyText    PropertyType = "text"
	PropertyNumeric PropertyType = "numeric"
)

// Property describes one editable style option.
type Property struct {
	Object      string       `json:"objectName"`
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Type        PropertyType `json:"type"`
	Value       any          `json:"value"`
}

// ObjectName groups the chart's properties in the host's formatting pane.
const ObjectName = "radialSettings"

// Schema enumerates the editable options with the current values of o.
func Schema(o Options) []Property {
	o = o.WithDefaults()
	return []Property{
		{Object: ObjectName, Name: "fontFamily", DisplayName: "Font family", Type: PropertyText, Value: o.FontFamily},
		{Object: ObjectName, Name: "layerFontSize", DisplayName: "Layer label size", Type: PropertyNumeric, Value: o.LayerFontSize},
		{Object: ObjectName, Name: "legendFontSize", DisplayName: "Legend text size", Type: PropertyNumeric, Value: o.LegendFontSize},
	}
}
