// Package layout computes the static geometry of the radial stacked chart.
//
// [Build] turns segment records into a [Layout]: every arc, divider, scale
// ring, label and legend entry with its final position and color. Nothing
// here knows about time; the animation pass in package anim reads a
// Layout and schedules transitions for its elements by ID.
//
// # Geometry
//
// The chart is centered at (R, R) where R = min(height, width-margin)/2,
// leaving the margin on the right for the legend. The hole has radius
// 0.4R. A linear scale maps [0, max total] onto [0.4R, R]; each layer's
// band in a segment spans the scaled cumulative sums of the layers below
// it and itself. Segment i covers the angles [2πi/N, 2π(i+1)/N), measured
// clockwise from 12 o'clock.
//
// Arc paths are relative to the center (draw them inside a translated
// group); every other coordinate in a Layout is absolute.
package layout
