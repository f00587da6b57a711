// Package anim schedules the entrance animation of a radial chart.
//
// Arcs fill in one after another, layer by layer, each segment of a layer
// starting one [ArcInterval] after the previous. While a layer's arcs fill,
// its name fades in at the center of the chart and fades out once the
// layer completes; its legend entry fades in on the same schedule and
// stays.
//
// [Schedule] only reads element IDs and colors from a layout.Layout, so the
// geometry and the timeline can be computed and tested independently.
package anim

import (
	"slices"
	"time"

	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
)

const (
	// ArcInterval is the stagger between consecutive arcs.
	ArcInterval = 100 * time.Millisecond

	// ArcDuration is how long one arc takes to fill.
	ArcDuration = 2400 * time.Millisecond

	// InitialFill is the fill color of an arc before its animation starts.
	InitialFill = "white"
)

// Attribute is an animated presentation attribute.
type Attribute string

const (
	AttrFill    Attribute = "fill"
	AttrOpacity Attribute = "opacity"
)

// Animation is one transition of one attribute of one element.
type Animation struct {
	Target    string        `json:"target"`
	Attribute Attribute     `json:"attribute"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Begin     time.Duration `json:"begin"`
	Duration  time.Duration `json:"duration"`
	Easing    string        `json:"easing"`
}

// End returns Begin + Duration.
func (a Animation) End() time.Duration { return a.Begin + a.Duration }

// Timeline is every animation of a chart, ordered by target then begin.
type Timeline []Animation

// For returns the animations of one element in begin order.
func (t Timeline) For(target string) []Animation {
	var out []Animation
	for _, a := range t {
		if a.Target == target {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b Animation) int { return int(a.Begin - b.Begin) })
	return out
}

// End returns the time at which the last animation finishes.
func (t Timeline) End() time.Duration {
	var end time.Duration
	for _, a := range t {
		end = max(end, a.End())
	}
	return end
}

// Initial returns the value of attr on target before any animation runs,
// and whether the timeline animates it at all.
func (t Timeline) Initial(target string, attr Attribute) (string, bool) {
	for _, a := range t.For(target) {
		if a.Attribute == attr {
			return a.From, true
		}
	}
	return "", false
}

// Final returns the value of attr on target once the timeline completes,
// and whether the timeline animates it at all.
func (t Timeline) Final(target string, attr Attribute) (string, bool) {
	var (
		val  string
		end  time.Duration = -1
		seen bool
	)
	for _, a := range t {
		if a.Target == target && a.Attribute == attr && a.End() >= end {
			val, end, seen = a.To, a.End(), true
		}
	}
	return val, seen
}

// ArcDelay returns the begin time of the arc of layer l in segment i of a
// chart with n segments.
func ArcDelay(layer, segment, n int) time.Duration {
	return time.Duration(layer*n+segment) * ArcInterval
}

// LayerDelay returns when the label and legend entry of a layer start
// fading in, and how long the fade lasts.
func LayerDelay(layer, n int) (begin, duration time.Duration) {
	return time.Duration(layer*n) * ArcInterval, time.Duration(n) * ArcInterval
}

// Schedule computes the timeline of l.
func Schedule(l layout.Layout) Timeline {
	n := len(l.Segments)
	var tl Timeline

	for _, a := range l.Arcs {
		tl = append(tl, Animation{
			Target:    a.ID,
			Attribute: AttrFill,
			From:      InitialFill,
			To:        a.Color,
			Begin:     ArcDelay(a.Layer, a.Segment, n),
			Duration:  ArcDuration,
			Easing:    "linear",
		})
	}

	for i, lbl := range l.LayerLabels {
		begin, dur := LayerDelay(i, n)
		tl = append(tl,
			Animation{Target: lbl.ID, Attribute: AttrOpacity, From: "0", To: "1", Begin: begin, Duration: dur, Easing: "linear"},
			Animation{Target: lbl.ID, Attribute: AttrOpacity, From: "1", To: "0", Begin: begin + dur, Duration: ArcInterval, Easing: "linear"},
		)
	}

	for i, lg := range l.Legend {
		begin, dur := LayerDelay(i, n)
		tl = append(tl, Animation{Target: lg.ID, Attribute: AttrOpacity, From: "0", To: "1", Begin: begin, Duration: dur, Easing: "linear"})
	}
	return tl
}
