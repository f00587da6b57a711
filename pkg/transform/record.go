package transform

import (
	"github.com/samber/lo"
)

// LayerValue is one layer's value within a segment.
type LayerValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SegmentRecord aggregates the rows of one segment.
type SegmentRecord struct {
	Segment string       `json:"segment"`
	Layers  []LayerValue `json:"layers"`
	Total   float64      `json:"total"`
}

// Value returns the value of a layer and whether the segment has it.
func (r SegmentRecord) Value(layer string) (float64, bool) {
	for _, lv := range r.Layers {
		if lv.Name == layer {
			return lv.Value, true
		}
	}
	return 0, false
}

// LayerNames returns the layer names in first-seen order.
func (r SegmentRecord) LayerNames() []string {
	return lo.Map(r.Layers, func(lv LayerValue, _ int) string { return lv.Name })
}

// LayerSum returns the sum of the stored layer values.
func (r SegmentRecord) LayerSum() float64 {
	return lo.SumBy(r.Layers, func(lv LayerValue) float64 { return lv.Value })
}

// Consistent reports whether Total equals the sum of the layer values. It
// is false when a layer name appeared more than once in the segment.
func (r SegmentRecord) Consistent() bool {
	return r.Total == r.LayerSum()
}

// set stores v for layer, overwriting in place when the layer exists.
func (r *SegmentRecord) set(layer string, v float64) {
	for i := range r.Layers {
		if r.Layers[i].Name == layer {
			r.Layers[i].Value = v
			return
		}
	}
	r.Layers = append(r.Layers, LayerValue{Name: layer, Value: v})
}

// LayerNames returns the chart's layer set: the first record's layer order.
// It returns nil when there are no records.
func LayerNames(records []SegmentRecord) []string {
	if len(records) == 0 {
		return nil
	}
	return records[0].LayerNames()
}

// AllLayerNames returns every layer name across records in first-seen order.
func AllLayerNames(records []SegmentRecord) []string {
	return lo.Uniq(lo.FlatMap(records, func(r SegmentRecord, _ int) []string { return r.LayerNames() }))
}

// MaxTotal returns the largest Total, or 0 for no records.
func MaxTotal(records []SegmentRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	return lo.MaxBy(records, func(a, b SegmentRecord) bool { return a.Total > b.Total }).Total
}
