// Package transform reshapes role-tagged rows into per-segment records.
//
// Each [SegmentRecord] holds one segment key, its layers in first-seen
// order, and the running total of every row that named the segment:
//
//	Jan, AZ, 6           SegmentRecord{Segment: "Jan",
//	Jan, NY, 96      =>      Layers: [{AZ 6} {NY 96}],
//	                         Total:  102}
//
// Records come out in first-seen segment order. A layer name repeated
// within one segment overwrites the earlier value in place while the total
// keeps accumulating both rows, so Total can exceed [SegmentRecord.LayerSum];
// [SegmentRecord.Consistent] reports the condition.
//
// The layer set of a chart is the layer order of the first record
// ([LayerNames]). A layer that is absent from the first segment is not part
// of the chart; [AllLayerNames] returns the full union for diagnostics.
package transform
