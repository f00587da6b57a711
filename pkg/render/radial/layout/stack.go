package layout

import (
	"github.com/matzehuels/radialstack/pkg/transform"
)

// Band is the cumulative value interval one layer occupies in a segment.
type Band struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns Upper - Lower.
func (b Band) Width() float64 { return b.Upper - b.Lower }

// StackedBand holds one layer's bands, one per segment.
type StackedBand struct {
	Layer string `json:"layer"`
	Bands []Band `json:"bands"`
}

// Stack computes per-segment prefix sums over layers. A layer missing from
// a segment contributes zero, giving a band of zero width.
func Stack(records []transform.SegmentRecord, layers []string) []StackedBand {
	out := make([]StackedBand, len(layers))
	for l, name := range layers {
		out[l] = StackedBand{Layer: name, Bands: make([]Band, len(records))}
	}
	for i, rec := range records {
		var acc float64
		for l, name := range layers {
			v, _ := rec.Value(name)
			out[l].Bands[i] = Band{Lower: acc, Upper: acc + v}
			acc += v
		}
	}
	return out
}
