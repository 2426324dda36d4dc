package compare

import (
	"math"
	"sort"

	"github.com/arthur-debert/dedupe/pkg/config"
)

// Region is a byte range [Offset, Offset+Length) of a file.
type Region struct {
	Offset int64
	Length int64
}

// Regions returns the ranges compared for a file of the given size under the
// configured strategy. It returns nil when the whole file is streamed instead.
func (o Options) Regions(size int64) []Region {
	o = o.withDefaults()
	if size <= o.SmallFileThreshold {
		return nil
	}
	switch o.Strategy {
	case config.StrategySpot:
		return SpotRegions(size, o.BlockBytes, o.Spots)
	case config.StrategyTiered:
		return TieredRegions(size, o.HeadBytes, o.MiddleBytes, o.TailBytes)
	}
	return nil
}

// TieredRegions returns the head, middle and tail ranges of a file.
// The middle range starts at size/2 - middle/2, clamped to the file.
func TieredRegions(size, head, middle, tail int64) []Region {
	return []Region{
		{Offset: 0, Length: min(head, size)},
		{Offset: clamp(size/2-middle/2, 0, max(size-middle, 0)), Length: min(middle, size)},
		{Offset: max(size-tail, 0), Length: min(tail, size)},
	}
}

// SpotRegions returns block-sized ranges at the start, the middle, the end and
// at spots evenly spaced interior offsets. Offsets are unique and ascending.
func SpotRegions(size, block int64, spots int) []Region {
	maxOff := max(size-block, 0)

	offsets := []int64{0, size/2 - block/2}
	for i := 1; i <= spots; i++ {
		off := math.Round(float64(i) * float64(maxOff) / float64(spots+1))
		offsets = append(offsets, int64(off))
	}
	offsets = append(offsets, maxOff)

	seen := make(map[int64]bool, len(offsets))
	regions := make([]Region, 0, len(offsets))
	for _, off := range offsets {
		off = clamp(off, 0, maxOff)
		if seen[off] {
			continue
		}
		seen[off] = true
		regions = append(regions, Region{Offset: off, Length: min(block, size-off)})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Offset < regions[j].Offset })
	return regions
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
