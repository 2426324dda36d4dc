package compare

import "github.com/arthur-debert/dedupe/pkg/config"

// Size thresholds and region sizes used when no configuration overrides them.
const (
	SmallFileThreshold int64 = 512 * 1024
	ChunkBytes         int64 = 256 * 1024
	HeadBytes          int64 = 256 * 1024
	MiddleBytes        int64 = 128 * 1024
	TailBytes          int64 = 128 * 1024
	SampleBlockBytes   int64 = 32 * 1024
	SampleSpots              = 10
	ZeroChunkBytes     int64 = 8 * 1024 * 1024

	// zeroProbeBytes is read first so non-zero files are rejected cheaply.
	zeroProbeBytes int64 = 8
)

// Options selects the strategy and the region sizes.
type Options struct {
	Strategy string

	SmallFileThreshold int64
	ChunkBytes         int64

	HeadBytes   int64
	MiddleBytes int64
	TailBytes   int64

	BlockBytes int64
	Spots      int

	ZeroChunkBytes int64
}

// DefaultOptions returns the tiered strategy with the default sizes.
func DefaultOptions() Options {
	return Options{
		Strategy:           config.StrategyTiered,
		SmallFileThreshold: SmallFileThreshold,
		ChunkBytes:         ChunkBytes,
		HeadBytes:          HeadBytes,
		MiddleBytes:        MiddleBytes,
		TailBytes:          TailBytes,
		BlockBytes:         SampleBlockBytes,
		Spots:              SampleSpots,
		ZeroChunkBytes:     ZeroChunkBytes,
	}
}

// OptionsFromConfig maps the [compare] configuration section.
func OptionsFromConfig(c config.Compare) Options {
	return Options{
		Strategy:           c.Strategy,
		SmallFileThreshold: c.SmallFileThreshold,
		ChunkBytes:         c.ChunkBytes,
		HeadBytes:          c.Tiered.HeadBytes,
		MiddleBytes:        c.Tiered.MiddleBytes,
		TailBytes:          c.Tiered.TailBytes,
		BlockBytes:         c.Spot.BlockBytes,
		Spots:              c.Spot.Spots,
		ZeroChunkBytes:     c.ZeroChunkBytes,
	}
}

// WithStrategy returns a copy of o using strategy s.
func (o Options) WithStrategy(s string) Options {
	o.Strategy = s
	return o
}

// withDefaults fills unset fields so a zero Options is usable.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Strategy == "" {
		o.Strategy = d.Strategy
	}
	if o.SmallFileThreshold <= 0 {
		o.SmallFileThreshold = d.SmallFileThreshold
	}
	if o.ChunkBytes <= 0 {
		o.ChunkBytes = d.ChunkBytes
	}
	if o.HeadBytes <= 0 {
		o.HeadBytes = d.HeadBytes
	}
	if o.MiddleBytes <= 0 {
		o.MiddleBytes = d.MiddleBytes
	}
	if o.TailBytes <= 0 {
		o.TailBytes = d.TailBytes
	}
	if o.BlockBytes <= 0 {
		o.BlockBytes = d.BlockBytes
	}
	if o.Spots < 0 {
		o.Spots = 0
	}
	if o.ZeroChunkBytes <= 0 {
		o.ZeroChunkBytes = d.ZeroChunkBytes
	}
	return o
}
