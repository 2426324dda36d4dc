package config

import (
	"github.com/arthur-debert/dedupe/pkg/errors"
)

// Comparison strategies.
const (
	StrategyTiered = "tiered"
	StrategySpot   = "spot"
	StrategyFull   = "full"
	StrategyNaive  = "naive"
)

// Config is the effective dedupe configuration.
type Config struct {
	Manifest Manifest `koanf:"manifest" toml:"manifest" yaml:"manifest"`
	Delete   Delete   `koanf:"delete" toml:"delete" yaml:"delete"`
	Compare  Compare  `koanf:"compare" toml:"compare" yaml:"compare"`
	Verify   Verify   `koanf:"verify" toml:"verify" yaml:"verify"`

	// Sources lists the configuration layers that were applied, in order.
	Sources []string `koanf:"-" toml:"-" yaml:"-"`
}

// Manifest describes where manifests are found inside each root.
type Manifest struct {
	FileName string `koanf:"file_name" toml:"file_name" yaml:"file_name"`
}

// Delete holds the policy gates applied to deletion candidates.
type Delete struct {
	MinBytes   int64 `koanf:"min_bytes" toml:"min_bytes" yaml:"min_bytes"`
	IgnoreZero bool  `koanf:"ignore_zero" toml:"ignore_zero" yaml:"ignore_zero"`
}

// Compare configures the equivalence verifier.
type Compare struct {
	Strategy           string `koanf:"strategy" toml:"strategy" yaml:"strategy"`
	SmallFileThreshold int64  `koanf:"small_file_threshold" toml:"small_file_threshold" yaml:"small_file_threshold"`
	ChunkBytes         int64  `koanf:"chunk_bytes" toml:"chunk_bytes" yaml:"chunk_bytes"`
	ZeroChunkBytes     int64  `koanf:"zero_chunk_bytes" toml:"zero_chunk_bytes" yaml:"zero_chunk_bytes"`
	Tiered             Tiered `koanf:"tiered" toml:"tiered" yaml:"tiered"`
	Spot               Spot   `koanf:"spot" toml:"spot" yaml:"spot"`
}

// Tiered sizes the three fixed regions compared on large files.
type Tiered struct {
	HeadBytes   int64 `koanf:"head_bytes" toml:"head_bytes" yaml:"head_bytes"`
	MiddleBytes int64 `koanf:"middle_bytes" toml:"middle_bytes" yaml:"middle_bytes"`
	TailBytes   int64 `koanf:"tail_bytes" toml:"tail_bytes" yaml:"tail_bytes"`
}

// Spot configures the evenly spaced block sampler.
type Spot struct {
	BlockBytes int64 `koanf:"block_bytes" toml:"block_bytes" yaml:"block_bytes"`
	Spots      int   `koanf:"spots" toml:"spots" yaml:"spots"`
}

// Verify configures re-verification of dry-run output.
type Verify struct {
	Strategy string `koanf:"strategy" toml:"strategy" yaml:"strategy"`
	Every    int    `koanf:"every" toml:"every" yaml:"every"`
	Jobs     int    `koanf:"jobs" toml:"jobs" yaml:"jobs"`
}

// ValidStrategy reports whether s names a known comparison strategy.
func ValidStrategy(s string) bool {
	switch s {
	case StrategyTiered, StrategySpot, StrategyFull, StrategyNaive:
		return true
	}
	return false
}

// Validate checks the invariants every command relies on.
func (c *Config) Validate() error {
	if c.Manifest.FileName == "" {
		return errors.New(errors.ErrConfigInvalid, "manifest.file_name cannot be empty")
	}
	if c.Delete.MinBytes < 0 {
		return errors.Newf(errors.ErrConfigInvalid,
			"minimum delete bytes must be zero or greater, got %d", c.Delete.MinBytes).
			WithDetail("key", "delete.min_bytes")
	}
	if !ValidStrategy(c.Compare.Strategy) {
		return errors.Newf(errors.ErrConfigInvalid, "unknown compare strategy %q", c.Compare.Strategy).
			WithDetail("key", "compare.strategy")
	}
	if !ValidStrategy(c.Verify.Strategy) {
		return errors.Newf(errors.ErrConfigInvalid, "unknown verify strategy %q", c.Verify.Strategy).
			WithDetail("key", "verify.strategy")
	}

	positive := []struct {
		key   string
		value int64
	}{
		{"compare.small_file_threshold", c.Compare.SmallFileThreshold},
		{"compare.chunk_bytes", c.Compare.ChunkBytes},
		{"compare.zero_chunk_bytes", c.Compare.ZeroChunkBytes},
		{"compare.tiered.head_bytes", c.Compare.Tiered.HeadBytes},
		{"compare.tiered.middle_bytes", c.Compare.Tiered.MiddleBytes},
		{"compare.tiered.tail_bytes", c.Compare.Tiered.TailBytes},
		{"compare.spot.block_bytes", c.Compare.Spot.BlockBytes},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.Newf(errors.ErrConfigInvalid, "%s must be greater than zero, got %d", p.key, p.value).
				WithDetail("key", p.key)
		}
	}

	if c.Compare.Spot.Spots < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "compare.spot.spots must be zero or greater, got %d", c.Compare.Spot.Spots)
	}
	if c.Verify.Every < 1 {
		return errors.Newf(errors.ErrConfigInvalid, "verify.every must be >= 1, got %d", c.Verify.Every)
	}
	if c.Verify.Jobs < 1 {
		return errors.Newf(errors.ErrConfigInvalid, "verify.jobs must be >= 1, got %d", c.Verify.Jobs)
	}
	return nil
}
