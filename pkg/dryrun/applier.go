package dryrun

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
)

// ApplyOptions configures an Applier.
type ApplyOptions struct {
	// DryRun prints what would be deleted without deleting.
	DryRun bool
	// SkipVerify deletes without re-comparing the pair first.
	SkipVerify bool
}

// ApplyStats summarizes an apply. Deleted counts simulated deletions too.
type ApplyStats struct {
	Entries  int
	Deleted  int
	Missing  int
	NotFile  int
	Mismatch int
	Errors   int
	Invalid  int
}

// Failures returns the number of entries that could not be applied.
func (s ApplyStats) Failures() int {
	return s.Missing + s.NotFile + s.Errors
}

// Applier deletes the "from" side of dry-run pairs.
type Applier struct {
	fs       types.FS
	verifier *compare.Verifier
	opts     ApplyOptions
	out      io.Writer
	logger   zerolog.Logger
}

// NewApplier creates an Applier printing one line per deletion to out.
func NewApplier(fs types.FS, verifier *compare.Verifier, opts ApplyOptions, out io.Writer, logger zerolog.Logger) *Applier {
	return &Applier{fs: fs, verifier: verifier, opts: opts, out: out, logger: logger}
}

// Apply reads dry-run output from r and deletes each planned file in order.
// It stops between entries when ctx is cancelled; completed deletions stay.
func (a *Applier) Apply(ctx context.Context, r io.Reader) (ApplyStats, error) {
	var stats ApplyStats

	pairs, invalid, err := ReadPairs(r, a.logger)
	stats.Invalid = invalid
	stats.Entries = len(pairs)
	if err != nil {
		return stats, err
	}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := a.applyPair(pair, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (a *Applier) applyPair(pair Pair, stats *ApplyStats) error {
	logger := a.logger.With().Str("path", pair.From).Int("line", pair.Line).Logger()

	info, err := a.fs.Lstat(pair.From)
	if err != nil {
		stats.Missing++
		logger.Warn().Msg("Source missing, nothing to delete")
		return nil
	}
	if !info.Mode().IsRegular() {
		stats.NotFile++
		logger.Warn().Str("mode", info.Mode().String()).Msg("Source is not a regular file, refusing to delete")
		return nil
	}

	if !a.opts.SkipVerify {
		if reason := a.verify(pair, info); reason != "" {
			stats.Mismatch++
			logger.Warn().Str("keeper", pair.To).Str("reason", reason).Msg("Verification failed, not deleting")
			return nil
		}
	}

	if a.opts.DryRun {
		stats.Deleted++
		_, err := fmt.Fprintf(a.out, "%s Delete: %s\n", Prefix, pair.From)
		return err
	}

	if err := a.fs.Remove(pair.From); err != nil {
		stats.Errors++
		logger.Error().Err(err).Msg("Delete failed")
		return nil
	}
	stats.Deleted++
	logger.Info().Str("keeper", pair.To).Msg("Deleted")
	_, err = fmt.Fprintf(a.out, "[DELETED] %s\n", pair.From)
	return err
}

func (a *Applier) verify(pair Pair, info os.FileInfo) string {
	keeper, err := a.fs.Stat(pair.To)
	if err != nil {
		return "missing target"
	}
	if os.SameFile(info, keeper) {
		return "source and target are the same file"
	}
	if info.Size() != keeper.Size() {
		return fmt.Sprintf("size differs (%d vs %d)", info.Size(), keeper.Size())
	}
	if !a.verifier.Equivalent(pair.From, pair.To, info.Size()) {
		return "content differs"
	}
	return ""
}
