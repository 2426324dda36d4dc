// Package planner decides, for each deletion candidate, whether it is safe to
// remove and carries out the decision.
//
// A candidate is deleted only after every gate passed: both files exist,
// the candidate is a regular file distinct from the keeper, it is at least
// MinBytes long, it is not all zero (when IgnoreZero is set), sizes match
// and the verifier confirms the content.
package planner

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
)

// Reporter receives the primary output line for every deletion.
type Reporter interface {
	Deleted(from, to string) error
}

// Verifier compares candidate and keeper content.
type Verifier interface {
	Equivalent(a, b string, size int64) bool
	AllZero(path string, size int64) bool
}

// Options are the policy gates of a run.
type Options struct {
	Mode       types.RunMode
	MinBytes   int64
	IgnoreZero bool
}

// Planner turns candidate/keeper pairs into decisions.
type Planner struct {
	fs       types.FS
	verifier Verifier
	opts     Options
	reporter Reporter
	logger   zerolog.Logger
}

// New creates a Planner.
func New(fs types.FS, verifier Verifier, opts Options, reporter Reporter, logger zerolog.Logger) *Planner {
	return &Planner{
		fs:       fs,
		verifier: verifier,
		opts:     opts,
		reporter: reporter,
		logger:   logger,
	}
}

// Plan runs the gates for candidate against keeper and, when they all pass,
// deletes the candidate (or simulates it, depending on Mode).
func (p *Planner) Plan(candidate, keeper types.ContentRecord) types.Decision {
	d := types.Decision{Candidate: candidate, Keeper: keeper}
	logger := p.logger.With().
		Str("candidate", candidate.Path).
		Str("keeper", keeper.Path).
		Str("digest", candidate.Digest).
		Logger()

	if candidate.Path == keeper.Path {
		d.Outcome = types.OutcomeKept
		return d
	}

	candInfo, candErr := p.fs.Stat(candidate.Path)
	if os.IsNotExist(candErr) {
		d.Outcome = types.OutcomeSkippedMissing
		logger.Debug().Msg("Candidate missing")
		return d
	}

	keeperInfo, err := p.fs.Stat(keeper.Path)
	if err != nil {
		d.Outcome = types.OutcomeFailed
		d.Reason = "keeper missing"
		logger.Error().Err(err).Msg("Keeper missing, refusing to delete candidate")
		return d
	}

	if candErr != nil {
		d.Outcome = types.OutcomeFailed
		d.Reason = fmt.Sprintf("stat failed: %v", candErr)
		logger.Warn().Err(candErr).Msg("Cannot stat candidate")
		return d
	}

	if os.SameFile(candInfo, keeperInfo) {
		d.Outcome = types.OutcomeKept
		logger.Warn().Msg("Candidate and keeper are the same file, keeping")
		return d
	}
	if !candInfo.Mode().IsRegular() {
		d.Outcome = types.OutcomeFailed
		d.Reason = "not a regular file"
		logger.Warn().Str("mode", candInfo.Mode().String()).Msg("Candidate is not a regular file")
		return d
	}

	size := candInfo.Size()
	d.Size = size

	if size < p.opts.MinBytes {
		d.Outcome = types.OutcomeSkippedTooSmall
		d.Reason = fmt.Sprintf("%d < %d bytes", size, p.opts.MinBytes)
		logger.Debug().Int64("size", size).Msg("Below minimum size")
		return d
	}

	if p.opts.IgnoreZero && p.verifier.AllZero(candidate.Path, size) {
		d.Outcome = types.OutcomeSkippedZeroContent
		logger.Debug().Int64("size", size).Msg("All-zero content ignored")
		return d
	}

	// The keeper may have changed since the reconciler saw it.
	keeperInfo, err = p.fs.Stat(keeper.Path)
	if err != nil || keeperInfo.Size() != size {
		d.Outcome = types.OutcomeSkippedSizeMismatch
		if err != nil {
			d.Reason = fmt.Sprintf("keeper stat failed: %v", err)
		} else {
			d.Reason = fmt.Sprintf("%d vs %d bytes", size, keeperInfo.Size())
		}
		logger.Warn().Str("reason", d.Reason).Msg("Size mismatch for equal digest")
		return d
	}

	if !p.verifier.Equivalent(candidate.Path, keeper.Path, size) {
		d.Outcome = types.OutcomeSkippedContentMismatch
		logger.Warn().Int64("size", size).Msg("Content differs despite equal digest")
		return d
	}

	if p.opts.Mode.Mutates() {
		if err := p.fs.Remove(candidate.Path); err != nil {
			d.Outcome = types.OutcomeFailed
			d.Reason = fmt.Sprintf("delete failed: %v", err)
			logger.Error().Err(err).Msg("Delete failed")
			return d
		}
		logger.Info().Int64("size", size).Msg("Deleted duplicate")
	} else {
		logger.Debug().Int64("size", size).Str("mode", p.opts.Mode.String()).Msg("Would delete duplicate")
	}

	d.Outcome = types.OutcomeDeleted
	if err := p.reporter.Deleted(candidate.Path, keeper.Path); err != nil {
		logger.Error().Err(err).Msg("Failed to write output line")
	}
	return d
}
