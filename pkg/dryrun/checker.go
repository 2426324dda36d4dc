package dryrun

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Status is the verdict on one dry-run pair.
type Status int

const (
	StatusOK Status = iota
	StatusSkip
	StatusDiff
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusSkip:
		return "SKIP"
	case StatusDiff:
		return "DIFF"
	default:
		return "UNKNOWN"
	}
}

// Result is the verdict on one pair. Reason is set for StatusDiff.
type Result struct {
	Pair   Pair
	Status Status
	Reason string
}

// String renders the result line, e.g. "[DIFF] a -> b (content differs)".
func (r Result) String() string {
	line := fmt.Sprintf("[%s] %s%s%s", r.Status, r.Pair.From, Arrow, r.Pair.To)
	if r.Reason != "" {
		line += " (" + r.Reason + ")"
	}
	return line
}

// CheckOptions configures a Checker.
type CheckOptions struct {
	// Every checks one pair out of Every, starting with the first.
	Every int
	// Jobs bounds the number of pairs verified concurrently.
	Jobs int
	// Verbose also prints [OK] and [SKIP] lines.
	Verbose bool
}

// CheckStats summarizes a verification.
type CheckStats struct {
	Entries int
	Checked int
	OK      int
	Skipped int
	Diff    int
	Invalid int
}

// Checker re-verifies the pairs of a dry run.
type Checker struct {
	fs       types.FS
	verifier *compare.Verifier
	opts     CheckOptions
	out      io.Writer
	logger   zerolog.Logger
}

// NewChecker creates a Checker printing verdicts to out.
func NewChecker(fs types.FS, verifier *compare.Verifier, opts CheckOptions, out io.Writer, logger zerolog.Logger) *Checker {
	if opts.Every < 1 {
		opts.Every = 1
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Checker{fs: fs, verifier: verifier, opts: opts, out: out, logger: logger}
}

// Check reads dry-run output from r and verifies the selected pairs.
// Verdicts are printed in input order whatever the number of jobs.
func (c *Checker) Check(ctx context.Context, r io.Reader) (CheckStats, error) {
	var stats CheckStats

	pairs, invalid, err := ReadPairs(r, c.logger)
	stats.Invalid = invalid
	stats.Entries = len(pairs)
	if err != nil {
		return stats, err
	}

	results := make([]Result, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Jobs)

	for i, pair := range pairs {
		if i%c.opts.Every != 0 {
			results[i] = Result{Pair: pair, Status: StatusSkip}
			continue
		}
		i, pair := i, pair
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.CheckPair(pair)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	for _, res := range results {
		switch res.Status {
		case StatusSkip:
			stats.Skipped++
		case StatusOK:
			stats.Checked++
			stats.OK++
		case StatusDiff:
			stats.Checked++
			stats.Diff++
		}
		if res.Status == StatusDiff || c.opts.Verbose {
			if _, err := fmt.Fprintln(c.out, res.String()); err != nil {
				return stats, err
			}
		}
	}

	c.logger.Info().
		Int("entries", stats.Entries).
		Int("checked", stats.Checked).
		Int("diff", stats.Diff).
		Msg("Dry-run verification finished")
	return stats, nil
}

// CheckPair verifies a single pair.
func (c *Checker) CheckPair(pair Pair) Result {
	res := Result{Pair: pair, Status: StatusDiff}

	fromInfo, err := c.fs.Stat(pair.From)
	if err != nil {
		res.Reason = "missing source"
		return res
	}
	toInfo, err := c.fs.Stat(pair.To)
	if err != nil {
		res.Reason = "missing target"
		return res
	}
	if fromInfo.Size() != toInfo.Size() {
		res.Reason = fmt.Sprintf("size differs (%d vs %d)", fromInfo.Size(), toInfo.Size())
		return res
	}

	size := fromInfo.Size()
	if !c.verifier.Equivalent(pair.From, pair.To, size) {
		res.Reason = "content differs"
		if c.verifier.Options().Regions(size) != nil {
			res.Reason = "content differs (sampled)"
		}
		return res
	}

	res.Status = StatusOK
	return res
}
