package dedupe

import (
	"context"

	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/logging"
	"github.com/arthur-debert/dedupe/pkg/manifest"
	"github.com/arthur-debert/dedupe/pkg/planner"
	"github.com/arthur-debert/dedupe/pkg/reconcile"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a run.
type Options struct {
	Roots        []Root
	ManifestName string
	Planner      planner.Options
	Compare      compare.Options
}

// Engine wires manifests, reconciler and planner together for one run.
type Engine struct {
	fs       types.FS
	opts     Options
	reporter planner.Reporter
	logger   zerolog.Logger
}

// New creates an Engine. Roots must come from ValidateRoots.
func New(fs types.FS, opts Options, reporter planner.Reporter, logger zerolog.Logger) *Engine {
	if opts.ManifestName == "" {
		opts.ManifestName = manifest.DefaultFileName
	}
	return &Engine{fs: fs, opts: opts, reporter: reporter, logger: logger}
}

// Run processes every root in order. When ctx is cancelled it stops before
// the next record and returns the counters so far with ctx.Err(). Deletions
// already made are not undone.
func (e *Engine) Run(ctx context.Context) (*types.RunStats, error) {
	done := logging.LogOperationStart(e.logger, "dedupe.Run")
	defer done()

	stats := &types.RunStats{Mode: e.opts.Planner.Mode}
	verifier := compare.New(e.fs, e.opts.Compare, e.logger.With().Str("component", "compare").Logger())
	rec := reconcile.New(e.fs, e.logger.With().Str("component", "reconcile").Logger())
	plan := planner.New(e.fs, verifier, e.opts.Planner, e.reporter, e.logger.With().Str("component", "planner").Logger())

	e.logger.Info().
		Int("roots", len(e.opts.Roots)).
		Str("mode", stats.Mode.String()).
		Str("strategy", verifier.Options().Strategy).
		Int64("minBytes", e.opts.Planner.MinBytes).
		Bool("ignoreZero", e.opts.Planner.IgnoreZero).
		Msg("Starting deduplication")

	for _, root := range e.opts.Roots {
		if err := e.processRoot(ctx, root, rec, plan, stats); err != nil {
			return stats, err
		}
	}

	e.logger.Info().
		Int("examined", stats.Examined).
		Int("digests", rec.Len()).
		Int("deleted", stats.Deleted).
		Int("skipped", stats.Skipped()).
		Int("failed", stats.Failed).
		Msg("Deduplication finished")
	return stats, nil
}

func (e *Engine) processRoot(ctx context.Context, root Root, rec *reconcile.Reconciler, plan *planner.Planner, stats *types.RunStats) error {
	logger := e.logger.With().Str("root", root.Path).Int("priority", root.Priority).Logger()

	scanner, err := manifest.Open(e.fs, root.Path, root.Priority, e.opts.ManifestName, e.logger.With().Str("component", "manifest").Logger())
	if err != nil {
		logger.Error().Err(err).Msg("Cannot read manifest, skipping root")
		return nil
	}
	defer func() { _ = scanner.Close() }()

	logger.Debug().Str("manifest", scanner.Path()).Msg("Processing root")

	for scanner.Next() {
		if err := ctx.Err(); err != nil {
			logger.Warn().Msg("Run cancelled")
			e.addScanStats(scanner, stats)
			return err
		}
		stats.Examined++
		e.observe(rec, plan, scanner.Record(), stats)
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("Manifest read failed, continuing with next root")
	}
	e.addScanStats(scanner, stats)
	return nil
}

func (e *Engine) observe(rec *reconcile.Reconciler, plan *planner.Planner, record types.ContentRecord, stats *types.RunStats) {
	step := rec.Observe(record)

	switch step.Kind {
	case reconcile.Missing:
		stats.Missing++
		e.logger.Debug().Str("path", record.Path).Str("origin", record.Origin()).Msg("Listed file missing")

	case reconcile.SameTier:
		stats.Record(types.Decision{
			Candidate: record,
			Keeper:    step.Keeper,
			Outcome:   types.OutcomeSkippedSamePriority,
		})
		e.logger.Info().
			Str("path", record.Path).
			Str("keeper", step.Keeper.Path).
			Int("priority", record.Priority).
			Msg("Same-priority duplicate left in place")

	case reconcile.Candidate:
		d := plan.Plan(step.Record, step.Keeper)
		stats.Record(d)
		e.logger.Trace().
			Str("path", record.Path).
			Str("outcome", d.Outcome.String()).
			Msg("Candidate planned")

	case reconcile.LiteralDuplicate:
		e.logger.Trace().Str("origin", record.Origin()).Msg("Path listed twice")

	default:
		e.logger.Trace().Str("path", record.Path).Str("step", step.Kind.String()).Msg("Keeper updated")
	}
}

func (e *Engine) addScanStats(scanner *manifest.Scanner, stats *types.RunStats) {
	s := scanner.Stats()
	stats.Malformed += s.Malformed
	stats.Unsafe += s.Unsafe
}
