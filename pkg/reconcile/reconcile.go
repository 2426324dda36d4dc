// Package reconcile merges records from ranked roots into one index that
// holds a single keeper per digest.
//
// Records must be observed in root order, then manifest order. The keeper of
// a digest is the existing file with the smallest priority seen so far; every
// later record of the same digest is classified against it.
package reconcile

import (
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
)

// StepKind classifies one observed record.
type StepKind int

const (
	// Kept: first existing record of a digest, now its keeper.
	Kept StepKind = iota
	// Missing: the record's file does not exist.
	Missing
	// Repromoted: the keeper's file vanished and this record replaced it,
	// whatever its priority.
	Repromoted
	// Promoted: the record has a smaller priority and replaced the keeper.
	Promoted
	// SameTier: same priority as the keeper at a different path.
	SameTier
	// LiteralDuplicate: the same path listed twice in one root.
	LiteralDuplicate
	// Candidate: a lower-priority copy of the keeper, eligible for deletion.
	Candidate
)

var kindNames = map[StepKind]string{
	Kept:             "kept",
	Missing:          "missing",
	Repromoted:       "repromoted",
	Promoted:         "promoted",
	SameTier:         "same-tier",
	LiteralDuplicate: "literal-duplicate",
	Candidate:        "candidate",
}

func (k StepKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Step is the result of observing one record. Keeper is the keeper the record
// was compared with; for Kept, Repromoted and Promoted it is the record itself.
type Step struct {
	Kind   StepKind
	Record types.ContentRecord
	Keeper types.ContentRecord
}

// Reconciler owns the digest -> keeper index for one run.
type Reconciler struct {
	fs      types.FS
	keepers map[string]types.ContentRecord
	logger  zerolog.Logger
}

// New creates an empty Reconciler.
func New(fs types.FS, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		fs:      fs,
		keepers: make(map[string]types.ContentRecord),
		logger:  logger,
	}
}

// Observe classifies rec and updates the index.
func (r *Reconciler) Observe(rec types.ContentRecord) Step {
	keeper, ok := r.keepers[rec.Digest]
	if !ok {
		if !r.exists(rec.Path) {
			return Step{Kind: Missing, Record: rec}
		}
		r.keepers[rec.Digest] = rec
		return Step{Kind: Kept, Record: rec, Keeper: rec}
	}

	if !r.exists(keeper.Path) {
		if !r.exists(rec.Path) {
			return Step{Kind: Missing, Record: rec, Keeper: keeper}
		}
		r.logger.Warn().
			Str("digest", rec.Digest).
			Str("vanished", keeper.Path).
			Int("vanishedPriority", keeper.Priority).
			Str("keeper", rec.Path).
			Int("priority", rec.Priority).
			Msg("Keeper vanished, promoting record in its place")
		r.keepers[rec.Digest] = rec
		return Step{Kind: Repromoted, Record: rec, Keeper: rec}
	}

	if !r.exists(rec.Path) {
		return Step{Kind: Missing, Record: rec, Keeper: keeper}
	}

	switch {
	case rec.Priority == keeper.Priority:
		if rec.Path == keeper.Path {
			return Step{Kind: LiteralDuplicate, Record: rec, Keeper: keeper}
		}
		return Step{Kind: SameTier, Record: rec, Keeper: keeper}

	case rec.Priority < keeper.Priority:
		r.logger.Debug().
			Str("digest", rec.Digest).
			Str("previous", keeper.Path).
			Str("keeper", rec.Path).
			Msg("Higher priority record takes over as keeper")
		r.keepers[rec.Digest] = rec
		return Step{Kind: Promoted, Record: rec, Keeper: rec}

	case rec.Priority == 0:
		// Root 0 is never a deletion candidate.
		return Step{Kind: SameTier, Record: rec, Keeper: keeper}
	}

	return Step{Kind: Candidate, Record: rec, Keeper: keeper}
}

// Keeper returns the current keeper of digest.
func (r *Reconciler) Keeper(digest string) (types.ContentRecord, bool) {
	rec, ok := r.keepers[digest]
	return rec, ok
}

// Len returns the number of distinct digests with a keeper.
func (r *Reconciler) Len() int {
	return len(r.keepers)
}

func (r *Reconciler) exists(path string) bool {
	_, err := r.fs.Stat(path)
	return err == nil
}
