package types

// RunMode selects what happens when a candidate passes every gate.
type RunMode int

const (
	// ModeDelete unlinks verified duplicates.
	ModeDelete RunMode = iota
	// ModeDryRun prints "[DRY RUN] from -> to" and never mutates the filesystem.
	ModeDryRun
	// ModePrintOnly prints the path that would be deleted, one per line.
	ModePrintOnly
)

// String returns the mode name.
func (m RunMode) String() string {
	switch m {
	case ModeDryRun:
		return "dry-run"
	case ModePrintOnly:
		return "print-only"
	default:
		return "delete"
	}
}

// Mutates reports whether the mode removes files.
func (m RunMode) Mutates() bool {
	return m == ModeDelete
}

// RunStats holds the aggregate counters of a single run.
type RunStats struct {
	Mode RunMode

	Examined   int
	Duplicates int
	Deleted    int

	SkippedSamePriority    int
	SkippedTooSmall        int
	SkippedZero            int
	SkippedSizeMismatch    int
	SkippedContentMismatch int

	Missing   int
	Failed    int
	Malformed int
	Unsafe    int
}

// Record updates the counters for one planned candidate.
func (s *RunStats) Record(d Decision) {
	if d.Outcome == OutcomeKept {
		return
	}
	s.Duplicates++
	switch d.Outcome {
	case OutcomeSkippedSamePriority:
		s.SkippedSamePriority++
	case OutcomeSkippedTooSmall:
		s.SkippedTooSmall++
	case OutcomeSkippedZeroContent:
		s.SkippedZero++
	case OutcomeSkippedSizeMismatch:
		s.SkippedSizeMismatch++
	case OutcomeSkippedContentMismatch:
		s.SkippedContentMismatch++
	case OutcomeSkippedMissing:
		s.Missing++
	case OutcomeDeleted:
		s.Deleted++
	case OutcomeFailed:
		s.Failed++
	}
}

// Skipped returns the number of candidates that were left in place by a gate.
func (s *RunStats) Skipped() int {
	return s.SkippedSamePriority + s.SkippedTooSmall + s.SkippedZero +
		s.SkippedSizeMismatch + s.SkippedContentMismatch
}
