package types

// Outcome is the result of planning a single deletion candidate.
type Outcome int

const (
	OutcomeKept Outcome = iota
	OutcomeSkippedSamePriority
	OutcomeSkippedTooSmall
	OutcomeSkippedZeroContent
	OutcomeSkippedSizeMismatch
	OutcomeSkippedContentMismatch
	OutcomeSkippedMissing
	OutcomeDeleted
	OutcomeFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeKept:                   "kept",
	OutcomeSkippedSamePriority:    "skipped-same-priority",
	OutcomeSkippedTooSmall:        "skipped-too-small",
	OutcomeSkippedZeroContent:     "skipped-zero-content",
	OutcomeSkippedSizeMismatch:    "skipped-size-mismatch",
	OutcomeSkippedContentMismatch: "skipped-content-mismatch",
	OutcomeSkippedMissing:         "skipped-missing",
	OutcomeDeleted:                "deleted",
	OutcomeFailed:                 "failed",
}

// String returns the stable kebab-case name used in logs.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// Decision pairs a deletion candidate with its keeper and the outcome
// reached for it. Reason is set for failures and carries context for skips.
type Decision struct {
	Candidate ContentRecord
	Keeper    ContentRecord
	Outcome   Outcome
	Reason    string
	Size      int64
}
