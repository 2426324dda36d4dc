package types_test

import (
	"testing"

	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestRunStats_Record(t *testing.T) {
	var stats types.RunStats

	outcomes := []types.Outcome{
		types.OutcomeKept,
		types.OutcomeSkippedSamePriority,
		types.OutcomeSkippedTooSmall,
		types.OutcomeSkippedZeroContent,
		types.OutcomeSkippedSizeMismatch,
		types.OutcomeSkippedContentMismatch,
		types.OutcomeSkippedMissing,
		types.OutcomeDeleted,
		types.OutcomeDeleted,
		types.OutcomeFailed,
	}
	for _, o := range outcomes {
		stats.Record(types.Decision{Outcome: o})
	}

	// Kept is not a duplicate pair and leaves every counter alone
	assert.Equal(t, 9, stats.Duplicates)
	assert.Equal(t, 2, stats.Deleted)
	assert.Equal(t, 1, stats.SkippedSamePriority)
	assert.Equal(t, 1, stats.SkippedTooSmall)
	assert.Equal(t, 1, stats.SkippedZero)
	assert.Equal(t, 1, stats.SkippedSizeMismatch)
	assert.Equal(t, 1, stats.SkippedContentMismatch)
	assert.Equal(t, 1, stats.Missing)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 5, stats.Skipped())
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome types.Outcome
		want    string
	}{
		{types.OutcomeKept, "kept"},
		{types.OutcomeSkippedSamePriority, "skipped-same-priority"},
		{types.OutcomeSkippedContentMismatch, "skipped-content-mismatch"},
		{types.OutcomeDeleted, "deleted"},
		{types.OutcomeFailed, "failed"},
		{types.Outcome(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.String())
		})
	}
}

func TestRunMode(t *testing.T) {
	assert.True(t, types.ModeDelete.Mutates())
	assert.False(t, types.ModeDryRun.Mutates())
	assert.False(t, types.ModePrintOnly.Mutates())
	assert.Equal(t, "dry-run", types.ModeDryRun.String())
	assert.Equal(t, "print-only", types.ModePrintOnly.String())
	assert.Equal(t, "delete", types.ModeDelete.String())
}

func TestContentRecord_Origin(t *testing.T) {
	rec := types.ContentRecord{Manifest: "/a/hashes.txt", Line: 12}
	assert.Equal(t, "/a/hashes.txt:12", rec.Origin())
}
