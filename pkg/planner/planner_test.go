package planner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/filesystem"
	"github.com/arthur-debert/dedupe/pkg/output"
	"github.com/arthur-debert/dedupe/pkg/testutil"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	candPath   = "/B/x.bin"
	keeperPath = "/A/x.bin"
)

func candidate() types.ContentRecord {
	return types.ContentRecord{Digest: "deadbeef", Path: candPath, Priority: 1}
}

func keeper() types.ContentRecord {
	return types.ContentRecord{Digest: "deadbeef", Path: keeperPath, Priority: 0}
}

func TestPlanner_Plan(t *testing.T) {
	content := testutil.Pattern(2000, 1)

	tests := []struct {
		name        string
		setup       func(t *testing.T, mem afero.Fs)
		opts        Options
		cand        types.ContentRecord
		wantOutcome types.Outcome
		wantReason  string
		wantOutput  string
		wantGone    bool
	}{
		{
			name: "verified duplicate is deleted",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content)
				testutil.WriteMemFile(t, mem, candPath, content)
			},
			opts:        Options{Mode: types.ModeDelete, MinBytes: 1024},
			wantOutcome: types.OutcomeDeleted,
			wantOutput:  "/B/x.bin -> /A/x.bin\n",
			wantGone:    true,
		},
		{
			name: "dry run only prints",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content)
				testutil.WriteMemFile(t, mem, candPath, content)
			},
			opts:        Options{Mode: types.ModeDryRun, MinBytes: 1024},
			wantOutcome: types.OutcomeDeleted,
			wantOutput:  "[DRY RUN] /B/x.bin -> /A/x.bin\n",
		},
		{
			name: "print only lists the path",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content)
				testutil.WriteMemFile(t, mem, candPath, content)
			},
			opts:        Options{Mode: types.ModePrintOnly},
			wantOutcome: types.OutcomeDeleted,
			wantOutput:  "/B/x.bin\n",
		},
		{
			name: "same path is kept",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content)
			},
			cand:        keeper(),
			wantOutcome: types.OutcomeKept,
		},
		{
			name: "missing candidate",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content)
			},
			wantOutcome: types.OutcomeSkippedMissing,
		},
		{
			name: "missing keeper fails",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, candPath, content)
			},
			wantOutcome: types.OutcomeFailed,
			wantReason:  "keeper missing",
		},
		{
			name: "directory candidate fails",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content)
				require.NoError(t, mem.MkdirAll(candPath, 0755))
			},
			wantOutcome: types.OutcomeFailed,
			wantReason:  "not a regular file",
		},
		{
			name: "below minimum size",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content[:500])
				testutil.WriteMemFile(t, mem, candPath, content[:500])
			},
			opts:        Options{MinBytes: 1024},
			wantOutcome: types.OutcomeSkippedTooSmall,
		},
		{
			name: "exactly minimum size is eligible",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content[:1024])
				testutil.WriteMemFile(t, mem, candPath, content[:1024])
			},
			opts:        Options{MinBytes: 1024},
			wantOutcome: types.OutcomeDeleted,
			wantOutput:  "/B/x.bin -> /A/x.bin\n",
			wantGone:    true,
		},
		{
			name: "all-zero content ignored",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, make([]byte, 4096))
				testutil.WriteMemFile(t, mem, candPath, make([]byte, 4096))
			},
			opts:        Options{IgnoreZero: true},
			wantOutcome: types.OutcomeSkippedZeroContent,
		},
		{
			name: "all-zero content deleted when not ignored",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, make([]byte, 4096))
				testutil.WriteMemFile(t, mem, candPath, make([]byte, 4096))
			},
			wantOutcome: types.OutcomeDeleted,
			wantOutput:  "/B/x.bin -> /A/x.bin\n",
			wantGone:    true,
		},
		{
			name: "size mismatch",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content[:1999])
				testutil.WriteMemFile(t, mem, candPath, content)
			},
			wantOutcome: types.OutcomeSkippedSizeMismatch,
			wantReason:  "2000 vs 1999 bytes",
		},
		{
			name: "content mismatch",
			setup: func(t *testing.T, mem afero.Fs) {
				testutil.WriteMemFile(t, mem, keeperPath, content)
				testutil.WriteMemFile(t, mem, candPath, testutil.Flip(content, 1000))
			},
			opts:        Options{MinBytes: 1024},
			wantOutcome: types.OutcomeSkippedContentMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, mem := testutil.NewTestFS()
			tt.setup(t, mem)
			if tt.cand.Path == "" {
				tt.cand = candidate()
			}

			var out bytes.Buffer
			verifier := compare.New(fs, compare.DefaultOptions(), zerolog.Nop())
			p := New(fs, verifier, tt.opts, output.NewReporter(&out, tt.opts.Mode), zerolog.Nop())

			d := p.Plan(tt.cand, keeper())

			assert.Equal(t, tt.wantOutcome, d.Outcome, "outcome %s", d.Outcome)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, d.Reason)
			}
			assert.Equal(t, tt.wantOutput, out.String())

			exists, _ := afero.Exists(mem, candPath)
			if tt.wantGone {
				assert.False(t, exists)
			} else if tt.wantOutcome != types.OutcomeSkippedMissing && tt.wantOutcome != types.OutcomeKept {
				assert.True(t, exists)
			}
			keeperExists, _ := afero.Exists(mem, keeperPath)
			if tt.wantOutcome != types.OutcomeFailed {
				assert.True(t, keeperExists, "keeper must never be removed")
			}
		})
	}
}

type countingVerifier struct {
	equivalent int
	zero       int
}

func (c *countingVerifier) Equivalent(string, string, int64) bool { c.equivalent++; return true }
func (c *countingVerifier) AllZero(string, int64) bool { c.zero++; return false }

func TestPlanner_GatesRunBeforeVerifier(t *testing.T) {
	fs, mem := testutil.NewTestFS()
	testutil.WriteMemFile(t, mem, keeperPath, testutil.Pattern(500, 1))
	testutil.WriteMemFile(t, mem, candPath, testutil.Pattern(500, 1))

	v := &countingVerifier{}
	p := New(fs, v, Options{Mode: types.ModeDryRun, MinBytes: 1024, IgnoreZero: true}, output.NewReporter(&bytes.Buffer{}, types.ModeDryRun), zerolog.Nop())

	d := p.Plan(candidate(), keeper())

	assert.Equal(t, types.OutcomeSkippedTooSmall, d.Outcome)
	assert.Zero(t, v.equivalent)
	assert.Zero(t, v.zero)
}

func TestPlanner_RemoveFailure(t *testing.T) {
	_, mem := testutil.NewTestFS()
	content := testutil.Pattern(2000, 2)
	testutil.WriteMemFile(t, mem, keeperPath, content)
	testutil.WriteMemFile(t, mem, candPath, content)
	fs := filesystem.NewAferoFS(afero.NewReadOnlyFs(mem))

	var out bytes.Buffer
	p := New(fs, compare.New(fs, compare.DefaultOptions(), zerolog.Nop()), Options{Mode: types.ModeDelete}, output.NewReporter(&out, types.ModeDelete), zerolog.Nop())

	d := p.Plan(candidate(), keeper())

	assert.Equal(t, types.OutcomeFailed, d.Outcome)
	assert.Contains(t, d.Reason, "delete failed")
	assert.Empty(t, out.String())
}

func TestPlanner_HardLinkToKeeperIsKept(t *testing.T) {
	testutil.SkipOnWindows(t)
	dir := testutil.TempDir(t)
	keeperFile := testutil.CreateFile(t, dir, "A/x.bin", testutil.Pattern(4096, 3))
	link := filepath.Join(dir, "B", "x.bin")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Link(keeperFile, link))

	fs := filesystem.NewOS()
	var out bytes.Buffer
	p := New(fs, compare.New(fs, compare.DefaultOptions(), zerolog.Nop()), Options{Mode: types.ModeDelete}, output.NewReporter(&out, types.ModeDelete), zerolog.Nop())

	d := p.Plan(
		types.ContentRecord{Digest: "d", Path: link, Priority: 1},
		types.ContentRecord{Digest: "d", Path: keeperFile, Priority: 0},
	)

	assert.Equal(t, types.OutcomeKept, d.Outcome)
	assert.True(t, testutil.FileExists(t, link))
	assert.True(t, testutil.FileExists(t, keeperFile))
	assert.Empty(t, out.String())
}
