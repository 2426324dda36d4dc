package dryrun

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/testutil"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const checkInput = `[DRY RUN] /B/1 -> /A/1
12:00PM INF unrelated log line
[DRY RUN] /B/2 -> /A/2
[DRY RUN] /B/3 -> /A/3
[DRY RUN] /B/4 -> /A/4
[DRY RUN] no arrow here
[DRY RUN] /B/5 -> /A/5
`

func checkFixture(t *testing.T) types.FS {
	t.Helper()
	fs, mem := testutil.NewTestFS()
	testutil.WriteMemFile(t, mem, "/A/1", []byte("one"))
	testutil.WriteMemFile(t, mem, "/B/1", []byte("one"))
	testutil.WriteMemFile(t, mem, "/A/2", []byte("two"))
	testutil.WriteMemFile(t, mem, "/B/2", []byte("TWO"))
	testutil.WriteMemFile(t, mem, "/A/4", []byte("fours"))
	testutil.WriteMemFile(t, mem, "/B/4", []byte("four!!"))
	testutil.WriteMemFile(t, mem, "/A/5", []byte("five"))
	testutil.WriteMemFile(t, mem, "/B/5", []byte("five"))
	return fs
}

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name      string
		opts      CheckOptions
		wantOut   string
		wantStats CheckStats
	}{
		{
			name: "every entry, mismatches only",
			opts: CheckOptions{Every: 1, Jobs: 3},
			wantOut: "[DIFF] /B/2 -> /A/2 (content differs)\n" +
				"[DIFF] /B/3 -> /A/3 (missing source)\n" +
				"[DIFF] /B/4 -> /A/4 (size differs (6 vs 5))\n",
			wantStats: CheckStats{Entries: 5, Checked: 5, OK: 2, Diff: 3, Invalid: 1},
		},
		{
			name: "every second entry, verbose",
			opts: CheckOptions{Every: 2, Jobs: 2, Verbose: true},
			wantOut: "[OK] /B/1 -> /A/1\n" +
				"[SKIP] /B/2 -> /A/2\n" +
				"[DIFF] /B/3 -> /A/3 (missing source)\n" +
				"[SKIP] /B/4 -> /A/4\n" +
				"[OK] /B/5 -> /A/5\n",
			wantStats: CheckStats{Entries: 5, Checked: 3, OK: 2, Skipped: 2, Diff: 1, Invalid: 1},
		},
		{
			name:      "zero values fall back to sequential checking of everything",
			opts:      CheckOptions{},
			wantOut:   "[DIFF] /B/2 -> /A/2 (content differs)\n[DIFF] /B/3 -> /A/3 (missing source)\n[DIFF] /B/4 -> /A/4 (size differs (6 vs 5))\n",
			wantStats: CheckStats{Entries: 5, Checked: 5, OK: 2, Diff: 3, Invalid: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := checkFixture(t)
			var out bytes.Buffer
			verifier := compare.New(fs, compare.DefaultOptions(), zerolog.Nop())
			checker := NewChecker(fs, verifier, tt.opts, &out, zerolog.Nop())

			stats, err := checker.Check(context.Background(), strings.NewReader(checkInput))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStats, stats)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestChecker_MissingTarget(t *testing.T) {
	fs, mem := testutil.NewTestFS()
	testutil.WriteMemFile(t, mem, "/B/x", []byte("x"))
	checker := NewChecker(fs, compare.New(fs, compare.DefaultOptions(), zerolog.Nop()), CheckOptions{}, &bytes.Buffer{}, zerolog.Nop())

	res := checker.CheckPair(Pair{From: "/B/x", To: "/A/x"})
	assert.Equal(t, StatusDiff, res.Status)
	assert.Equal(t, "[DIFF] /B/x -> /A/x (missing target)", res.String())
}

func TestChecker_SampledMismatch(t *testing.T) {
	fs, mem := testutil.NewTestFS()
	content := testutil.Pattern(int(compare.SmallFileThreshold)+4096, 5)
	testutil.WriteMemFile(t, mem, "/A/big", content)
	testutil.WriteMemFile(t, mem, "/B/big", testutil.Flip(content, 0))

	checker := NewChecker(fs, compare.New(fs, compare.DefaultOptions(), zerolog.Nop()), CheckOptions{}, &bytes.Buffer{}, zerolog.Nop())
	res := checker.CheckPair(Pair{From: "/B/big", To: "/A/big"})

	assert.Equal(t, StatusDiff, res.Status)
	assert.Equal(t, "content differs (sampled)", res.Reason)
}

func TestChecker_Cancelled(t *testing.T) {
	fs := checkFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	checker := NewChecker(fs, compare.New(fs, compare.DefaultOptions(), zerolog.Nop()), CheckOptions{Jobs: 4}, &out, zerolog.Nop())

	_, err := checker.Check(ctx, strings.NewReader(checkInput))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestReadPairs(t *testing.T) {
	pairs, invalid, err := ReadPairs(strings.NewReader(checkInput), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 1, invalid)
	require.Len(t, pairs, 5)
	assert.Equal(t, Pair{From: "/B/1", To: "/A/1", Line: 1}, pairs[0])
	assert.Equal(t, Pair{From: "/B/5", To: "/A/5", Line: 7}, pairs[4])
}
