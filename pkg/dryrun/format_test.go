package dryrun

import (
	"testing"

	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantErr  bool
		wantFrom string
		wantTo   string
	}{
		{
			name:     "formatted line",
			line:     "[DRY RUN] /B/x.bin -> /A/x.bin",
			wantOK:   true,
			wantFrom: "/B/x.bin",
			wantTo:   "/A/x.bin",
		},
		{
			name:     "would move marker",
			line:     "[DRY RUN] Would move /B/x.bin -> /A/x.bin",
			wantOK:   true,
			wantFrom: "/B/x.bin",
			wantTo:   "/A/x.bin",
		},
		{
			name:     "arrow inside the deleted path",
			line:     "[DRY RUN] /B/a -> b.txt -> /A/c.txt",
			wantOK:   true,
			wantFrom: "/B/a -> b.txt",
			wantTo:   "/A/c.txt",
		},
		{
			name:     "paths with spaces and trailing CR",
			line:     "[DRY RUN] /B/my file.txt -> /A/my file.txt\r",
			wantOK:   true,
			wantFrom: "/B/my file.txt",
			wantTo:   "/A/my file.txt",
		},
		{
			name:   "real run line is not a dry-run entry",
			line:   "/B/x.bin -> /A/x.bin",
			wantOK: false,
		},
		{
			name:   "log noise",
			line:   "12:01PM WRN Skipping manifest line",
			wantOK: false,
		},
		{
			name:    "no arrow",
			line:    "[DRY RUN] /B/x.bin",
			wantOK:  true,
			wantErr: true,
		},
		{
			name:    "empty target",
			line:    "[DRY RUN] /B/x.bin -> ",
			wantOK:  true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, ok, err := ParseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, pair.From)
			assert.Equal(t, tt.wantTo, pair.To)
		})
	}
}

func TestFormatDryRun_RoundTrip(t *testing.T) {
	for _, p := range []Pair{
		{From: "/B/x.bin", To: "/A/x.bin"},
		{From: "/B/dir with spaces/[1].jpg", To: "/A/photos/[1].jpg"},
		{From: "/B/a -> b", To: "/A/c"},
	} {
		pair, ok, err := ParseLine(FormatDryRun(p.From, p.To))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, p.From, pair.From)
		assert.Equal(t, p.To, pair.To)
	}

	assert.Equal(t, "/B/x.bin -> /A/x.bin", FormatDeleted("/B/x.bin", "/A/x.bin"))
}
