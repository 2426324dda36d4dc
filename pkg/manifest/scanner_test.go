package manifest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/testutil"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	root := filepath.FromSlash("/data/A")

	tests := []struct {
		name     string
		line     string
		wantPath string
		wantHash string
		wantCode errors.ErrorCode
		wantNil  bool
	}{
		{
			name:     "simple entry",
			line:     "deadbeef x.bin",
			wantHash: "deadbeef",
			wantPath: filepath.Join(root, "x.bin"),
		},
		{
			name:     "path with spaces",
			line:     "abc123  photos/summer trip/img 01.jpg",
			wantHash: "abc123",
			wantPath: filepath.Join(root, "photos", "summer trip", "img 01.jpg"),
		},
		{
			name:     "tab separator and surrounding whitespace",
			line:     "  abc\tdir/file.txt  ",
			wantHash: "abc",
			wantPath: filepath.Join(root, "dir", "file.txt"),
		},
		{
			name:     "backslash separators",
			line:     `abc dir\sub\file.txt`,
			wantHash: "abc",
			wantPath: filepath.Join(root, "dir", "sub", "file.txt"),
		},
		{
			name:    "blank line",
			line:    "   ",
			wantNil: true,
		},
		{
			name:    "comment line",
			line:    "# generated by hashdeep",
			wantNil: true,
		},
		{
			name:     "digest only",
			line:     "deadbeef",
			wantCode: errors.ErrMalformedManifestLine,
		},
		{
			name:     "absolute path",
			line:     "abc /etc/passwd",
			wantCode: errors.ErrUnsafeRelativePath,
		},
		{
			name:     "drive letter path",
			line:     `abc C:\Windows\win.ini`,
			wantCode: errors.ErrUnsafeRelativePath,
		},
		{
			name:     "parent segment",
			line:     "abc photos/../../secret",
			wantCode: errors.ErrUnsafeRelativePath,
		},
		{
			name:     "dots inside a name are fine",
			line:     "abc photos/..hidden/a..b",
			wantHash: "abc",
			wantPath: filepath.Join(root, "photos", "..hidden", "a..b"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseLine(tt.line, root, 2)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				assert.Nil(t, rec)
				return
			}

			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, rec)
				return
			}
			require.NotNil(t, rec)
			assert.Equal(t, tt.wantHash, rec.Digest)
			assert.Equal(t, tt.wantPath, rec.Path)
			assert.Equal(t, 2, rec.Priority)
		})
	}
}

func TestScanner(t *testing.T) {
	fs, mem := testutil.NewTestFS()
	manifest := strings.Join([]string{
		"\uFEFFaaa first.bin",
		"",
		"# comment",
		"bbb",
		"ccc ../escape.bin",
		"ddd nested/second file.bin",
	}, "\n")
	testutil.WriteMemFile(t, mem, "/root/hashes.txt", []byte(manifest))

	s, err := Open(fs, "/root", 1, "", zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	var got []types.ContentRecord
	for s.Next() {
		got = append(got, s.Record())
	}
	require.NoError(t, s.Err())

	require.Len(t, got, 2)
	assert.Equal(t, "aaa", got[0].Digest)
	assert.Equal(t, filepath.Join("/root", "first.bin"), got[0].Path)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 1, got[0].Priority)
	assert.Equal(t, "ddd", got[1].Digest)
	assert.Equal(t, filepath.Join("/root", "nested", "second file.bin"), got[1].Path)
	assert.Equal(t, 6, got[1].Line)
	assert.Equal(t, filepath.Join("/root", "hashes.txt")+":6", got[1].Origin())

	stats := s.Stats()
	assert.Equal(t, 6, stats.Lines)
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 1, stats.Unsafe)
}

func TestScanner_MissingManifest(t *testing.T) {
	fs, _ := testutil.NewTestFS()

	_, err := Open(fs, "/nowhere", 0, "hashes.txt", zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIOFailure))
}

func TestScanner_LineTooLong(t *testing.T) {
	fs, mem := testutil.NewTestFS()
	long := "abc " + strings.Repeat("x", MaxLineBytes+10)
	testutil.WriteMemFile(t, mem, "/root/hashes.txt", []byte("aaa ok.bin\n"+long+"\nbbb never.bin\n"))

	s, err := Open(fs, "/root", 0, "hashes.txt", zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.True(t, s.Next())
	assert.Equal(t, "aaa", s.Record().Digest)
	assert.False(t, s.Next())
	require.Error(t, s.Err())
	assert.True(t, errors.IsErrorCode(s.Err(), errors.ErrIOFailure))
}
