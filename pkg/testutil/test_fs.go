package testutil

import (
	"testing"

	"github.com/arthur-debert/dedupe/pkg/filesystem"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS creates a new in-memory filesystem for testing. The backing afero
// filesystem is returned too so tests can seed files.
func NewTestFS() (types.FS, afero.Fs) {
	mem := afero.NewMemMapFs()
	return filesystem.NewAferoFS(mem), mem
}

// WriteMemFile writes content into an afero filesystem, creating parents.
func WriteMemFile(t *testing.T, fs afero.Fs, path string, content []byte) {
	t.Helper()

	if err := afero.WriteFile(fs, path, content, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
