package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ManifestName is the manifest file name written by Root.
const ManifestName = "hashes.txt"

// Root builds a root directory together with its manifest.
type Root struct {
	t     *testing.T
	Dir   string
	lines []string
}

// NewRoot creates parent/name and returns a builder for it.
func NewRoot(t *testing.T, parent, name string) *Root {
	t.Helper()
	return &Root{t: t, Dir: CreateDir(t, parent, name)}
}

// AddFile writes content at rel and lists it under its SHA256 digest.
func (r *Root) AddFile(rel string, content []byte) string {
	r.t.Helper()
	return r.AddFileWithDigest(rel, content, GetTestChecksum(content))
}

// AddFileWithDigest writes content at rel and lists it under digest, which
// need not match the content.
func (r *Root) AddFileWithDigest(rel string, content []byte, digest string) string {
	r.t.Helper()
	path := CreateFile(r.t, r.Dir, filepath.FromSlash(rel), content)
	r.AddEntry(digest, rel)
	return path
}

// AddEntry lists rel under digest without creating a file.
func (r *Root) AddEntry(digest, rel string) {
	r.lines = append(r.lines, digest+" "+rel)
}

// AddLine appends a raw manifest line.
func (r *Root) AddLine(line string) {
	r.lines = append(r.lines, line)
}

// Path returns the absolute path of rel inside the root.
func (r *Root) Path(rel string) string {
	return filepath.Join(r.Dir, filepath.FromSlash(rel))
}

// WriteManifest writes the collected lines to the root's manifest.
func (r *Root) WriteManifest() string {
	r.t.Helper()
	path := filepath.Join(r.Dir, ManifestName)
	content := strings.Join(r.lines, "\n")
	if len(r.lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.t.Fatalf("Failed to write manifest %s: %v", path, err)
	}
	return path
}
