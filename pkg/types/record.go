package types

import "fmt"

// ContentRecord is one manifest line resolved to a concrete filesystem path.
// Records are immutable once the parser has produced them.
type ContentRecord struct {
	Digest   string
	Path     string
	Priority int
	Line     int

	// Manifest is the manifest file the record came from, for diagnostics.
	Manifest string
}

// Origin returns "manifest:line" for log messages.
func (r ContentRecord) Origin() string {
	return fmt.Sprintf("%s:%d", r.Manifest, r.Line)
}
