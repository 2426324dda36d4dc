package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for dedupe operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (File, error)

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)

	// Remove deletes a single file. It is the only mutating call the engine makes.
	Remove(name string) error
}

// File is a read-only handle supporting both streaming and positioned reads.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
}
