package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/dedupe/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Open(name string) (types.File, error) {
	// #nosec G304 -- paths come from validated manifests under declared roots
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}
