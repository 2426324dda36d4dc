package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/arthur-debert/dedupe/pkg/dryrun"
	"github.com/arthur-debert/dedupe/pkg/types"
)

// Reporter writes the primary output line for every deletion.
type Reporter struct {
	mu   sync.Mutex
	w    io.Writer
	mode types.RunMode
}

// NewReporter creates a Reporter whose line format follows mode.
func NewReporter(w io.Writer, mode types.RunMode) *Reporter {
	return &Reporter{w: w, mode: mode}
}

// Deleted reports that from was (or would be) deleted in favour of to.
func (r *Reporter) Deleted(from, to string) error {
	var line string
	switch r.mode {
	case types.ModeDryRun:
		line = dryrun.FormatDryRun(from, to)
	case types.ModePrintOnly:
		line = from
	default:
		line = dryrun.FormatDeleted(from, to)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintln(r.w, line)
	return err
}
