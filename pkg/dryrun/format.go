package dryrun

import (
	"strings"

	"github.com/arthur-debert/dedupe/pkg/errors"
)

// Line markers.
const (
	Prefix     = "[DRY RUN]"
	Arrow      = " -> "
	moveMarker = "Would move"
)

// Pair is one planned deletion: From is removed because To holds the same
// content.
type Pair struct {
	From string
	To   string
	Line int
}

// FormatDryRun renders the primary output line of a simulated deletion.
func FormatDryRun(from, to string) string {
	return Prefix + " " + from + Arrow + to
}

// FormatDeleted renders the primary output line of a real deletion.
func FormatDeleted(from, to string) string {
	return from + Arrow + to
}

// ParseLine extracts the pair from a dry-run line. Lines without the
// [DRY RUN] prefix are not dry-run entries and report ok=false. The payload
// splits at the last " -> ", so the kept path must not contain that sequence.
func ParseLine(line string) (Pair, bool, error) {
	line = strings.TrimRight(line, "\r\n")
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, Prefix) {
		return Pair{}, false, nil
	}

	payload := strings.TrimSpace(strings.TrimPrefix(trimmed, Prefix))
	payload = strings.TrimSpace(strings.TrimPrefix(payload, moveMarker))

	idx := strings.LastIndex(payload, Arrow)
	if idx < 0 {
		return Pair{}, true, errors.Newf(errors.ErrInvalidArgument, "missing %q in dry-run line", strings.TrimSpace(Arrow)).
			WithDetail("line", line)
	}

	from := strings.TrimSpace(payload[:idx])
	to := strings.TrimSpace(payload[idx+len(Arrow):])
	if from == "" || to == "" {
		return Pair{}, true, errors.New(errors.ErrInvalidArgument, "dry-run line has an empty path").
			WithDetail("line", line)
	}
	return Pair{From: from, To: to}, true, nil
}
