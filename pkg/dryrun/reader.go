package dryrun

import (
	"bufio"
	"io"

	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/rs/zerolog"
)

const maxLineBytes = 1 << 20

// ReadPairs parses every dry-run entry in r, in order. Lines that are not
// dry-run entries are ignored; entries that cannot be parsed are logged and
// counted in invalid.
func ReadPairs(r io.Reader, logger zerolog.Logger) (pairs []Pair, invalid int, err error) {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for lines.Scan() {
		lineNo++
		pair, ok, perr := ParseLine(lines.Text())
		if !ok {
			continue
		}
		if perr != nil {
			invalid++
			logger.Warn().Int("line", lineNo).Err(perr).Msg("Ignoring unparseable dry-run entry")
			continue
		}
		pair.Line = lineNo
		pairs = append(pairs, pair)
	}
	if err := lines.Err(); err != nil {
		return pairs, invalid, errors.Wrapf(err, errors.ErrIOFailure, "reading dry-run output near line %d", lineNo+1)
	}
	return pairs, invalid, nil
}
