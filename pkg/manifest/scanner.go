package manifest

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultFileName is the manifest name looked up in every root.
const DefaultFileName = "hashes.txt"

// MaxLineBytes bounds a single manifest line.
const MaxLineBytes = 1 << 20

const bom = "\uFEFF"

// Stats counts the lines a scan had to skip.
type Stats struct {
	Lines     int
	Records   int
	Malformed int
	Unsafe    int
}

// Scanner yields the records of one manifest in file order.
// It reads lazily and can only be consumed once.
type Scanner struct {
	root     string
	priority int
	path     string

	file    io.Closer
	lines   *bufio.Scanner
	lineNo  int
	current types.ContentRecord
	err     error
	stats   Stats
	logger  zerolog.Logger
}

// Open opens <root>/<name> for scanning. Records produced by the scanner carry
// the given priority.
func Open(fs types.FS, root string, priority int, name string, logger zerolog.Logger) (*Scanner, error) {
	if name == "" {
		name = DefaultFileName
	}
	path := filepath.Join(root, name)

	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "cannot open manifest %s", path).
			WithDetail("manifest", path)
	}

	lines := bufio.NewScanner(f)
	lines.Buffer(make([]byte, 64*1024), MaxLineBytes)

	return &Scanner{
		root:     root,
		priority: priority,
		path:     path,
		file:     f,
		lines:    lines,
		logger:   logger.With().Str("manifest", path).Int("priority", priority).Logger(),
	}, nil
}

// Next advances to the next valid record. It returns false at the end of the
// manifest or on a read error; check Err afterwards.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	for s.lines.Scan() {
		s.lineNo++
		s.stats.Lines++

		raw := s.lines.Text()
		if s.lineNo == 1 {
			raw = strings.TrimPrefix(raw, bom)
		}

		rec, err := ParseLine(raw, s.root, s.priority)
		if err != nil {
			s.skip(err)
			continue
		}
		if rec == nil {
			continue
		}

		rec.Line = s.lineNo
		rec.Manifest = s.path
		s.current = *rec
		s.stats.Records++
		return true
	}

	if err := s.lines.Err(); err != nil {
		s.err = errors.Wrapf(err, errors.ErrIOFailure, "reading manifest %s near line %d", s.path, s.lineNo+1).
			WithDetail("manifest", s.path)
	}
	return false
}

func (s *Scanner) skip(err error) {
	origin := s.path + ":" + strconv.Itoa(s.lineNo)
	switch errors.GetErrorCode(err) {
	case errors.ErrUnsafeRelativePath:
		s.stats.Unsafe++
	default:
		s.stats.Malformed++
	}
	s.logger.Warn().
		Str("origin", origin).
		Str("code", string(errors.GetErrorCode(err))).
		Err(err).
		Msg("Skipping manifest line")
}

// Record returns the record produced by the last successful Next.
func (s *Scanner) Record() types.ContentRecord {
	return s.current
}

// Err returns the read error that ended the scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Stats returns line counters for the scan so far.
func (s *Scanner) Stats() Stats {
	return s.stats
}

// Path returns the manifest file path.
func (s *Scanner) Path() string {
	return s.path
}

// Close releases the manifest file.
func (s *Scanner) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// ParseLine parses one manifest line relative to root. It returns a nil record
// and nil error for blank and comment lines.
func ParseLine(line, root string, priority int) (*types.ContentRecord, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	sep := strings.IndexFunc(line, unicode.IsSpace)
	if sep < 0 {
		return nil, errors.New(errors.ErrMalformedManifestLine, "expected '<digest> <path>'")
	}
	digest := line[:sep]
	rel := strings.TrimLeftFunc(line[sep:], unicode.IsSpace)
	if rel == "" {
		return nil, errors.New(errors.ErrMalformedManifestLine, "missing path")
	}

	rel, err := NormalizeRelative(rel)
	if err != nil {
		return nil, err
	}

	return &types.ContentRecord{
		Digest:   digest,
		Path:     filepath.Join(root, filepath.FromSlash(rel)),
		Priority: priority,
	}, nil
}

// NormalizeRelative converts backslashes to '/' and rejects paths that are
// absolute or contain a ".." segment.
func NormalizeRelative(rel string) (string, error) {
	rel = strings.ReplaceAll(rel, "\\", "/")

	if strings.HasPrefix(rel, "/") || hasDriveLetter(rel) {
		return "", errors.Newf(errors.ErrUnsafeRelativePath, "absolute path %q", rel).
			WithDetail("path", rel)
	}
	for _, segment := range strings.Split(rel, "/") {
		if segment == ".." {
			return "", errors.Newf(errors.ErrUnsafeRelativePath, "path %q escapes its root", rel).
				WithDetail("path", rel)
		}
	}
	return rel, nil
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
