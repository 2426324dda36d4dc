package compare

import (
	"bytes"
	stderrors "errors"
	"io"

	"github.com/arthur-debert/dedupe/pkg/config"
	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog"
)

// Verifier compares files through a types.FS.
type Verifier struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a Verifier. Unset option fields take their defaults.
func New(fs types.FS, opts Options, logger zerolog.Logger) *Verifier {
	opts = opts.withDefaults()
	return &Verifier{
		fs:     fs,
		opts:   opts,
		logger: logger.With().Str("strategy", opts.Strategy).Logger(),
	}
}

// Options returns the effective options.
func (v *Verifier) Options() Options {
	return v.opts
}

// Equivalent reports whether a and b, both of the given size, hold the same
// content as far as the strategy checks. Any IO failure yields false.
func (v *Verifier) Equivalent(a, b string, size int64) bool {
	same, err := v.Compare(a, b, size)
	if err != nil {
		v.logger.Warn().
			Err(err).
			Str("a", a).
			Str("b", b).
			Int64("size", size).
			Msg("Comparison failed, treating files as different")
		return false
	}
	return same
}

// Compare is Equivalent with the IO error exposed.
func (v *Verifier) Compare(a, b string, size int64) (bool, error) {
	if v.opts.Strategy == config.StrategyNaive {
		v.logger.Trace().Str("a", a).Str("b", b).Msg("Naive comparison, size match accepted")
		return true, nil
	}
	if size == 0 {
		return true, nil
	}

	fa, err := v.fs.Open(a)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrIOFailure, "open %s", a)
	}
	defer func() { _ = fa.Close() }()

	fb, err := v.fs.Open(b)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrIOFailure, "open %s", b)
	}
	defer func() { _ = fb.Close() }()

	regions := v.opts.Regions(size)
	if v.opts.Strategy == config.StrategyFull || regions == nil {
		chunk := min(max(size, 1), v.opts.ChunkBytes)
		v.logger.Trace().Str("a", a).Int64("size", size).Int64("chunk", chunk).Msg("Streaming full comparison")
		return streamEqual(fa, fb, chunk)
	}

	v.logger.Trace().Str("a", a).Int64("size", size).Int("regions", len(regions)).Msg("Sampled comparison")
	return regionsEqual(fa, fb, regions)
}

func streamEqual(a, b io.Reader, chunk int64) (bool, error) {
	bufA := make([]byte, chunk)
	bufB := make([]byte, chunk)

	for {
		na, errA := io.ReadFull(a, bufA)
		nb, errB := io.ReadFull(b, bufB)
		if err := readErr(errA); err != nil {
			return false, errors.Wrap(err, errors.ErrIOFailure, "read")
		}
		if err := readErr(errB); err != nil {
			return false, errors.Wrap(err, errors.ErrIOFailure, "read")
		}
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		if errA != nil || errB != nil {
			// Both sides reached EOF with the same tail.
			return errA != nil && errB != nil, nil
		}
	}
}

func regionsEqual(a, b io.ReaderAt, regions []Region) (bool, error) {
	var longest int64
	for _, r := range regions {
		longest = max(longest, r.Length)
	}
	bufA := make([]byte, longest)
	bufB := make([]byte, longest)

	for _, r := range regions {
		if err := readRegion(a, bufA[:r.Length], r.Offset); err != nil {
			return false, err
		}
		if err := readRegion(b, bufB[:r.Length], r.Offset); err != nil {
			return false, err
		}
		if !bytes.Equal(bufA[:r.Length], bufB[:r.Length]) {
			return false, nil
		}
	}
	return true, nil
}

func readRegion(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return errors.Wrapf(err, errors.ErrIOFailure, "short read at offset %d", off)
}

// readErr drops the EOF conditions io.ReadFull reports at the end of input.
func readErr(err error) error {
	if err == nil || stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return err
}

// AllZero reports whether every byte of path is zero. Empty files are all
// zero. Any IO failure yields false.
func (v *Verifier) AllZero(path string, size int64) bool {
	if size == 0 {
		return true
	}

	f, err := v.fs.Open(path)
	if err != nil {
		v.logger.Warn().Err(err).Str("path", path).Msg("Cannot open file for zero check")
		return false
	}
	defer func() { _ = f.Close() }()

	probe := make([]byte, min(zeroProbeBytes, size))
	n, err := io.ReadFull(f, probe)
	if readErr(err) != nil {
		v.logger.Warn().Err(err).Str("path", path).Msg("Zero check read failed")
		return false
	}
	if !isZero(probe[:n]) {
		return false
	}

	buf := make([]byte, min(v.opts.ZeroChunkBytes, size))
	for {
		n, err := io.ReadFull(f, buf)
		if !isZero(buf[:n]) {
			return false
		}
		if err != nil {
			if readErr(err) != nil {
				v.logger.Warn().Err(err).Str("path", path).Msg("Zero check read failed")
				return false
			}
			return true
		}
	}
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
