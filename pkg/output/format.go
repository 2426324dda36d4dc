package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the summary format type
type Format int

const (
	// FormatTerminal renders summaries with colors and styling
	FormatTerminal Format = iota
	// FormatText renders plain text summaries without any styling
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// DetectFormat determines the summary format for w based on the --no-color
// flag, NO_COLOR and terminal capabilities.
func DetectFormat(w io.Writer, noColor bool) Format {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	f, ok := w.(*os.File)
	if !ok {
		return FormatText
	}

	// Check if we're being piped or redirected
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(f).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
