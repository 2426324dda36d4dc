package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/dedupe/pkg/dryrun"
	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/output/styles"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Printer renders end-of-run summaries.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a Printer writing to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

type row struct {
	label string
	value int
	style string
}

func (p *Printer) render(style, text string) string {
	if p.format != FormatTerminal {
		return text
	}
	return styles.GetStyle(style).Render(text)
}

func (p *Printer) table(title, titleStyle string, rows []row) error {
	var b strings.Builder
	b.WriteString(p.render(titleStyle, title))
	b.WriteString("\n")

	for _, r := range rows {
		label := fmt.Sprintf("  %-24s", r.label)
		value := fmt.Sprintf("%d", r.value)
		if p.format == FormatTerminal {
			label = "  " + styles.GetStyle("Label").Render(r.label)
			if r.value > 0 && r.style != "" {
				value = styles.GetStyle(r.style).Render(value)
			} else {
				value = styles.GetStyle("Count").Render(value)
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, " ", value))
		b.WriteString("\n")
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// RunSummary writes the counters of a dedupe run.
func (p *Printer) RunSummary(stats *types.RunStats) error {
	title := "Deduplication summary"
	titleStyle := "Header"
	deleted := "Deleted"
	switch stats.Mode {
	case types.ModeDryRun:
		title = "Deduplication summary (dry run, nothing was deleted)"
		titleStyle = "DryRunBanner"
		deleted = "Would delete"
	case types.ModePrintOnly:
		title = "Deduplication summary (print only, nothing was deleted)"
		titleStyle = "DryRunBanner"
		deleted = "Would delete"
	}

	return p.table(title, titleStyle, []row{
		{label: "Records examined", value: stats.Examined},
		{label: "Duplicates", value: stats.Duplicates},
		{label: deleted, value: stats.Deleted, style: "Success"},
		{label: "Skipped, same priority", value: stats.SkippedSamePriority, style: "Muted"},
		{label: "Skipped, too small", value: stats.SkippedTooSmall, style: "Muted"},
		{label: "Skipped, all zero", value: stats.SkippedZero, style: "Muted"},
		{label: "Skipped, size differs", value: stats.SkippedSizeMismatch, style: "Warning"},
		{label: "Skipped, content differs", value: stats.SkippedContentMismatch, style: "Warning"},
		{label: "Missing", value: stats.Missing, style: "Muted"},
		{label: "Failed", value: stats.Failed, style: "Error"},
		{label: "Malformed lines", value: stats.Malformed, style: "Warning"},
		{label: "Unsafe paths", value: stats.Unsafe, style: "Warning"},
	})
}

// VerifySummary writes the counters of a dry-run verification.
func (p *Printer) VerifySummary(stats dryrun.CheckStats) error {
	return p.table("Verification summary", "Header", []row{
		{label: "Entries", value: stats.Entries},
		{label: "Checked", value: stats.Checked},
		{label: "Matched", value: stats.OK, style: "Success"},
		{label: "Not sampled", value: stats.Skipped, style: "Muted"},
		{label: "Mismatched", value: stats.Diff, style: "Error"},
		{label: "Unparseable lines", value: stats.Invalid, style: "Warning"},
	})
}

// ApplySummary writes the counters of a dry-run apply.
func (p *Printer) ApplySummary(stats dryrun.ApplyStats, simulate bool) error {
	title, titleStyle := "Apply summary", "Header"
	if simulate {
		title, titleStyle = "Apply summary (dry run, nothing was deleted)", "DryRunBanner"
	}
	return p.table(title, titleStyle, []row{
		{label: "Entries", value: stats.Entries},
		{label: "Deleted", value: stats.Deleted, style: "Success"},
		{label: "Source missing", value: stats.Missing, style: "Warning"},
		{label: "Not a file", value: stats.NotFile, style: "Warning"},
		{label: "Verification failed", value: stats.Mismatch, style: "Warning"},
		{label: "Errors", value: stats.Errors, style: "Error"},
		{label: "Unparseable lines", value: stats.Invalid, style: "Warning"},
	})
}

// Error writes a styled error line followed by the error's details, one
// "key: value" line each in key order.
func (p *Printer) Error(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %v\n", p.render("Error", "Error:"), err)

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, p.render("FilePath", fmt.Sprint(details[k])))
	}

	_, werr := io.WriteString(p.w, b.String())
	return werr
}
