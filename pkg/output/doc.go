// Package output writes everything a user sees that is not a log line.
//
// Two streams are kept apart:
//
//   - Reporter writes the primary stream (stdout): one line per deleted or
//     would-be-deleted file, stable enough for scripts and for
//     "dedupe verify" to parse back.
//   - Printer writes end-of-run summaries to stderr, styled with lipgloss
//     when stderr is a color terminal and plain otherwise.
package output
