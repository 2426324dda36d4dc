// Package dryrun handles the "[DRY RUN] <deleted> -> <kept>" lines printed by
// a dry run.
//
// The line format is stable: FormatDryRun produces it and ParseLine reads it
// back. On top of it sit two consumers of saved dry-run output. Checker
// re-verifies every Nth pair independently of the run that produced it.
// Applier performs the deletions a dry run planned, re-verifying each pair
// first unless told otherwise.
package dryrun
