// Package testutil provides utilities for testing dedupe components.
//
// Key components:
//   - Root: builds a root directory with files and a matching manifest
//   - NewTestFS: in-memory afero filesystem for fast, isolated tests
//   - Pattern / Flip: deterministic content for comparison tests
//
// Usage guidelines:
//   - Engine and planner tests use real temp directories, so deletions and
//     symlinks behave as they do in production
//   - Comparison tests may use NewTestFS for speed
//   - All test data should be defined inline, not in external files
package testutil
