// Package manifest reads per-root content manifests.
//
// A manifest is a UTF-8 text file with one "<digest> <relative-path>" entry
// per line. The first run of whitespace separates the two fields, so paths
// may contain spaces. Blank lines and lines starting with '#' are ignored.
//
// Scanner resolves every entry against its root and yields ContentRecords in
// file order. Malformed lines and paths that would escape the root are logged
// and skipped; they never abort the scan.
package manifest
