// Package types defines the core types and interfaces shared by the dedupe
// engine: the filesystem interface, manifest records, per-candidate
// decisions and run statistics.
package types
