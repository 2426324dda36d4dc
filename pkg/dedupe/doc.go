// Package dedupe runs a deduplication pass over ranked roots.
//
// The first root has priority 0 and is never deleted from. Every root carries
// a manifest of "<digest> <relative-path>" lines. The engine streams the
// manifests in root order through the reconciler, which picks one keeper per
// digest, and hands every lower-priority copy to the planner, which verifies
// and deletes it (or reports what it would delete).
//
// Runs are single threaded and strictly ordered, so the result depends only
// on the roots, their manifests and the filesystem.
package dedupe
