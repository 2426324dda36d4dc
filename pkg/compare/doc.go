// Package compare decides whether two files of equal size hold the same bytes.
//
// Digests in manifests may be stale or collide, so nothing is deleted on the
// strength of a digest alone. The Verifier re-reads both files just before a
// deletion. Small files are compared in full. Large files are compared on a
// fixed set of sampled regions, trading a bounded residual risk for IO that
// does not grow with file size. The strategy is selectable:
//
//	tiered  head, middle and tail regions (default)
//	spot    first, middle, last and N evenly spaced blocks
//	full    every byte, regardless of size
//	naive   equal size is enough; no content is read
//
// Every IO failure counts as "different". The verifier never answers "same"
// without having read the bytes it was asked to check.
package compare
