package testutil

import (
	"crypto/sha256"
	"fmt"
)

// GetTestChecksum calculates a SHA256 checksum for test content
// This is used in tests to generate predictable manifest digests
func GetTestChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return fmt.Sprintf("%x", hash)
}

// Pattern returns size bytes of deterministic, non-zero content. Different
// seeds give different content at every offset.
func Pattern(size int, seed byte) []byte {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = byte(i%251) + seed + 1
		if buf[i] == 0 {
			buf[i] = 1
		}
	}
	return buf
}

// Flip returns a copy of content with the byte at offset changed.
func Flip(content []byte, offset int) []byte {
	out := make([]byte, len(content))
	copy(out, content)
	out[offset] ^= 0xFF
	return out
}
