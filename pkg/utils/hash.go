package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SumSHA256 returns the SHA-256 checksum of the provided data.
func SumSHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DigestPrefix returns the first n characters of the upper-case hex encoded
// SHA-256 of data. n is clamped to the digest length.
func DigestPrefix(data []byte, n int) string {
	sum := SumSHA256(data)
	h := hex.EncodeToString(sum[:])
	if n > len(h) {
		n = len(h)
	}
	if n < 0 {
		n = 0
	}
	return strings.ToUpper(h[:n])
}
