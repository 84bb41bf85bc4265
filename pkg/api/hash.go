package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns a hex BLAKE3 digest of b, used as a strong ETag.
func Digest(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// ETag quotes the digest of b for use in an ETag header.
func ETag(b []byte) string {
	return `"` + Digest(b) + `"`
}
