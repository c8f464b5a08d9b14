package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken computes a SHA-256 hash of the token string. Bearer tokens are
// issued by the upstream aggregator and treated as opaque; only their hash is
// used as a Redis session key so raw tokens never appear in key listings.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
