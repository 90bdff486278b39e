// Package digest implements the salted fingerprinting primitives for
// document integrity records.
package digest

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateSalt returns a fresh per-document salt. A v4 UUID drawn from the
// system CSPRNG gives 128-bit-class entropy; the salt is stored alongside the
// digest and is not secret, only unpredictable.
func GenerateSalt() string {
	return uuid.New().String()
}

// Compute returns the lowercase hex SHA-256 digest of salt followed by
// content. The salt is UTF-8 encoded; content bytes are appended verbatim.
// Deterministic: identical (salt, content) always yields the same digest.
func Compute(salt string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
