package essays

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes the SHA-256 hex digest of the exact essay text.
// The text is not normalized: any difference in whitespace or casing
// produces a distinct fingerprint.
func Fingerprint(essayText string) string {
	sum := sha256.Sum256([]byte(essayText))
	return hex.EncodeToString(sum[:])
}
