package graph

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashBytes computes the full SHA-256 hex digest of data.
func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
