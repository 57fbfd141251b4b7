package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns an opaque random identifier, used for token JTIs and
// refresh tokens. Record identifiers use the per-collection sequence
// scheme instead.
func NewID(prefix string) string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	if prefix == "" {
		return hex.EncodeToString(bytes)
	}
	return prefix + "_" + hex.EncodeToString(bytes)
}
