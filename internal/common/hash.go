package common

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha256Hex hashes s and returns the lowercase hex digest. Used to keep
// caller supplied values out of Redis keys.
func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
