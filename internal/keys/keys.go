// Package keys derives deterministic, namespaced cache keys from raw
// content.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestLen is the number of hex characters kept from the content digest.
// 16 hex chars (64 bits) keeps keys short; the collision probability is
// negligible for any realistic corpus, but it is a truncation, not the full
// digest.
const DigestLen = 16

// Derive hashes content and composes "<prefix>:<digest>". Pure function:
// identical content under one prefix always yields the identical key.
func Derive(content, prefix string) string {
	sum := sha256.Sum256([]byte(content))
	return prefix + ":" + hex.EncodeToString(sum[:])[:DigestLen]
}
