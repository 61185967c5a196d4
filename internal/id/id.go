// Package id generates short unique identifiers for update cycles so
// their traces can be correlated in update.log.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Generate creates a unique identifier with the given prefix.
// Format: <prefix>_<8 hex chars> (e.g., "upd_abc12345").
func Generate(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively unheard of; fall back to a
		// timestamp so the launcher still runs.
		return prefix + "_" + hex.EncodeToString([]byte(time.Now().Format("150405.0")))[:8]
	}
	return prefix + "_" + hex.EncodeToString(b)
}
