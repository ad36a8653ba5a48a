// Package id mints the opaque references used across the exchange:
// credit ledger receipts and idempotency request ids.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns exactly 32 lowercase hex characters (no separators or
// prefixes), the shape the request-id middleware and ledger both accept.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
