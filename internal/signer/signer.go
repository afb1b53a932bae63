// Package signer computes HMAC-SHA256 request signatures for the exchange
// API. Signing is pure: the same secret and payload always produce the same
// digest. The payload must be the exact byte sequence transmitted on the
// wire; the signature only authenticates, it is never verified locally.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the lowercase hex HMAC-SHA256 digest of payload keyed with
// secret.
func Sign(secret, payload string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
