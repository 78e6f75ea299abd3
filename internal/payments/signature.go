package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the hex HMAC-SHA256 of body under secret, matching what the
// payment provider sends in its signature header.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a delivered webhook signature against the raw body.
// hmac.Equal keeps the comparison constant-time.
func VerifySignature(body []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
