package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signature headers attached to every delivery. Receivers recompute the
// HMAC over "<timestamp>.<body>" with their endpoint secret and compare.
const (
	HeaderSignature = "X-Aegis-Signature"
	HeaderTimestamp = "X-Aegis-Timestamp"
	HeaderEventType = "X-Aegis-Event"
)

// Sign computes the delivery signature for a payload at a given unix
// timestamp. The timestamp is bound into the MAC to stop replay of old
// deliveries with fresh headers.
func Sign(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a received signature in constant time. Exported for
// receiver-side use in integration tests and consumer SDKs.
func VerifySignature(secret string, timestamp int64, payload []byte, signature string) bool {
	expected := Sign(secret, timestamp, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
