package ipn

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifySignature checks a gateway notification signature. The digest is
// HMAC-SHA256 over the exact raw request bytes the sender signed; any
// re-serialization of the body would break verification.
//
// Returns false when either the signature or the secret is blank, so callers
// can distinguish "not attempted" from "mismatch" by checking for a supplied
// signature before calling.
func VerifySignature(rawPayload []byte, signatureHeader, webhookSecret string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawPayload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

// Sign computes the hex HMAC-SHA256 digest the gateway would send for a
// payload. Used by the admin test scenarios to produce valid deliveries.
func Sign(rawPayload []byte, webhookSecret string) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(rawPayload)
	return hex.EncodeToString(mac.Sum(nil))
}
