package ipn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"transactionRef":"TXN-001","amount":5000}`)
	secret := "webhook-secret"

	sig := Sign(payload, secret)
	require.NotEmpty(t, sig)

	assert.True(t, VerifySignature(payload, sig, secret))
	// Same inputs, same verdict.
	assert.True(t, VerifySignature(payload, sig, secret))
}

func TestVerifySignatureHexCaseInsensitive(t *testing.T) {
	payload := []byte(`{"transactionRef":"TXN-002"}`)
	secret := "webhook-secret"

	sig := Sign(payload, secret)
	assert.True(t, VerifySignature(payload, strings.ToUpper(sig), secret))
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"transactionRef":"TXN-003","amount":5000}`)
	secret := "webhook-secret"
	sig := Sign(payload, secret)

	tampered := []byte(`{"transactionRef":"TXN-003","amount":9000}`)
	assert.False(t, VerifySignature(tampered, sig, secret))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"transactionRef":"TXN-004"}`)
	sig := Sign(payload, "secret-a")

	assert.False(t, VerifySignature(payload, sig, "secret-b"))
}

func TestVerifySignatureBlankInputs(t *testing.T) {
	payload := []byte(`{}`)

	assert.False(t, VerifySignature(payload, "", "secret"))
	assert.False(t, VerifySignature(payload, Sign(payload, "secret"), ""))
	assert.False(t, VerifySignature(payload, "   ", "secret"))
}

func TestVerifySignatureRejectsNonHex(t *testing.T) {
	assert.False(t, VerifySignature([]byte(`{}`), "not-hex-at-all", "secret"))
}
