package ipn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotificationMalformed(t *testing.T) {
	_, err := ParseNotification([]byte(`{not json`))
	assert.Error(t, err)
}

func TestNotificationReferenceFallback(t *testing.T) {
	n, err := ParseNotification([]byte(`{"transactionRef":"TXN-A","transaction_ref":"TXN-B"}`))
	require.NoError(t, err)
	assert.Equal(t, "TXN-A", n.Reference())

	n, err = ParseNotification([]byte(`{"transaction_ref":"TXN-B"}`))
	require.NoError(t, err)
	assert.Equal(t, "TXN-B", n.Reference())

	n, err = ParseNotification([]byte(`{"amount":100}`))
	require.NoError(t, err)
	assert.Equal(t, UnknownReference, n.Reference())

	n, err = ParseNotification([]byte(`{"transactionRef":"   "}`))
	require.NoError(t, err)
	assert.Equal(t, UnknownReference, n.Reference())
}

func TestNotificationPaymentDate(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	n := &Notification{Timestamp: "2026-07-15T10:30:00Z"}
	assert.Equal(t, time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC), n.PaymentDate(now))

	n = &Notification{Timestamp: ""}
	assert.Equal(t, now, n.PaymentDate(now))

	n = &Notification{Timestamp: "yesterday-ish"}
	assert.Equal(t, now, n.PaymentDate(now))
}

func TestNotificationMethodFallback(t *testing.T) {
	n := &Notification{PaymentMethod: "M-PESA"}
	assert.Equal(t, "M-PESA", n.Method("Jenga PGW"))

	n = &Notification{}
	assert.Equal(t, "Jenga PGW", n.Method("Jenga PGW"))
}
