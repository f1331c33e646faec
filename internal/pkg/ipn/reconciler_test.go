package ipn

import (
	"errors"
	"testing"
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCreatesPaymentOnFirstDelivery(t *testing.T) {
	payments := newFakePaymentRepo()
	r := NewReconciler(payments)
	now := time.Now()

	n := &Notification{TransactionRef: "TXN-100", Amount: 5000, Status: "SUCCESS"}
	result, err := r.Reconcile(n, activeConfig(), now)
	require.NoError(t, err)
	assert.True(t, result.Created)

	payment, err := payments.GetByID(result.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "TXN-100", payment.ReferenceNumber)
	assert.Equal(t, models.PAYMENT_STATUS_PAID, payment.Status)
	assert.Equal(t, 5000.0, payment.Amount)
	assert.Equal(t, models.PAYMENT_METHOD_GATEWAY, payment.PaymentMethod)
}

func TestReconcileIsIdempotentOnReference(t *testing.T) {
	payments := newFakePaymentRepo()
	r := NewReconciler(payments)
	now := time.Now()

	n := &Notification{TransactionRef: "TXN-200", Amount: 5000, Status: "SUCCESS"}
	first, err := r.Reconcile(n, activeConfig(), now)
	require.NoError(t, err)

	second, err := r.Reconcile(n, activeConfig(), now)
	require.NoError(t, err)

	assert.Equal(t, first.PaymentID, second.PaymentID)
	assert.True(t, first.Created)
	assert.False(t, second.Created)

	count, _ := payments.Count()
	assert.Equal(t, int64(1), count)
}

func TestReconcileUpdatesStatusOnRedelivery(t *testing.T) {
	payments := newFakePaymentRepo()
	r := NewReconciler(payments)
	now := time.Now()

	partial := &Notification{TransactionRef: "TXN-300", Amount: 3000, Status: "PARTIAL"}
	first, err := r.Reconcile(partial, activeConfig(), now)
	require.NoError(t, err)

	completed := &Notification{TransactionRef: "TXN-300", Amount: 5000, Status: "SUCCESS"}
	second, err := r.Reconcile(completed, activeConfig(), now)
	require.NoError(t, err)
	require.Equal(t, first.PaymentID, second.PaymentID)

	payment, err := payments.GetByID(second.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PAYMENT_STATUS_PAID, payment.Status)
	// Default policy leaves the stored amount untouched on redelivery.
	assert.Equal(t, 3000.0, payment.Amount)
}

func TestReconcileAccumulatesPartialWhenConfigured(t *testing.T) {
	payments := newFakePaymentRepo()
	r := NewReconciler(payments)
	now := time.Now()

	cfg := activeConfig()
	cfg.AccumulatePartial = true

	first := &Notification{TransactionRef: "TXN-400", Amount: 3000, Status: "PARTIAL"}
	_, err := r.Reconcile(first, cfg, now)
	require.NoError(t, err)

	second := &Notification{TransactionRef: "TXN-400", Amount: 2000, Status: "PARTIAL"}
	result, err := r.Reconcile(second, cfg, now)
	require.NoError(t, err)

	payment, err := payments.GetByID(result.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, payment.Amount)
	assert.Equal(t, models.PAYMENT_STATUS_PARTIAL, payment.Status)
}

func TestReconcileWrapsPersistenceFailures(t *testing.T) {
	payments := newFakePaymentRepo()
	payments.failCreate = errors.New("connection refused")
	r := NewReconciler(payments)

	n := &Notification{TransactionRef: "TXN-500", Amount: 5000, Status: "SUCCESS"}
	_, err := r.Reconcile(n, activeConfig(), time.Now())
	require.Error(t, err)

	var recErr *ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.Contains(t, recErr.Error(), "failed to create payment record")
	assert.ErrorIs(t, err, payments.failCreate)
}

func TestReconcileFailedStatusStillRecorded(t *testing.T) {
	payments := newFakePaymentRepo()
	r := NewReconciler(payments)

	n := &Notification{TransactionRef: "TXN-600", Amount: 5000, Status: "DECLINED"}
	result, err := r.Reconcile(n, activeConfig(), time.Now())
	require.NoError(t, err)

	payment, err := payments.GetByID(result.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PAYMENT_STATUS_FAILED, payment.Status)
}
