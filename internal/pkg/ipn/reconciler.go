package ipn

import (
	"errors"
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"gorm.io/gorm"
)

// ReconcileResult reports which payment record a notification resolved to.
type ReconcileResult struct {
	PaymentID uint
	Created   bool
}

// Reconciler maps notifications onto payment records: look up by reference,
// create when absent, otherwise apply the status transition in place.
type Reconciler struct {
	payments repository.PaymentRepository
}

// NewReconciler creates a reconciler over an injected payment repository.
func NewReconciler(payments repository.PaymentRepository) *Reconciler {
	return &Reconciler{payments: payments}
}

// Reconcile is idempotent on the reference number: the first delivery creates
// the record, every further delivery with the same reference updates that
// same record. Nothing partially commits; any persistence failure surfaces as
// a ReconciliationError.
func (r *Reconciler) Reconcile(n *Notification, cfg *models.IPNConfig, now time.Time) (ReconcileResult, error) {
	ref := n.Reference()
	status := n.GatewayStatus()

	existing, err := r.payments.GetByReference(ref)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ReconcileResult{}, &ReconciliationError{Cause: "failed to look up payment record", Err: err}
	}

	if existing == nil {
		payment := &models.Payment{
			Amount:          n.Amount,
			PaymentDate:     n.PaymentDate(now),
			Status:          status.PaymentStatus(),
			PaymentMethod:   n.Method(models.PAYMENT_METHOD_GATEWAY),
			ReferenceNumber: ref,
		}
		if err := r.payments.Create(payment); err != nil {
			return ReconcileResult{}, &ReconciliationError{Cause: "failed to create payment record", Err: err}
		}
		return ReconcileResult{PaymentID: payment.ID, Created: true}, nil
	}

	existing.Status = status.PaymentStatus()
	existing.PaymentDate = n.PaymentDate(now)
	// Amounts are overwritten-by-omission: a repeat delivery leaves the stored
	// amount alone unless the accumulate-partial policy is enabled.
	if cfg != nil && cfg.AccumulatePartial && status == GatewayStatusPartial {
		existing.Amount += n.Amount
	}
	if err := r.payments.Update(existing); err != nil {
		return ReconcileResult{}, &ReconciliationError{Cause: "failed to update payment record", Err: err}
	}
	return ReconcileResult{PaymentID: existing.ID, Created: false}, nil
}
