package ipn

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"gorm.io/gorm"
)

// StatsRecorder receives pipeline outcome events for the daily rollup.
// Implemented by the statistics package; nil disables recording.
type StatsRecorder interface {
	RecordReceived()
	RecordSuccess(responseTimeMs int64)
	RecordFailure(responseTimeMs int64)
	RecordRetry()
}

// Request carries everything the pipeline needs from an inbound HTTP call.
type Request struct {
	RawBody    []byte
	Signature  string // empty when the header was absent
	IPAddress  string
	UserAgent  string
	ReceivedAt time.Time
}

// Result is the pipeline outcome the transport layer turns into a response.
type Result struct {
	HTTPStatus int
	Success    bool
	Message    string
	PaymentID  *uint
	LogID      *uint
}

// Service drives a notification through the pipeline:
// ledger create, signature verification, reconciliation, ledger finalize.
// All collaborators are injected so tests can substitute in-memory stores.
type Service struct {
	logs     repository.IPNLogRepository
	configs  repository.IPNConfigRepository
	audits   repository.AuditLogRepository
	stats    StatsRecorder
	reconcil *Reconciler
	now      func() time.Time
}

// NewService wires the pipeline. audits and stats may be nil.
func NewService(
	logs repository.IPNLogRepository,
	configs repository.IPNConfigRepository,
	payments repository.PaymentRepository,
	audits repository.AuditLogRepository,
	stats StatsRecorder,
) *Service {
	return &Service{
		logs:     logs,
		configs:  configs,
		audits:   audits,
		stats:    stats,
		reconcil: NewReconciler(payments),
		now:      time.Now,
	}
}

// Process runs one notification through the pipeline. Every exit path except
// the not-configured and malformed-body short circuits leaves a terminal
// ledger row behind.
func (s *Service) Process(req Request) Result {
	start := req.ReceivedAt
	if start.IsZero() {
		start = s.now()
	}

	notification, err := ParseNotification(req.RawBody)
	if err != nil {
		requestsMalformedCounter.Inc()
		return Result{
			HTTPStatus: 500,
			Message:    "Internal server error",
		}
	}

	config, err := s.configs.GetActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			requestsNotConfiguredCounter.Inc()
			return Result{
				HTTPStatus: 503,
				Message:    ErrNotConfigured.Error(),
			}
		}
		log.Errorf("ipn: config lookup failed: %v", err)
		return Result{HTTPStatus: 500, Message: "Internal server error"}
	}

	// Verify before logging so the verdict lands on the received row; the
	// verification itself is pure and has no side effects to order against.
	var signature *string
	var signatureValid *bool
	if req.Signature != "" {
		sig := req.Signature
		signature = &sig
		valid := VerifySignature(req.RawBody, req.Signature, config.WebhookSecret)
		signatureValid = &valid
	}

	entry := &models.IPNLog{
		TransactionRef: notification.Reference(),
		RequestPayload: string(req.RawBody),
		Signature:      signature,
		SignatureValid: signatureValid,
		Status:         models.IPN_STATUS_RECEIVED,
		IPAddress:      req.IPAddress,
		UserAgent:      req.UserAgent,
	}
	if err := s.logs.Create(entry); err != nil {
		// Audit-first: without a durable trace the notification must not be
		// processed. The loss itself goes to the operational log.
		log.Errorf("ipn: failed to create ledger entry for ref %s: %v", notification.Reference(), err)
		return Result{HTTPStatus: 500, Message: "Failed to record notification"}
	}

	if s.stats != nil {
		s.stats.RecordReceived()
	}

	rejected := req.Signature != "" && signatureValid != nil && !*signatureValid
	missingRequired := req.Signature == "" && config.RequireSignature
	if rejected || missingRequired {
		msg := ErrInvalidSignature.Error()
		if missingRequired {
			msg = "Missing signature"
		}
		s.finalize(entry.ID, start, map[string]interface{}{
			"status":        models.IPN_STATUS_FAILED,
			"error_message": msg,
		})
		requestsRejectedCounter.Inc()
		if s.stats != nil {
			s.stats.RecordFailure(s.elapsedMs(start))
		}
		return Result{HTTPStatus: 401, Message: msg, LogID: &entry.ID}
	}

	if err := s.logs.Update(entry.ID, map[string]interface{}{"status": models.IPN_STATUS_PROCESSING}); err != nil {
		log.Errorf("ipn: failed to mark entry %d processing: %v", entry.ID, err)
	}

	result, err := s.reconcil.Reconcile(notification, config, s.now())
	if err != nil {
		elapsed := s.elapsedMs(start)
		s.finalize(entry.ID, start, map[string]interface{}{
			"status":        models.IPN_STATUS_FAILED,
			"error_message": err.Error(),
		})
		requestsFailedCounter.Inc()
		requestDurationHistogram.Update(float64(elapsed))
		if s.stats != nil {
			s.stats.RecordFailure(elapsed)
		}
		return Result{HTTPStatus: 500, Message: err.Error(), LogID: &entry.ID}
	}

	message := "Payment processed successfully"
	if !result.Created {
		message = "Payment updated successfully"
	}
	responsePayload, _ := json.Marshal(map[string]interface{}{
		"success":   true,
		"paymentId": result.PaymentID,
	})
	elapsed := s.elapsedMs(start)
	s.finalize(entry.ID, start, map[string]interface{}{
		"status":           models.IPN_STATUS_SUCCESS,
		"payment_id":       result.PaymentID,
		"response_payload": string(responsePayload),
	})
	s.recordAudit(notification, result)
	requestsSuccessCounter.Inc()
	requestDurationHistogram.Update(float64(elapsed))
	if s.stats != nil {
		s.stats.RecordSuccess(elapsed)
	}

	paymentID := result.PaymentID
	return Result{
		HTTPStatus: 200,
		Success:    true,
		Message:    message,
		PaymentID:  &paymentID,
		LogID:      &entry.ID,
	}
}

// Retry re-queues a failed ledger entry: bookkeeping only, the external
// redelivery mechanism re-invokes the endpoint with the original payload.
func (s *Service) Retry(logID uint) error {
	entry, err := s.logs.GetByID(logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	if entry.Status != models.IPN_STATUS_FAILED {
		return ErrNotRetryable
	}

	if err := s.logs.Update(logID, map[string]interface{}{
		"status":      models.IPN_STATUS_RETRY,
		"retry_count": entry.RetryCount + 1,
	}); err != nil {
		return err
	}
	retriesCounter.Inc()
	if s.stats != nil {
		s.stats.RecordRetry()
	}
	return nil
}

// finalize writes the terminal patch plus timing. Ledger updates after the
// initial create are best-effort: a failure here is reported operationally
// but does not change the response contract.
func (s *Service) finalize(logID uint, start time.Time, patch map[string]interface{}) {
	now := s.now()
	patch["response_time_ms"] = s.elapsedMs(start)
	patch["processed_at"] = &now
	if err := s.logs.Update(logID, patch); err != nil {
		log.Errorf("ipn: failed to finalize ledger entry %d: %v", logID, err)
	}
}

func (s *Service) elapsedMs(start time.Time) int64 {
	return s.now().Sub(start).Milliseconds()
}

func (s *Service) recordAudit(n *Notification, result ReconcileResult) {
	if s.audits == nil {
		return
	}
	action := "payment.updated"
	if result.Created {
		action = "payment.created"
	}
	paymentID := result.PaymentID
	entry := &models.AuditLog{
		Action:      action,
		Actor:       "ipn-pipeline",
		Description: fmt.Sprintf("IPN %s reconciled to payment %d", n.Reference(), result.PaymentID),
		EntityType:  models.ENTITY_PAYMENT,
		EntityID:    &paymentID,
	}
	if err := s.audits.Create(entry); err != nil {
		log.Errorf("ipn: failed to append audit entry: %v", err)
	}
}
