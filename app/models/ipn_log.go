package models

import "time"

const (
	IPN_STATUS_RECEIVED   = "received"
	IPN_STATUS_PROCESSING = "processing"
	IPN_STATUS_SUCCESS    = "success"
	IPN_STATUS_FAILED     = "failed"
	IPN_STATUS_RETRY      = "retry"
)

// IPNLog is the audit ledger: one row per inbound (or retried) notification
// attempt. Rows are created before any processing happens and are never
// deleted.
type IPNLog struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	TransactionRef string `gorm:"type:varchar(100);not null;index" json:"transaction_ref"`
	PaymentID      *uint  `gorm:"index" json:"payment_id"`

	// RequestPayload keeps the verbatim decoded body for audit and replay.
	RequestPayload  string `gorm:"type:longtext;not null" json:"request_payload"`
	ResponsePayload string `gorm:"type:text" json:"response_payload"`

	// Signature and SignatureValid are both nil when no signature header was
	// supplied; absence is distinct from mismatch.
	Signature      *string `gorm:"type:varchar(255)" json:"signature"`
	SignatureValid *bool   `gorm:"default:null" json:"signature_valid"`

	Status         string     `gorm:"type:varchar(20);not null;index" json:"status"`
	ErrorMessage   string     `gorm:"type:text" json:"error_message"`
	ResponseTimeMs *int64     `json:"response_time_ms"`
	RetryCount     int        `gorm:"not null;default:0" json:"retry_count"`
	IPAddress      string     `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent      string     `gorm:"type:varchar(255)" json:"user_agent"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	ProcessedAt    *time.Time `gorm:"type:timestamp;default:null" json:"processed_at"`
}

// IsTerminal reports whether the entry reached a final processing outcome.
func (l *IPNLog) IsTerminal() bool {
	return l.Status == IPN_STATUS_SUCCESS || l.Status == IPN_STATUS_FAILED
}
