package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PAYMENT_STATUS_PAID    = "paid"
	PAYMENT_STATUS_PARTIAL = "partial"
	PAYMENT_STATUS_FAILED  = "failed"

	// Canonical gateway name used when a notification carries no method.
	PAYMENT_METHOD_GATEWAY = "Jenga PGW"
)

// Payment is the reconciled business record an IPN resolves to.
// ReferenceNumber is the correlation key shared with the gateway; it is
// indexed but not unique, a partial payment and its completion may share it.
type Payment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	TenantID        *uint      `gorm:"index" json:"tenant_id"`
	PropertyID      *uint      `gorm:"index" json:"property_id"`
	UnitID          *uint      `gorm:"index" json:"unit_id"`
	Amount          float64    `gorm:"type:decimal(12,2);not null;default:0" json:"amount" validate:"gte=0"`
	PaymentDate     time.Time  `gorm:"not null" json:"payment_date"`
	DueDate         *time.Time `gorm:"type:timestamp;default:null" json:"due_date"`
	Status          string     `gorm:"type:varchar(20);not null;index" json:"status" validate:"required,oneof=paid partial failed"`
	PaymentMethod   string     `gorm:"type:varchar(50)" json:"payment_method" validate:"max=50"`
	ReferenceNumber string     `gorm:"type:varchar(100);index" json:"reference_number" validate:"max=100"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Payment) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
