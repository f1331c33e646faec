package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	KYC_PENDING  = "pending"
	KYC_VERIFIED = "verified"
	KYC_REJECTED = "rejected"
)

type Tenant struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	PropertyID    *uint      `gorm:"index" json:"property_id"`
	Name          string     `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email         string     `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email,max=200"`
	Phone         string     `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	IDNumber      string     `gorm:"type:varchar(50)" json:"id_number" validate:"max=50"`
	DepositAmount float64    `gorm:"type:decimal(12,2);default:0" json:"deposit_amount" validate:"gte=0"`
	KYCStatus     string     `gorm:"type:varchar(20);default:'pending'" json:"kyc_status" validate:"omitempty,oneof=pending verified rejected"`
	LeaseStart    *time.Time `gorm:"type:timestamp;default:null" json:"lease_start"`
	LeaseEnd      *time.Time `gorm:"type:timestamp;default:null" json:"lease_end"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Tenant) Validate() error {
	v := validator.New()

	return v.Struct(t)
}
