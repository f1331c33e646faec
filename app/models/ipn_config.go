package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// IPNConfig holds the webhook processing policy. At most one row is active
// at a time; the endpoint refuses to process when none is.
type IPNConfig struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	WebhookURL    string `gorm:"type:varchar(255)" json:"webhook_url" validate:"omitempty,url,max=255"`
	WebhookSecret string `gorm:"type:varchar(255)" json:"-" validate:"max=255"`
	IsActive      bool   `gorm:"default:false;index" json:"is_active"`

	// RequireSignature rejects unsigned notifications with 401. Off by
	// default: the gateway sends unsigned calls from some legacy channels.
	RequireSignature bool `gorm:"default:false" json:"require_signature"`

	// AccumulatePartial adds a partial payment's amount onto the existing
	// record instead of leaving the stored amount untouched.
	AccumulatePartial bool `gorm:"default:false" json:"accumulate_partial"`

	RetryAttempts     int        `gorm:"default:3" json:"retry_attempts" validate:"gte=0,lte=10"`
	RetryDelaySeconds int        `gorm:"default:60" json:"retry_delay_seconds" validate:"gte=0,lte=3600"`
	TimeoutSeconds    int        `gorm:"default:30" json:"timeout_seconds" validate:"gte=0,lte=600"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *IPNConfig) Validate() error {
	v := validator.New()

	return v.Struct(c)
}
