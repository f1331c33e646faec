package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	UNIT_TYPE_RESIDENTIAL = "residential"
	UNIT_TYPE_SHOP        = "shop"

	UNIT_STATUS_PAID    = "paid"
	UNIT_STATUS_OVERDUE = "overdue"
	UNIT_STATUS_PARTIAL = "partial"
	UNIT_STATUS_VACANT  = "vacant"
)

type Unit struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PropertyID uint       `gorm:"not null;index" json:"property_id" validate:"required"`
	TenantID   *uint      `gorm:"index" json:"tenant_id"`
	RoomNumber string     `gorm:"type:varchar(20);not null" json:"room_number" validate:"required,max=20"`
	Floor      int        `gorm:"not null;default:0" json:"floor"`
	Type       string     `gorm:"type:varchar(20);default:'residential'" json:"type" validate:"omitempty,oneof=residential shop"`
	Rent       float64    `gorm:"type:decimal(12,2);default:0" json:"rent" validate:"gte=0"`
	Status     string     `gorm:"type:varchar(20);default:'vacant';index" json:"status" validate:"omitempty,oneof=paid overdue partial vacant"`
	DueDate    *time.Time `gorm:"type:timestamp;default:null" json:"due_date"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *Unit) Validate() error {
	v := validator.New()

	return v.Struct(u)
}
