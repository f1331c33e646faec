package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Property struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Label      string    `gorm:"type:varchar(50)" json:"label" validate:"max=50"`
	Address    string    `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	TotalUnits int       `gorm:"not null;default:0" json:"total_units" validate:"gte=0"`
	RentAmount float64   `gorm:"type:decimal(12,2);default:0" json:"rent_amount" validate:"gte=0"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Property) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
