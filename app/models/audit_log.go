package models

import "time"

const (
	ENTITY_TENANT  = "tenant"
	ENTITY_PAYMENT = "payment"
	ENTITY_UNIT    = "unit"
	ENTITY_SYSTEM  = "system"
)

type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Actor       string    `gorm:"type:varchar(150);not null" json:"actor"`
	Description string    `gorm:"type:text" json:"description"`
	EntityType  string    `gorm:"type:varchar(20);not null;index" json:"entity_type"`
	EntityID    *uint     `gorm:"index" json:"entity_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
