package models

import "time"

// IPNStatistic is the daily rollup row. It is materialized out-of-band by the
// statistics flusher and is read-only from the pipeline's perspective.
type IPNStatistic struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Date              time.Time `gorm:"type:date;not null;uniqueIndex" json:"date"`
	TotalReceived     int64     `gorm:"not null;default:0" json:"total_received"`
	TotalSuccess      int64     `gorm:"not null;default:0" json:"total_success"`
	TotalFailed       int64     `gorm:"not null;default:0" json:"total_failed"`
	TotalRetries      int64     `gorm:"not null;default:0" json:"total_retries"`
	AvgResponseTimeMs float64   `gorm:"not null;default:0" json:"avg_response_time_ms"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
