package repository

import (
	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

type ipnTestLogRepository struct {
	db *gorm.DB
}

// NewIPNTestLogRepository creates the scenario run log repository.
func NewIPNTestLogRepository(db *gorm.DB) IPNTestLogRepository {
	return &ipnTestLogRepository{db: db}
}

func (r *ipnTestLogRepository) Create(entry *models.IPNTestLog) error {
	return r.db.Create(entry).Error
}

func (r *ipnTestLogRepository) ListRecent(limit int) ([]models.IPNTestLog, error) {
	var entries []models.IPNTestLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
