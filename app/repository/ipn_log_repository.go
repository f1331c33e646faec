package repository

import (
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

type ipnLogRepository struct {
	db *gorm.DB
}

// NewIPNLogRepository creates the notification ledger repository.
func NewIPNLogRepository(db *gorm.DB) IPNLogRepository {
	return &ipnLogRepository{db: db}
}

func (r *ipnLogRepository) Create(entry *models.IPNLog) error {
	return r.db.Create(entry).Error
}

// Update applies a partial patch to a single ledger row. One attempt has one
// writer, so plain single-row updates are sufficient here.
func (r *ipnLogRepository) Update(id uint, patch map[string]interface{}) error {
	return r.db.Model(&models.IPNLog{}).Where("id = ?", id).Updates(patch).Error
}

func (r *ipnLogRepository) GetByID(id uint) (*models.IPNLog, error) {
	var entry models.IPNLog
	err := r.db.First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ipnLogRepository) List(status string, offset, limit int) ([]models.IPNLog, error) {
	var entries []models.IPNLog
	q := r.db.Model(&models.IPNLog{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Offset(offset).Limit(limit).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *ipnLogRepository) Count(status string) (int64, error) {
	var count int64
	q := r.db.Model(&models.IPNLog{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *ipnLogRepository) FailStaleProcessing(olderThan time.Time, errorMessage string) (int64, error) {
	now := time.Now()
	tx := r.db.Model(&models.IPNLog{}).
		Where("status = ? AND created_at < ?", models.IPN_STATUS_PROCESSING, olderThan).
		Updates(map[string]interface{}{
			"status":        models.IPN_STATUS_FAILED,
			"error_message": errorMessage,
			"processed_at":  &now,
		})
	return tx.RowsAffected, tx.Error
}
