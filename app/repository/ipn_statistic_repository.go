package repository

import (
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

type ipnStatisticRepository struct {
	db *gorm.DB
}

// NewIPNStatisticRepository creates the daily rollup repository.
func NewIPNStatisticRepository(db *gorm.DB) IPNStatisticRepository {
	return &ipnStatisticRepository{db: db}
}

func (r *ipnStatisticRepository) GetByDate(date time.Time) (*models.IPNStatistic, error) {
	var stat models.IPNStatistic
	day := date.Truncate(24 * time.Hour)
	err := r.db.Where("date = ?", day.Format("2006-01-02")).First(&stat).Error
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *ipnStatisticRepository) Save(stat *models.IPNStatistic) error {
	return r.db.Save(stat).Error
}

func (r *ipnStatisticRepository) ListRecent(limit int) ([]models.IPNStatistic, error) {
	var stats []models.IPNStatistic
	err := r.db.Order("date DESC").Limit(limit).Find(&stats).Error
	return stats, err
}
