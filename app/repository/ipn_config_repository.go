package repository

import (
	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

type ipnConfigRepository struct {
	db *gorm.DB
}

// NewIPNConfigRepository creates the webhook config repository.
func NewIPNConfigRepository(db *gorm.DB) IPNConfigRepository {
	return &ipnConfigRepository{db: db}
}

// GetActive returns the single active configuration row.
// gorm.ErrRecordNotFound when webhook processing is not configured.
func (r *ipnConfigRepository) GetActive() (*models.IPNConfig, error) {
	var config models.IPNConfig
	err := r.db.Where("is_active = ?", true).
		Order("created_at DESC").
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *ipnConfigRepository) GetLatest() (*models.IPNConfig, error) {
	var config models.IPNConfig
	err := r.db.Order("created_at DESC").First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Save persists the configuration. When the saved row is active, every other
// row is deactivated so at most one config is active at a time.
func (r *ipnConfigRepository) Save(config *models.IPNConfig) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(config).Error; err != nil {
			return err
		}
		if config.IsActive {
			return tx.Model(&models.IPNConfig{}).
				Where("id <> ?", config.ID).
				Update("is_active", false).Error
		}
		return nil
	})
}
