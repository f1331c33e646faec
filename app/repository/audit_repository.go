package repository

import (
	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepository) List(offset, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *auditLogRepository) GetByEntity(entityType string, entityID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
