package repository

import (
	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository instance
func NewUnitRepository(db *gorm.DB) UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(unit *models.Unit) error {
	return r.db.Create(unit).Error
}

func (r *unitRepository) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	err := r.db.First(&unit, id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *unitRepository) GetByProperty(propertyID uint) ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.Where("property_id = ?", propertyID).Order("floor ASC, room_number ASC").Find(&units).Error
	return units, err
}

func (r *unitRepository) List(offset, limit int) ([]models.Unit, error) {
	var units []models.Unit
	err := r.db.Offset(offset).Limit(limit).Order("property_id ASC, floor ASC").Find(&units).Error
	return units, err
}

func (r *unitRepository) Update(unit *models.Unit) error {
	return r.db.Save(unit).Error
}

func (r *unitRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Unit{}).Where("id = ?", id).Update("status", status).Error
}

func (r *unitRepository) Delete(id uint) error {
	return r.db.Delete(&models.Unit{}, id).Error
}
