package repository

import (
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

// PropertyRepository defines the interface for property-related database operations
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	List(offset, limit int) ([]models.Property, error)
	Update(property *models.Property) error
	Delete(id uint) error
	Count() (int64, error)
}

// TenantRepository defines the interface for tenant-related database operations
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id uint) (*models.Tenant, error)
	GetByProperty(propertyID uint) ([]models.Tenant, error)
	List(offset, limit int) ([]models.Tenant, error)
	Update(tenant *models.Tenant) error
	UpdateKYCStatus(id uint, status string) error
	Delete(id uint) error
	Count() (int64, error)
}

// UnitRepository defines the interface for unit-related database operations
type UnitRepository interface {
	Create(unit *models.Unit) error
	GetByID(id uint) (*models.Unit, error)
	GetByProperty(propertyID uint) ([]models.Unit, error)
	List(offset, limit int) ([]models.Unit, error)
	Update(unit *models.Unit) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
}

// PaymentRepository defines the interface for payment-related database operations
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByReference(referenceNumber string) (*models.Payment, error)
	GetByProperty(propertyID uint, offset, limit int) ([]models.Payment, error)
	GetByTenant(tenantID uint, offset, limit int) ([]models.Payment, error)
	List(offset, limit int) ([]models.Payment, error)
	Update(payment *models.Payment) error
	Count() (int64, error)
}

// AuditLogRepository defines the interface for audit trail operations
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
	List(offset, limit int) ([]models.AuditLog, error)
	GetByEntity(entityType string, entityID uint) ([]models.AuditLog, error)
}

// IPNLogRepository is the append-and-update notification ledger.
type IPNLogRepository interface {
	Create(entry *models.IPNLog) error
	Update(id uint, patch map[string]interface{}) error
	GetByID(id uint) (*models.IPNLog, error)
	List(status string, offset, limit int) ([]models.IPNLog, error)
	Count(status string) (int64, error)
	// FailStaleProcessing marks processing rows older than the threshold as
	// failed and returns how many were swept.
	FailStaleProcessing(olderThan time.Time, errorMessage string) (int64, error)
}

// IPNConfigRepository resolves the single active webhook configuration.
type IPNConfigRepository interface {
	GetActive() (*models.IPNConfig, error)
	GetLatest() (*models.IPNConfig, error)
	Save(config *models.IPNConfig) error
}

// IPNStatisticRepository maintains the daily rollup rows.
type IPNStatisticRepository interface {
	GetByDate(date time.Time) (*models.IPNStatistic, error)
	Save(stat *models.IPNStatistic) error
	ListRecent(limit int) ([]models.IPNStatistic, error)
}

// IPNTestLogRepository records admin test scenario runs.
type IPNTestLogRepository interface {
	Create(entry *models.IPNTestLog) error
	ListRecent(limit int) ([]models.IPNTestLog, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Property     PropertyRepository
	Tenant       TenantRepository
	Unit         UnitRepository
	Payment      PaymentRepository
	Audit        AuditLogRepository
	IPNLog       IPNLogRepository
	IPNConfig    IPNConfigRepository
	IPNStatistic IPNStatisticRepository
	IPNTestLog   IPNTestLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Property:     NewPropertyRepository(db),
		Tenant:       NewTenantRepository(db),
		Unit:         NewUnitRepository(db),
		Payment:      NewPaymentRepository(db),
		Audit:        NewAuditLogRepository(db),
		IPNLog:       NewIPNLogRepository(db),
		IPNConfig:    NewIPNConfigRepository(db),
		IPNStatistic: NewIPNStatisticRepository(db),
		IPNTestLog:   NewIPNTestLogRepository(db),
	}
}
