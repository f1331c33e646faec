package ipn

import (
	"strings"
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"gorm.io/gorm"
)

// In-memory repositories so pipeline tests run without a database.

type fakeLogRepo struct {
	entries    map[uint]*models.IPNLog
	nextID     uint
	failCreate error
	failUpdate error
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{entries: map[uint]*models.IPNLog{}}
}

func (f *fakeLogRepo) Create(entry *models.IPNLog) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.nextID++
	entry.ID = f.nextID
	entry.CreatedAt = time.Now()
	clone := *entry
	f.entries[entry.ID] = &clone
	return nil
}

func (f *fakeLogRepo) Update(id uint, patch map[string]interface{}) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	entry, ok := f.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range patch {
		switch key {
		case "status":
			entry.Status = value.(string)
		case "error_message":
			entry.ErrorMessage = value.(string)
		case "response_payload":
			entry.ResponsePayload = value.(string)
		case "payment_id":
			id := value.(uint)
			entry.PaymentID = &id
		case "retry_count":
			entry.RetryCount = value.(int)
		case "response_time_ms":
			ms := value.(int64)
			entry.ResponseTimeMs = &ms
		case "processed_at":
			entry.ProcessedAt = value.(*time.Time)
		}
	}
	return nil
}

func (f *fakeLogRepo) GetByID(id uint) (*models.IPNLog, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *entry
	return &clone, nil
}

func (f *fakeLogRepo) List(status string, offset, limit int) ([]models.IPNLog, error) {
	var out []models.IPNLog
	for _, entry := range f.entries {
		if status == "" || entry.Status == status {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) Count(status string) (int64, error) {
	entries, _ := f.List(status, 0, 0)
	return int64(len(entries)), nil
}

func (f *fakeLogRepo) FailStaleProcessing(olderThan time.Time, errorMessage string) (int64, error) {
	var swept int64
	for _, entry := range f.entries {
		if entry.Status == models.IPN_STATUS_PROCESSING && entry.CreatedAt.Before(olderThan) {
			entry.Status = models.IPN_STATUS_FAILED
			entry.ErrorMessage = errorMessage
			swept++
		}
	}
	return swept, nil
}

type fakeConfigRepo struct {
	active *models.IPNConfig
}

func (f *fakeConfigRepo) GetActive() (*models.IPNConfig, error) {
	if f.active == nil || !f.active.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *f.active
	return &clone, nil
}

func (f *fakeConfigRepo) GetLatest() (*models.IPNConfig, error) {
	if f.active == nil {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *f.active
	return &clone, nil
}

func (f *fakeConfigRepo) Save(config *models.IPNConfig) error {
	clone := *config
	f.active = &clone
	return nil
}

type fakePaymentRepo struct {
	payments   map[uint]*models.Payment
	nextID     uint
	failGet    error
	failCreate error
	failUpdate error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uint]*models.Payment{}}
}

func (f *fakePaymentRepo) Create(payment *models.Payment) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.nextID++
	payment.ID = f.nextID
	payment.CreatedAt = time.Now()
	clone := *payment
	f.payments[payment.ID] = &clone
	return nil
}

func (f *fakePaymentRepo) GetByID(id uint) (*models.Payment, error) {
	payment, ok := f.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *payment
	return &clone, nil
}

func (f *fakePaymentRepo) GetByReference(referenceNumber string) (*models.Payment, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	var latest *models.Payment
	for _, payment := range f.payments {
		if strings.EqualFold(payment.ReferenceNumber, referenceNumber) {
			if latest == nil || payment.CreatedAt.After(latest.CreatedAt) {
				latest = payment
			}
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *latest
	return &clone, nil
}

func (f *fakePaymentRepo) GetByProperty(propertyID uint, offset, limit int) ([]models.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) GetByTenant(tenantID uint, offset, limit int) ([]models.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) List(offset, limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, payment := range f.payments {
		out = append(out, *payment)
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(payment *models.Payment) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	if _, ok := f.payments[payment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *payment
	f.payments[payment.ID] = &clone
	return nil
}

func (f *fakePaymentRepo) Count() (int64, error) {
	return int64(len(f.payments)), nil
}

type fakeAuditRepo struct {
	entries []models.AuditLog
}

func (f *fakeAuditRepo) Create(entry *models.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(offset, limit int) ([]models.AuditLog, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) GetByEntity(entityType string, entityID uint) ([]models.AuditLog, error) {
	return nil, nil
}

type fakeTestLogRepo struct {
	entries []models.IPNTestLog
}

func (f *fakeTestLogRepo) Create(entry *models.IPNTestLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeTestLogRepo) ListRecent(limit int) ([]models.IPNTestLog, error) {
	return f.entries, nil
}

type fakeStats struct {
	received  int
	successes int
	failures  int
	retries   int
}

func (f *fakeStats) RecordReceived()        { f.received++ }
func (f *fakeStats) RecordSuccess(ms int64) { f.successes++ }
func (f *fakeStats) RecordFailure(ms int64) { f.failures++ }
func (f *fakeStats) RecordRetry()           { f.retries++ }

func activeConfig() *models.IPNConfig {
	return &models.IPNConfig{
		ID:             1,
		WebhookSecret:  "test-secret",
		IsActive:       true,
		RetryAttempts:  3,
		TimeoutSeconds: 30,
	}
}
