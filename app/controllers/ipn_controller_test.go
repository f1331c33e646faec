package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/ipn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory repositories backing the endpoint tests.

type memLogRepo struct {
	entries map[uint]*models.IPNLog
	nextID  uint
}

func newMemLogRepo() *memLogRepo {
	return &memLogRepo{entries: map[uint]*models.IPNLog{}}
}

func (m *memLogRepo) Create(entry *models.IPNLog) error {
	m.nextID++
	entry.ID = m.nextID
	entry.CreatedAt = time.Now()
	clone := *entry
	m.entries[entry.ID] = &clone
	return nil
}

func (m *memLogRepo) Update(id uint, patch map[string]interface{}) error {
	entry, ok := m.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := patch["status"]; ok {
		entry.Status = v.(string)
	}
	if v, ok := patch["error_message"]; ok {
		entry.ErrorMessage = v.(string)
	}
	if v, ok := patch["payment_id"]; ok {
		id := v.(uint)
		entry.PaymentID = &id
	}
	if v, ok := patch["retry_count"]; ok {
		entry.RetryCount = v.(int)
	}
	return nil
}

func (m *memLogRepo) GetByID(id uint) (*models.IPNLog, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *entry
	return &clone, nil
}

func (m *memLogRepo) List(status string, offset, limit int) ([]models.IPNLog, error) {
	var out []models.IPNLog
	for _, entry := range m.entries {
		if status == "" || entry.Status == status {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (m *memLogRepo) Count(status string) (int64, error) {
	entries, _ := m.List(status, 0, 0)
	return int64(len(entries)), nil
}

func (m *memLogRepo) FailStaleProcessing(olderThan time.Time, errorMessage string) (int64, error) {
	return 0, nil
}

type memConfigRepo struct {
	active *models.IPNConfig
}

func (m *memConfigRepo) GetActive() (*models.IPNConfig, error) {
	if m.active == nil || !m.active.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *m.active
	return &clone, nil
}

func (m *memConfigRepo) GetLatest() (*models.IPNConfig, error) {
	return m.GetActive()
}

func (m *memConfigRepo) Save(config *models.IPNConfig) error {
	clone := *config
	m.active = &clone
	return nil
}

type memPaymentRepo struct {
	payments map[uint]*models.Payment
	nextID   uint
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: map[uint]*models.Payment{}}
}

func (m *memPaymentRepo) Create(payment *models.Payment) error {
	m.nextID++
	payment.ID = m.nextID
	payment.CreatedAt = time.Now()
	clone := *payment
	m.payments[payment.ID] = &clone
	return nil
}

func (m *memPaymentRepo) GetByID(id uint) (*models.Payment, error) {
	payment, ok := m.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *payment
	return &clone, nil
}

func (m *memPaymentRepo) GetByReference(referenceNumber string) (*models.Payment, error) {
	for _, payment := range m.payments {
		if payment.ReferenceNumber == referenceNumber {
			clone := *payment
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memPaymentRepo) GetByProperty(propertyID uint, offset, limit int) ([]models.Payment, error) {
	return nil, nil
}

func (m *memPaymentRepo) GetByTenant(tenantID uint, offset, limit int) ([]models.Payment, error) {
	return nil, nil
}

func (m *memPaymentRepo) List(offset, limit int) ([]models.Payment, error) {
	return nil, nil
}

func (m *memPaymentRepo) Update(payment *models.Payment) error {
	if _, ok := m.payments[payment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *payment
	m.payments[payment.ID] = &clone
	return nil
}

func (m *memPaymentRepo) Count() (int64, error) {
	return int64(len(m.payments)), nil
}

type endpointFixture struct {
	app      *fiber.App
	logs     *memLogRepo
	configs  *memConfigRepo
	payments *memPaymentRepo
}

func newEndpointFixture(config *models.IPNConfig) *endpointFixture {
	f := &endpointFixture{
		logs:     newMemLogRepo(),
		configs:  &memConfigRepo{active: config},
		payments: newMemPaymentRepo(),
	}
	service := ipn.NewService(f.logs, f.configs, f.payments, nil, nil)
	controller := NewIPNController(service)

	f.app = fiber.New()
	f.app.Post("/api/jenga/ipn", controller.HandleIPN)
	return f
}

func testConfig() *models.IPNConfig {
	return &models.IPNConfig{ID: 1, WebhookSecret: "endpoint-secret", IsActive: true, TimeoutSeconds: 30}
}

func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func postIPN(t *testing.T, f *endpointFixture, body []byte, signature string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/jenga/ipn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestHandleIPNSuccessfulPayment(t *testing.T) {
	f := newEndpointFixture(testConfig())
	body := []byte(`{"transactionRef":"TXN-E1","amount":5000,"currency":"KES","status":"SUCCESS"}`)

	status, decoded := postIPN(t, f, body, sign(body, "endpoint-secret"))

	assert.Equal(t, 200, status)
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "Payment processed successfully", decoded["message"])
	assert.NotNil(t, decoded["paymentId"])

	count, _ := f.payments.Count()
	assert.Equal(t, int64(1), count)
}

func TestHandleIPNDuplicateReferenceUpdatesSamePayment(t *testing.T) {
	f := newEndpointFixture(testConfig())
	body := []byte(`{"transactionRef":"TXN-E2","amount":5000,"status":"SUCCESS"}`)
	signature := sign(body, "endpoint-secret")

	_, first := postIPN(t, f, body, signature)
	status, second := postIPN(t, f, body, signature)

	assert.Equal(t, 200, status)
	assert.Equal(t, "Payment updated successfully", second["message"])
	assert.Equal(t, first["paymentId"], second["paymentId"])

	count, _ := f.payments.Count()
	assert.Equal(t, int64(1), count)
}

func TestHandleIPNInvalidSignature(t *testing.T) {
	f := newEndpointFixture(testConfig())
	body := []byte(`{"transactionRef":"TXN-E3","amount":5000,"status":"SUCCESS"}`)

	status, decoded := postIPN(t, f, body, sign(body, "wrong-secret"))

	assert.Equal(t, 401, status)
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "Invalid signature", decoded["message"])

	count, _ := f.payments.Count()
	assert.Equal(t, int64(0), count)
	// The rejected delivery still left a ledger row behind.
	logCount, _ := f.logs.Count("")
	assert.Equal(t, int64(1), logCount)
}

func TestHandleIPNWithoutActiveConfig(t *testing.T) {
	f := newEndpointFixture(nil)
	body := []byte(`{"transactionRef":"TXN-E4"}`)

	status, decoded := postIPN(t, f, body, "")

	assert.Equal(t, 503, status)
	assert.Equal(t, "IPN processing is not configured or inactive", decoded["message"])
	logCount, _ := f.logs.Count("")
	assert.Equal(t, int64(0), logCount)
}

func TestHandleIPNMalformedBody(t *testing.T) {
	f := newEndpointFixture(testConfig())

	status, decoded := postIPN(t, f, []byte(`{broken`), "")

	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", decoded["message"])
	logCount, _ := f.logs.Count("")
	assert.Equal(t, int64(0), logCount)
}

func TestHandleIPNCapturesClientMetadata(t *testing.T) {
	f := newEndpointFixture(testConfig())
	body := []byte(`{"transactionRef":"TXN-E5","amount":100,"status":"SUCCESS"}`)

	req := httptest.NewRequest("POST", "/api/jenga/ipn", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, sign(body, "endpoint-secret"))
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	req.Header.Set("User-Agent", "jenga-gateway/2.1")

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	entries, _ := f.logs.List("", 0, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, "198.51.100.7", entries[0].IPAddress)
	assert.Equal(t, "jenga-gateway/2.1", entries[0].UserAgent)
}
