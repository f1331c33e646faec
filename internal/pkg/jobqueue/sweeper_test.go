package jobqueue

import (
	"testing"
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubConfigRepo struct {
	active *models.IPNConfig
}

func (s *stubConfigRepo) GetActive() (*models.IPNConfig, error) {
	if s.active == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.active, nil
}

func (s *stubConfigRepo) GetLatest() (*models.IPNConfig, error) { return s.GetActive() }

func (s *stubConfigRepo) Save(config *models.IPNConfig) error { return nil }

type stubLogRepo struct {
	olderThan    time.Time
	errorMessage string
	called       bool
}

func (s *stubLogRepo) Create(entry *models.IPNLog) error { return nil }

func (s *stubLogRepo) Update(id uint, patch map[string]interface{}) error { return nil }

func (s *stubLogRepo) GetByID(id uint) (*models.IPNLog, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLogRepo) List(status string, offset, limit int) ([]models.IPNLog, error) {
	return nil, nil
}

func (s *stubLogRepo) Count(status string) (int64, error) { return 0, nil }

func (s *stubLogRepo) FailStaleProcessing(olderThan time.Time, errorMessage string) (int64, error) {
	s.called = true
	s.olderThan = olderThan
	s.errorMessage = errorMessage
	return 2, nil
}

func TestSweepUsesConfigTimeout(t *testing.T) {
	logs := &stubLogRepo{}
	repos := &repository.Repositories{
		IPNLog:    logs,
		IPNConfig: &stubConfigRepo{active: &models.IPNConfig{IsActive: true, TimeoutSeconds: 120}},
	}

	before := time.Now()
	SweepStaleProcessing(repos)

	require.True(t, logs.called)
	assert.Equal(t, "processing timed out", logs.errorMessage)
	// Threshold comes from the config: rows must be at least 120s old.
	cutoff := before.Add(-120 * time.Second)
	assert.WithinDuration(t, cutoff, logs.olderThan, 2*time.Second)
}

func TestSweepFloorsShortTimeouts(t *testing.T) {
	logs := &stubLogRepo{}
	repos := &repository.Repositories{
		IPNLog:    logs,
		IPNConfig: &stubConfigRepo{active: &models.IPNConfig{IsActive: true, TimeoutSeconds: 5}},
	}

	before := time.Now()
	SweepStaleProcessing(repos)

	require.True(t, logs.called)
	cutoff := before.Add(-30 * time.Second)
	assert.WithinDuration(t, cutoff, logs.olderThan, 2*time.Second)
}

func TestSweepRunsWithoutActiveConfig(t *testing.T) {
	logs := &stubLogRepo{}
	repos := &repository.Repositories{
		IPNLog:    logs,
		IPNConfig: &stubConfigRepo{},
	}

	SweepStaleProcessing(repos)
	assert.True(t, logs.called)
}
