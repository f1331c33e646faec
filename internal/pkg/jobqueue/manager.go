package jobqueue

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/statistics"
)

const (
	defaultSweepInterval = 1 * time.Minute
	defaultFlushInterval = 5 * time.Minute
)

// Manager runs the background tasks: the stale-processing sweeper and the
// daily statistics flusher.
type Manager struct {
	repos        *repository.Repositories
	sweepTicker  *time.Ticker
	flushTicker  *time.Ticker
	stopCh       chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
	running      bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global background task manager (singleton).
func GetManager(repos *repository.Repositories) *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			repos:  repos,
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// Start starts the background tickers.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so the manager can be
	// restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting background tasks")

	m.sweepTicker = time.NewTicker(defaultSweepInterval)
	m.wg.Add(1)
	go m.sweepWorker()

	m.flushTicker = time.NewTicker(defaultFlushInterval)
	m.wg.Add(1)
	go m.flushWorker()
}

// Stop stops all background tasks and waits for workers to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping background tasks")
	close(m.stopCh)
	m.sweepTicker.Stop()
	m.flushTicker.Stop()
	m.wg.Wait()
	m.running = false
}

func (m *Manager) sweepWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.sweepTicker.C:
			SweepStaleProcessing(m.repos)
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) flushWorker() {
	defer m.wg.Done()

	for {
		select {
		case <-m.flushTicker.C:
			if err := statistics.FlushDailyCounters(m.repos.IPNStatistic); err != nil {
				log.Errorf("[JobQueue Manager] statistics flush failed: %v", err)
			}
			statistics.UpdateCacheIfNeeded(m.repos)
		case <-m.stopCh:
			return
		}
	}
}
