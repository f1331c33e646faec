package jobqueue

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"gorm.io/gorm"
)

const (
	// Floor below which the config timeout is not trusted: a sweep threshold
	// shorter than a live request could still take would fail healthy rows.
	minSweepThreshold = 30 * time.Second

	staleErrorMessage = "processing timed out"
)

// SweepStaleProcessing marks ledger rows stuck in processing as failed. A row
// gets stuck when a request crashes or the caller disconnects mid-pipeline;
// without the sweep it would stay in processing forever.
func SweepStaleProcessing(repos *repository.Repositories) {
	threshold := minSweepThreshold

	config, err := repos.IPNConfig.GetActive()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Errorf("[JobQueue Manager] sweeper config lookup failed: %v", err)
		}
		// No active config means no new rows are being created, but rows from
		// before deactivation may still be stuck. Sweep with the floor.
	} else if t := time.Duration(config.TimeoutSeconds) * time.Second; t > threshold {
		threshold = t
	}

	swept, err := repos.IPNLog.FailStaleProcessing(time.Now().Add(-threshold), staleErrorMessage)
	if err != nil {
		log.Errorf("[JobQueue Manager] stale processing sweep failed: %v", err)
		return
	}
	if swept > 0 {
		log.Warnf("[JobQueue Manager] marked %d stale processing entries as failed", swept)
	}
}
