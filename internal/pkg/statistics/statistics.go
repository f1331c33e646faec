package statistics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/nyumbani-labs/rentpulse/app/models"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/cache"
	"gorm.io/gorm"
)

const (
	// Daily pipeline counters live in one redis hash per day.
	counterKeyFormat = "ipn:counters:%s" // date YYYY-MM-DD
	counterTTL       = 48 * time.Hour

	fieldReceived        = "received"
	fieldSuccess         = "success"
	fieldFailed          = "failed"
	fieldRetries         = "retries"
	fieldResponseMsTotal = "response_ms_total"

	CacheKeyPaymentsTotal = "statistics:payments:total"
	CacheKeyLogsTotal     = "statistics:ipn_logs:total"
	CacheExpiration       = 30 * time.Minute
)

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// Recorder increments the redis day counters; it satisfies ipn.StatsRecorder.
type Recorder struct{}

// NewRecorder returns the redis-backed pipeline stats recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordReceived() { incr(fieldReceived, 1) }

func (r *Recorder) RecordSuccess(responseTimeMs int64) {
	incr(fieldSuccess, 1)
	incr(fieldResponseMsTotal, responseTimeMs)
}

func (r *Recorder) RecordFailure(responseTimeMs int64) {
	incr(fieldFailed, 1)
	incr(fieldResponseMsTotal, responseTimeMs)
}

func (r *Recorder) RecordRetry() { incr(fieldRetries, 1) }

func incr(field string, by int64) {
	ctx := context.Background()
	key := dayKey(time.Now())
	rdb := cache.GetClient()
	if err := rdb.HIncrBy(ctx, key, field, by).Err(); err != nil {
		log.Printf("statistics: failed to increment %s: %v", field, err)
		return
	}
	// Best-effort TTL so abandoned day hashes expire after the flush window.
	rdb.Expire(ctx, key, counterTTL)
}

func dayKey(t time.Time) string {
	return fmt.Sprintf(counterKeyFormat, t.Format("2006-01-02"))
}

// FlushDailyCounters drains the redis counters for today and yesterday into
// the ipn_statistics rows. Draining uses RENAME to a temp key so in-flight
// increments are not lost.
func FlushDailyCounters(repo repository.IPNStatisticRepository) error {
	now := time.Now()
	for _, day := range []time.Time{now.AddDate(0, 0, -1), now} {
		if err := flushDay(repo, day); err != nil {
			return err
		}
	}
	return nil
}

func flushDay(repo repository.IPNStatisticRepository, day time.Time) error {
	ctx := context.Background()
	rdb := cache.GetClient()
	key := dayKey(day)

	tmpKey := fmt.Sprintf("%s:tmp:%d", key, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", key, tmpKey).Err(); err != nil {
		// Nothing recorded for this day.
		return nil
	}
	defer rdb.Del(ctx, tmpKey)

	data, err := rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	received := parseField(data, fieldReceived)
	success := parseField(data, fieldSuccess)
	failed := parseField(data, fieldFailed)
	retries := parseField(data, fieldRetries)
	responseMsTotal := parseField(data, fieldResponseMsTotal)

	stat, err := repo.GetByDate(day)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		stat = &models.IPNStatistic{Date: day.Truncate(24 * time.Hour)}
	}

	// Weighted average across flushes: the row keeps the running average, the
	// hash carries the per-window sum.
	oldProcessed := stat.TotalSuccess + stat.TotalFailed
	newProcessed := success + failed
	if oldProcessed+newProcessed > 0 {
		totalMs := stat.AvgResponseTimeMs*float64(oldProcessed) + float64(responseMsTotal)
		stat.AvgResponseTimeMs = totalMs / float64(oldProcessed+newProcessed)
	}

	stat.TotalReceived += received
	stat.TotalSuccess += success
	stat.TotalFailed += failed
	stat.TotalRetries += retries

	return repo.Save(stat)
}

func parseField(data map[string]string, field string) int64 {
	v, ok := data[field]
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ShouldUpdateCache checks whether the dashboard cache is due for a refresh.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the dashboard cache when the interval passed.
func UpdateCacheIfNeeded(repos *repository.Repositories) {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateDashboardCache(repos); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateDashboardCache stores the dashboard totals in the cache.
func UpdateDashboardCache(repos *repository.Repositories) error {
	totalPayments, err := repos.Payment.Count()
	if err != nil {
		return err
	}
	totalLogs, err := repos.IPNLog.Count("")
	if err != nil {
		return err
	}

	if err := cache.Set(CacheKeyPaymentsTotal, strconv.FormatInt(totalPayments, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyLogsTotal, strconv.FormatInt(totalLogs, 10), CacheExpiration); err != nil {
		return err
	}

	log.Printf("Statistics updated in cache: payments: %d, ipn logs: %d", totalPayments, totalLogs)
	return nil
}
