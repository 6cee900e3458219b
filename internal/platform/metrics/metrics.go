package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	unauthorized    uint64
	totalDurationMs uint64

	dashboardBuilds      uint64
	skippedMissingAmount uint64
	skippedBadDate       uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	if status == 401 {
		atomic.AddUint64(&c.unauthorized, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordDashboardSkips counts one dashboard build and the salary records it
// could not use.
func (c *Collector) RecordDashboardSkips(missingAmount, badDate int) {
	atomic.AddUint64(&c.dashboardBuilds, 1)
	if missingAmount > 0 {
		atomic.AddUint64(&c.skippedMissingAmount, uint64(missingAmount))
	}
	if badDate > 0 {
		atomic.AddUint64(&c.skippedBadDate, uint64(badDate))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	unauthorized := atomic.LoadUint64(&c.unauthorized)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            errs,
		"rateLimitedTotal":       limited,
		"unauthorizedTotal":      unauthorized,
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
		"dashboardBuildsTotal":   atomic.LoadUint64(&c.dashboardBuilds),
		"dashboardSkippedAmount": atomic.LoadUint64(&c.skippedMissingAmount),
		"dashboardSkippedDate":   atomic.LoadUint64(&c.skippedBadDate),
	}
}
