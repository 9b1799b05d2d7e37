// Package scheduler runs the periodic holiday calendar refresh.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/justiceplatform/courtnotify/internal/calendar"
	"github.com/justiceplatform/courtnotify/internal/metrics"
)

// HolidayRefresher keeps the holiday calendar cache warm with a daily
// gocron job. Dispatch-time lookups then stay off the network for any
// window the cache covers.
type HolidayRefresher struct {
	cron         gocron.Scheduler
	cache        *calendar.CachingSource
	jurisdiction string
	logger       *slog.Logger
}

// NewHolidayRefresher creates a HolidayRefresher for the given cache and
// jurisdiction.
func NewHolidayRefresher(cache *calendar.CachingSource, jurisdiction string, logger *slog.Logger) (*HolidayRefresher, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}
	return &HolidayRefresher{
		cron:         cron,
		cache:        cache,
		jurisdiction: jurisdiction,
		logger:       logger,
	}, nil
}

// Start warms the cache once, schedules the daily refresh, and starts the
// scheduler. The initial warm-up failure is logged, not fatal: the caching
// source falls through to the upstream service until a refresh succeeds.
func (r *HolidayRefresher) Start(ctx context.Context) error {
	r.refresh(ctx)

	_, err := r.cron.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(2, 0, 0))),
		gocron.NewTask(func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			r.refresh(refreshCtx)
		}),
	)
	if err != nil {
		return fmt.Errorf("scheduling holiday refresh job: %w", err)
	}

	r.cron.Start()
	r.logger.Info("holiday refresher started", "jurisdiction", r.jurisdiction)
	return nil
}

// Stop shuts down the gocron scheduler.
func (r *HolidayRefresher) Stop() error {
	return r.cron.Shutdown()
}

func (r *HolidayRefresher) refresh(ctx context.Context) {
	if err := r.cache.Refresh(ctx, r.jurisdiction); err != nil {
		metrics.HolidayRefreshesTotal.WithLabelValues("error").Inc()
		r.logger.Warn("holiday calendar refresh failed",
			"jurisdiction", r.jurisdiction, "error", err)
		return
	}
	metrics.HolidayRefreshesTotal.WithLabelValues("ok").Inc()
	r.logger.Info("holiday calendar refreshed", "jurisdiction", r.jurisdiction)
}
