package scheduler_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/justiceplatform/courtnotify/internal/calendar"
	"github.com/justiceplatform/courtnotify/internal/scheduler"
)

type countingSource struct {
	calls int32
}

func (s *countingSource) Holidays(_ context.Context, _ string, _, _ calendar.Date) (calendar.HolidaySet, error) {
	atomic.AddInt32(&s.calls, 1)
	return calendar.HolidaySet{}, nil
}

func TestHolidayRefresher_WarmsCacheOnStart(t *testing.T) {
	upstream := &countingSource{}
	cache := calendar.NewCachingSource(upstream)

	r, err := scheduler.NewHolidayRefresher(cache, "england-and-wales", slog.Default())
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	t.Cleanup(func() { _ = r.Stop() })

	require.EqualValues(t, 1, atomic.LoadInt32(&upstream.calls))

	// A covered request is now served from the cache.
	today := calendar.DateOf(time.Now())
	_, err = cache.Holidays(context.Background(), "england-and-wales", today, today.AddDays(30))
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&upstream.calls))
}

func TestHolidayRefresher_StopIsClean(t *testing.T) {
	cache := calendar.NewCachingSource(&countingSource{})
	r, err := scheduler.NewHolidayRefresher(cache, "england-and-wales", slog.Default())
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())
}
