package calendar

import (
	"context"
	"sync"
	"time"
)

// refreshHorizonDays is how far ahead Refresh pre-fetches. Thirteen months
// keeps the cache covering any realistic working-day advance scheduled from
// today.
const refreshHorizonDays = 400

// CachingSource wraps a HolidaySource with an in-memory cached window per
// jurisdiction. Requests fully covered by the cached window are served
// locally; anything else falls through to the underlying source. Safe for
// concurrent use.
type CachingSource struct {
	upstream HolidaySource

	mu     sync.RWMutex
	cached map[string]cachedWindow
}

type cachedWindow struct {
	from, to Date
	set      HolidaySet
}

// NewCachingSource creates a CachingSource over upstream. The cache starts
// empty; call Refresh (or let the scheduler do it) to pre-warm.
func NewCachingSource(upstream HolidaySource) *CachingSource {
	return &CachingSource{
		upstream: upstream,
		cached:   make(map[string]cachedWindow),
	}
}

// Holidays serves from the cached window when it covers [from, to],
// otherwise delegates to the upstream source without touching the cache.
func (c *CachingSource) Holidays(ctx context.Context, jurisdiction string, from, to Date) (HolidaySet, error) {
	c.mu.RLock()
	w, ok := c.cached[jurisdiction]
	c.mu.RUnlock()

	if ok && !from.Before(w.from) && !to.After(w.to) {
		subset := make(HolidaySet)
		for d := range w.set {
			if !d.Before(from) && !d.After(to) {
				subset.Add(d)
			}
		}
		return subset, nil
	}
	return c.upstream.Holidays(ctx, jurisdiction, from, to)
}

// Refresh fetches the window [today, today+refreshHorizonDays] for
// jurisdiction from the upstream source and replaces the cached window.
func (c *CachingSource) Refresh(ctx context.Context, jurisdiction string) error {
	from := DateOf(time.Now())
	to := from.AddDays(refreshHorizonDays)

	set, err := c.upstream.Holidays(ctx, jurisdiction, from, to)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cached[jurisdiction] = cachedWindow{from: from, to: to, set: set}
	c.mu.Unlock()
	return nil
}
