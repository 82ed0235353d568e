package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter - sliding window на компанию (tenant).
type Limiter struct {
	mu      sync.Mutex
	hits    map[int64][]time.Time
	limit   int
	window  time.Duration
	stop    chan struct{}
	stopped bool
}

type Config struct {
	RequestsPerMinute int
	Window            time.Duration
}

func New(cfg Config) *Limiter {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 60
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	l := &Limiter{
		hits:   make(map[int64][]time.Time),
		limit:  limit,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *Limiter) Allow(companyID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	fresh := l.freshLocked(companyID, now)

	if len(fresh) >= l.limit {
		l.hits[companyID] = fresh
		return false
	}

	l.hits[companyID] = append(fresh, now)
	return true
}

// Wait blocks until a slot frees up for companyID or ctx is done.
func (l *Limiter) Wait(ctx context.Context, companyID int64) error {
	for {
		if l.Allow(companyID) {
			return nil
		}

		delay := time.Until(l.ResetTime(companyID))
		if delay <= 0 {
			delay = time.Millisecond
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *Limiter) Remaining(companyID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	cnt := 0
	for _, t := range l.hits[companyID] {
		if t.After(cutoff) {
			cnt++
		}
	}

	if rem := l.limit - cnt; rem > 0 {
		return rem
	}
	return 0
}

// ResetTime - когда освободится ближайший слот (приблизительно)
func (l *Limiter) ResetTime(companyID int64) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.hits[companyID]
	if len(ts) == 0 {
		return time.Now()
	}

	oldest := ts[0]
	for _, t := range ts[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return oldest.Add(l.window)
}

func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		l.stopped = true
		close(l.stop)
	}
}

func (l *Limiter) freshLocked(companyID int64, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	old := l.hits[companyID]
	fresh := old[:0] // reuse underlying array
	for _, t := range old {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}
	return fresh
}

func (l *Limiter) cleanup() {
	tick := time.NewTicker(5 * time.Minute)
	defer tick.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-tick.C:
			l.mu.Lock()
			now := time.Now()
			for id := range l.hits {
				fresh := l.freshLocked(id, now)
				if len(fresh) == 0 {
					delete(l.hits, id)
				} else {
					l.hits[id] = fresh
				}
			}
			l.mu.Unlock()
		}
	}
}
