package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMaxCalls is the default call budget per window
	DefaultMaxCalls = 100
	// DefaultWindow is the default trailing window width
	DefaultWindow = 60 * time.Second
	// defaultGuard pads the computed wait so the oldest stamp has really
	// expired by the time the caller wakes
	defaultGuard = 100 * time.Millisecond
)

// Limiter is a sliding-window admission controller guarding outbound calls to
// a shared, rate-limited upstream. At most max calls are admitted in any
// trailing window, as observed at admission time. One Limiter is created at
// process start and shared by every conversation; Reset returns it to the
// initial empty state.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	guard  time.Duration
	stamps []time.Time

	// OnWait, when set, observes every admission delay. Used to feed the
	// monitoring package without coupling to it.
	OnWait func(time.Duration)

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a limiter admitting at most max calls per trailing window.
// Non-positive arguments fall back to the defaults.
func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMaxCalls
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		max:    max,
		window: window,
		guard:  defaultGuard,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Admit blocks until the caller may make one upstream call, then records it.
// It never fails on its own; the only error it can return is the context's,
// when the caller gives up mid-wait.
func (l *Limiter) Admit(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := l.now()
		l.purge(now)

		if len(l.stamps) < l.max {
			l.stamps = append(l.stamps, now)
			l.mu.Unlock()
			return nil
		}

		wait := l.stamps[0].Add(l.window).Sub(now) + l.guard
		l.mu.Unlock()

		if l.OnWait != nil {
			l.OnWait(wait)
		}
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
		// Another caller may have taken the freed slot while we slept, so
		// re-check from the top.
	}
}

// Pending returns the number of calls currently recorded inside the window
func (l *Limiter) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purge(l.now())
	return len(l.stamps)
}

// Reset clears all recorded calls
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stamps = nil
}

// purge drops stamps older than the trailing window. Safe on an empty queue.
func (l *Limiter) purge(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
