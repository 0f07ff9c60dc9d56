package clock

import (
	"sync"
	"time"
)

// Clock is the time source used for expiry checks and record timestamps.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function into a Clock.
type Func func() time.Time

// Now implements Clock.
func (f Func) Now() time.Time {
	return f()
}

// Real returns the wall clock in UTC.
func Real() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// Fake provides a controllable time source for tests and demos.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake initialised to the given time.
// Without an argument it starts at 2026-01-01 00:00:00 UTC.
func NewFake(now ...time.Time) *Fake {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if len(now) > 0 {
		t = now[0]
	}
	return &Fake{now: t}
}

// Now returns the fake's current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set overrides the current time.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
