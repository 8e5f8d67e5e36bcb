// Package clock lets booking windows, token expiry and outbox retries be
// pinned in tests.
package clock

import (
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// System is wall time in UTC.
var System Clock = Func(func() time.Time { return time.Now().UTC() })

func NewRealClock() Clock {
	return System
}

// MockClock only moves when told to. Safe for concurrent use.
type MockClock struct {
	now atomic.Pointer[time.Time]
}

func NewMockClock(t time.Time) *MockClock {
	c := &MockClock{}
	c.Set(t)
	return c
}

func (c *MockClock) Now() time.Time {
	return *c.now.Load()
}

func (c *MockClock) Set(t time.Time) {
	c.now.Store(&t)
}

func (c *MockClock) Add(d time.Duration) {
	for {
		cur := c.now.Load()
		next := cur.Add(d)
		if c.now.CompareAndSwap(cur, &next) {
			return
		}
	}
}
