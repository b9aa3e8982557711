package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/run-or-die/parameter"
)

// TimeProvider supplies wall-clock readings to the frame clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system monotonic clock
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a provider backed by time.Now
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with a monotonic reading
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a controllable time source for tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider creates a mock starting at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime moves the mock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the mock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// FrameClock turns successive time readings into clamped frame deltas
// Time spent paused is skipped so a resume does not produce one huge step
type FrameClock struct {
	tp       TimeProvider
	last     time.Time
	maxDelta time.Duration
	paused   bool
}

// NewFrameClock creates a clock reading tp; maxDelta <= 0 uses MaxFrameDelta
func NewFrameClock(tp TimeProvider, maxDelta time.Duration) *FrameClock {
	if maxDelta <= 0 {
		maxDelta = parameter.MaxFrameDelta
	}
	return &FrameClock{tp: tp, last: tp.Now(), maxDelta: maxDelta}
}

// Delta returns seconds since the previous call, capped at maxDelta; zero while paused
func (c *FrameClock) Delta() float64 {
	now := c.tp.Now()
	d := now.Sub(c.last)
	c.last = now
	if c.paused || d < 0 {
		return 0
	}
	if d > c.maxDelta {
		d = c.maxDelta
	}
	return d.Seconds()
}

// Pause freezes deltas at zero
func (c *FrameClock) Pause() {
	c.paused = true
}

// Resume restarts deltas from the current reading
func (c *FrameClock) Resume() {
	c.paused = false
	c.last = c.tp.Now()
}

// Paused reports whether the clock is paused
func (c *FrameClock) Paused() bool {
	return c.paused
}
