package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-driven Clock for deterministic frame tests
// With Tick set, every Now call advances the clock by Tick after reading it
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
	tick        time.Duration
}

var _ Clock = (*MockTimeProvider)(nil)

// NewMockTimeProvider creates a clock frozen at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: start}
}

// Now returns the mocked time, then applies the auto tick
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.currentTime
	m.currentTime = m.currentTime.Add(m.tick)
	return now
}

// SetTime jumps the clock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.currentTime = t
	m.mu.Unlock()
}

// SetTick makes each Now call advance the clock by d; zero freezes it
func (m *MockTimeProvider) SetTick(d time.Duration) {
	m.mu.Lock()
	m.tick = d
	m.mu.Unlock()
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.currentTime = m.currentTime.Add(d)
	m.mu.Unlock()
}
