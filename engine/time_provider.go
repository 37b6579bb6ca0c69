package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/tilerun/constant"
)

// TimeProvider supplies wall-clock samples to the scheduler
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system monotonic clock
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the real clock
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a hand-driven clock for tests and replays
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider starts the mock at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// TimeInfo is the simulation clock, advanced once per tick by the scheduler
// Behaviors read it, never write it
type TimeInfo struct {
	DeltaTime  float64 // seconds simulated by the current tick
	TotalTime  float64 // sum of all deltas
	PrevSample time.Time
}

// NewTimeInfo starts the clock at now with a zero delta
func NewTimeInfo(now time.Time) *TimeInfo {
	return &TimeInfo{PrevSample: now}
}

// Advance computes the next delta from now, scaled by timeSpeed
// Deltas above MaxFrameDelta are replaced by FallbackFrameDelta; returns true when that happened
func (t *TimeInfo) Advance(now time.Time, timeSpeed float64) bool {
	delta := now.Sub(t.PrevSample).Seconds() * timeSpeed

	clamped := delta > constant.MaxFrameDelta
	if clamped {
		delta = constant.FallbackFrameDelta
	}

	t.DeltaTime = delta
	t.TotalTime += delta
	t.PrevSample = now
	return clamped
}
