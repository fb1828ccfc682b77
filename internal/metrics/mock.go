package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	updatesApplied        int
	updatesFailed         int
	advancements          int
	updateDurations       []float64
	pendingPlaceholders   int
	unmatchedPlaceholders int
	notifSent             map[string]int
	notifFailed           map[string]int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		updateDurations: make([]float64, 0),
		notifSent:       make(map[string]int),
		notifFailed:     make(map[string]int),
	}
}

func (m *Mock) IncUpdatesApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updatesApplied++
}

func (m *Mock) IncUpdatesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updatesFailed++
}

func (m *Mock) AddAdvancements(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advancements += n
}

func (m *Mock) ObserveUpdateDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateDurations = append(m.updateDurations, seconds)
}

func (m *Mock) SetPendingPlaceholders(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingPlaceholders = n
}

func (m *Mock) SetUnmatchedPlaceholders(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmatchedPlaceholders = n
}

func (m *Mock) IncNotifSent(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent[channel]++
}

func (m *Mock) IncNotifFailed(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed[channel]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// UpdatesApplied returns the number of times IncUpdatesApplied was called.
func (m *Mock) UpdatesApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updatesApplied
}

// UpdatesFailed returns the number of times IncUpdatesFailed was called.
func (m *Mock) UpdatesFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updatesFailed
}

// Advancements returns the sum passed to AddAdvancements.
func (m *Mock) Advancements() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advancements
}

// UpdateDurations returns the observed cycle durations.
func (m *Mock) UpdateDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.updateDurations...)
}

// PendingPlaceholders returns the last value passed to SetPendingPlaceholders.
func (m *Mock) PendingPlaceholders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingPlaceholders
}

// UnmatchedPlaceholders returns the last value passed to SetUnmatchedPlaceholders.
func (m *Mock) UnmatchedPlaceholders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unmatchedPlaceholders
}

// NotifSent returns the number of successful notifications on channel.
func (m *Mock) NotifSent(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent[channel]
}

// NotifFailed returns the number of failed notifications on channel.
func (m *Mock) NotifFailed(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed[channel]
}
