package metrics

import "sync"

// MockMetrics is a mock implementation of the Metrics interface for testing.
type MockMetrics struct {
	mu sync.Mutex

	MatchesRecordedCount     int
	SchedulesGeneratedCount  int
	SchedulesInfeasibleCount int
	RatingReplaysCount       int
	RecordDurations          []float64
	SlackNotifSentCount      int
	SlackNotifFailedCount    int
	StartupTimes             []float64
}

var _ Metrics = (*MockMetrics)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchesRecordedCount++
}

func (m *MockMetrics) IncSchedulesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchedulesGeneratedCount++
}

func (m *MockMetrics) IncSchedulesInfeasible() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchedulesInfeasibleCount++
}

func (m *MockMetrics) IncRatingReplays() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RatingReplaysCount++
}

func (m *MockMetrics) ObserveRecordDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordDurations = append(m.RecordDurations, duration)
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCount++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCount++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, duration)
}
