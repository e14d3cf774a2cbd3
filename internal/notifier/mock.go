package notifier

import (
	"sync"

	"github.com/rallyrank/rallyrank/internal/league"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendResultNotificationFunc func(match *league.Match, players []league.Player, dryRun bool) error
	SendLeaderboardFunc        func(groupName string, players []league.Player, dryRun bool) error

	// Call records
	SendResultNotificationCalls []struct {
		Match   *league.Match
		Players []league.Player
	}
	SendLeaderboardCalls []struct {
		GroupName string
		Players   []league.Player
	}
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) SendResultNotification(match *league.Match, players []league.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Match   *league.Match
		Players []league.Player
	}{match, players})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(match, players, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(groupName string, players []league.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		GroupName string
		Players   []league.Player
	}{groupName, players})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(groupName, players, dryRun)
	}
	return nil
}
