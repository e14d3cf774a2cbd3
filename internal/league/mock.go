package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	CreateGroupFunc        func(name string) (*Group, error)
	GetGroupFunc           func(groupID string) (*Group, error)
	ResolvePlayerFunc      func(groupID, name string) (*Player, error)
	GetPlayerFunc          func(playerID string) (*Player, error)
	GetPlayersFunc         func(groupID string) ([]Player, error)
	GetRatingFunc          func(playerID string) (int, error)
	AdjustRatingFunc       func(playerID string, delta int) (int, error)
	ResetRatingsFunc       func(groupID string, rating int) error
	CreateMatchFunc        func(match *Match) error
	CreateParticipantsFunc func(matchID string, rows []Participant) error
	GetMatchFunc           func(matchID string) (*Match, error)
	ListMatchesFunc        func(groupID string) ([]*Match, error)
	DeleteMatchFunc        func(matchID string) error
	UpdateRatingAuditFunc  func(matchID, playerID string, oldRating, newRating int) error
	ClearRatingAuditFunc   func(groupID string) error
	LeaderboardFunc        func(groupID string) ([]Player, error)

	// Call records
	ResolvePlayerCalls []struct {
		GroupID string
		Name    string
	}
	AdjustRatingCalls []struct {
		PlayerID string
		Delta    int
	}
	CreateMatchCalls  []*Match
	DeleteMatchCalls  []string
	ResetRatingsCalls []struct {
		GroupID string
		Rating  int
	}
	UpdateRatingAuditCalls []struct {
		MatchID   string
		PlayerID  string
		OldRating int
		NewRating int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateGroup(name string) (*Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateGroupFunc != nil {
		return m.CreateGroupFunc(name)
	}
	return &Group{ID: "mock-group", Name: name}, nil
}

func (m *MockStore) GetGroup(groupID string) (*Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGroupFunc != nil {
		return m.GetGroupFunc(groupID)
	}
	return &Group{ID: groupID}, nil
}

func (m *MockStore) ResolvePlayer(groupID, name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolvePlayerCalls = append(m.ResolvePlayerCalls, struct {
		GroupID string
		Name    string
	}{groupID, name})
	if m.ResolvePlayerFunc != nil {
		return m.ResolvePlayerFunc(groupID, name)
	}
	return &Player{ID: "mock-" + name, GroupID: groupID, Name: name}, nil
}

func (m *MockStore) GetPlayer(playerID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return &Player{ID: playerID}, nil
}

func (m *MockStore) GetPlayers(groupID string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(groupID)
	}
	return nil, nil
}

func (m *MockStore) GetRating(playerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRatingFunc != nil {
		return m.GetRatingFunc(playerID)
	}
	return 0, nil
}

func (m *MockStore) AdjustRating(playerID string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AdjustRatingCalls = append(m.AdjustRatingCalls, struct {
		PlayerID string
		Delta    int
	}{playerID, delta})
	if m.AdjustRatingFunc != nil {
		return m.AdjustRatingFunc(playerID, delta)
	}
	return delta, nil
}

func (m *MockStore) ResetRatings(groupID string, rating int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetRatingsCalls = append(m.ResetRatingsCalls, struct {
		GroupID string
		Rating  int
	}{groupID, rating})
	if m.ResetRatingsFunc != nil {
		return m.ResetRatingsFunc(groupID, rating)
	}
	return nil
}

func (m *MockStore) CreateMatch(match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	if match.ID == "" {
		match.ID = "mock-match"
	}
	return nil
}

func (m *MockStore) CreateParticipants(matchID string, rows []Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateParticipantsFunc != nil {
		return m.CreateParticipantsFunc(matchID, rows)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) ListMatches(groupID string) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(groupID)
	}
	return nil, nil
}

func (m *MockStore) DeleteMatch(matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, matchID)
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(matchID)
	}
	return nil
}

func (m *MockStore) UpdateRatingAudit(matchID, playerID string, oldRating, newRating int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateRatingAuditCalls = append(m.UpdateRatingAuditCalls, struct {
		MatchID   string
		PlayerID  string
		OldRating int
		NewRating int
	}{matchID, playerID, oldRating, newRating})
	if m.UpdateRatingAuditFunc != nil {
		return m.UpdateRatingAuditFunc(matchID, playerID, oldRating, newRating)
	}
	return nil
}

func (m *MockStore) ClearRatingAudit(groupID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearRatingAuditFunc != nil {
		return m.ClearRatingAuditFunc(groupID)
	}
	return nil
}

func (m *MockStore) Leaderboard(groupID string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(groupID)
	}
	return nil, nil
}
