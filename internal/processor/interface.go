package processor

import (
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/rallyrank/rallyrank/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetGroup(groupID string) (*league.Group, error)
	ResolvePlayer(groupID, name string) (*league.Player, error)
	GetPlayers(groupID string) ([]league.Player, error)
	CreateMatch(match *league.Match) error
	CreateParticipants(matchID string, rows []league.Participant) error
	GetMatch(matchID string) (*league.Match, error)
	DeleteMatch(matchID string) error
	Leaderboard(groupID string) ([]league.Player, error)
}

// Rater defines the rating operations required by the processor.
type Rater interface {
	Apply(match *league.Match) error
	Replay(groupID string) error
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
