package rating

import "github.com/rallyrank/rallyrank/internal/league"

// Store defines the database operations required by the rating engine.
// This keeps the rating package decoupled from the full league interface.
type Store interface {
	GetRating(playerID string) (int, error)
	AdjustRating(playerID string, delta int) (int, error)
	ResetRatings(groupID string, rating int) error
	ListMatches(groupID string) ([]*league.Match, error)
	UpdateRatingAudit(matchID, playerID string, oldRating, newRating int) error
	ClearRatingAudit(groupID string) error
}
