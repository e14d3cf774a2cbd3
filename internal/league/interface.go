package league

// LeagueStore defines the interface for interacting with the league's data.
type LeagueStore interface {
	CreateGroup(name string) (*Group, error)
	GetGroup(groupID string) (*Group, error)

	// ResolvePlayer returns the player with the given name in the group,
	// creating it with the initial rating if it does not exist yet.
	ResolvePlayer(groupID, name string) (*Player, error)
	GetPlayer(playerID string) (*Player, error)
	GetPlayers(groupID string) ([]Player, error)
	GetRating(playerID string) (int, error)

	// AdjustRating applies a relative increment to the player's rating in a
	// single statement and returns the resulting rating. This is the only
	// rating write path safe under concurrent updates.
	AdjustRating(playerID string, delta int) (int, error)

	// ResetRatings sets every rating in the group to the given value.
	ResetRatings(groupID string, rating int) error

	CreateMatch(match *Match) error
	CreateParticipants(matchID string, rows []Participant) error
	GetMatch(matchID string) (*Match, error)
	ListMatches(groupID string) ([]*Match, error)
	DeleteMatch(matchID string) error

	UpdateRatingAudit(matchID, playerID string, oldRating, newRating int) error
	ClearRatingAudit(groupID string) error

	Leaderboard(groupID string) ([]Player, error)
}
