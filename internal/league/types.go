package league

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the league.
type store struct {
	db            *sql.DB
	mu            sync.RWMutex
	initialRating int
}

// Group is a scope for players and matches, typically one recurring circle
// of people.
type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Player belongs to exactly one group. Rating is an integer Elo-style skill
// estimate; only the rating engine moves it.
type Player struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	CreatedAt int64  `json:"created_at"`
}

// Side identifies one of the two teams in a match.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Participant links a match to one slot on a side. A nil PlayerID is an
// anonymous slot: someone played but is not tracked. OldRating/NewRating are
// the audit values captured when the rating engine processed the match; nil
// when no rating was applied (anonymous, unranked or tied).
type Participant struct {
	MatchID   string  `json:"match_id"`
	PlayerID  *string `json:"player_id"`
	Side      Side    `json:"side"`
	OldRating *int    `json:"old_rating"`
	NewRating *int    `json:"new_rating"`
}

// Match is a completed match recorded against a group. Date is when it was
// played (unix seconds) and orders rating replay; CreatedAt is when the row
// was inserted. InexactScore marks symbolic win/lose scores rather than real
// numbers. Court is scheduler context only.
type Match struct {
	ID           string        `json:"id"`
	GroupID      string        `json:"group_id"`
	Date         int64         `json:"date"`
	CreatedAt    int64         `json:"created_at"`
	TeamAScore   int           `json:"team_a_score"`
	TeamBScore   int           `json:"team_b_score"`
	InexactScore bool          `json:"inexact_score"`
	Ranked       bool          `json:"ranked"`
	Court        int           `json:"court"`
	Participants []Participant `json:"participants"`
}

// Team returns the participants on one side, in stored slot order.
func (m *Match) Team(side Side) []Participant {
	var team []Participant
	for _, p := range m.Participants {
		if p.Side == side {
			team = append(team, p)
		}
	}
	return team
}

// Winner returns the side with the strictly higher score. The second return
// is false for a tie.
func (m *Match) Winner() (Side, bool) {
	switch {
	case m.TeamAScore > m.TeamBScore:
		return SideA, true
	case m.TeamBScore > m.TeamAScore:
		return SideB, true
	default:
		return "", false
	}
}
