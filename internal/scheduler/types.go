// Package scheduler proposes balanced matches for a recurring group of
// players sharing one or more courts. It is a pure library: every function
// takes the session state as a value and returns a result without mutating
// its input, so identical inputs always produce identical output.
//
// Candidate selection is an exhaustive search over every legal team pairing.
// The search is combinatorial in the pool size and is intended for small
// interactive groups (tens of players), not as a scalable optimizer.
package scheduler

// Player is a participant known to the session.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match is a proposed pairing of two teams on a court. Rosters hold player
// IDs from the session's player list.
type Match struct {
	TeamA []string `json:"team_a"`
	TeamB []string `json:"team_b"`
	Court int      `json:"court"`
}

// Players returns every player ID in the match.
func (m Match) Players() []string {
	players := make([]string, 0, len(m.TeamA)+len(m.TeamB))
	players = append(players, m.TeamA...)
	players = append(players, m.TeamB...)
	return players
}

// Session is the state threaded through successive NextMatch calls: the known
// players, the matches generated so far (oldest first) and the team size for
// one side of the court (1 for singles, 2 for doubles).
type Session struct {
	Players  []Player `json:"players"`
	Matches  []Match  `json:"matches"`
	TeamSize int      `json:"team_size"`
}

// PlayerName resolves a player ID to its display name, or "?" if unknown.
func (s Session) PlayerName(id string) string {
	for _, p := range s.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return "?"
}
