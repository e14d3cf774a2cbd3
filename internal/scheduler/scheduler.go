package scheduler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFeasibleMatch is returned when the eligible pool cannot fill two
// disjoint teams. It is an ordinary outcome ("add more players"), not a
// fault, and callers are expected to handle it.
var ErrNoFeasibleMatch = errors.New("not enough eligible players for a full match")

// NextMatch proposes the next match for the session across courtCount
// courts. It determines the court and the players already committed to other
// courts this round, enumerates every legal pairing of the remaining pool,
// and returns the fairest candidate with the court attached.
//
// The session is never mutated; appending the result to form the next
// session state is the caller's job.
func NextMatch(session Session, courtCount int) (Match, error) {
	if courtCount < 1 {
		return Match{}, fmt.Errorf("court count must be at least 1, got %d", courtCount)
	}
	teamSize := session.TeamSize
	if teamSize < 1 {
		return Match{}, fmt.Errorf("team size must be at least 1, got %d", teamSize)
	}

	court := nextCourt(session.Matches, courtCount)
	excluded := excludedPlayers(session.Matches, court)

	pool := make([]string, 0, len(session.Players))
	for _, p := range session.Players {
		if _, ok := excluded[p.ID]; ok {
			continue
		}
		pool = append(pool, p.ID)
	}

	candidates := generateCandidates(pool, teamSize)
	best, ok := pickBest(candidates, session.Matches)
	if !ok {
		return Match{}, ErrNoFeasibleMatch
	}

	return Match{TeamA: best.teamA, TeamB: best.teamB, Court: court}, nil
}

// GenerateMatches proposes count matches by repeatedly calling NextMatch and
// folding each result back into a working copy of the session. The input
// session is left untouched.
func GenerateMatches(session Session, courtCount, count int) ([]Match, error) {
	working := session
	working.Matches = append([]Match(nil), session.Matches...)

	matches := make([]Match, 0, count)
	for i := 0; i < count; i++ {
		m, err := NextMatch(working, courtCount)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
		working.Matches = append(working.Matches, m)
	}
	return matches, nil
}

// FormatMatch renders a match as "A and B vs. C and D" using the session's
// player names.
func FormatMatch(session Session, m Match) string {
	sides := make([]string, 0, 2)
	for _, team := range [][]string{m.TeamA, m.TeamB} {
		names := make([]string, len(team))
		for i, id := range team {
			names[i] = session.PlayerName(id)
		}
		sides = append(sides, strings.Join(names, " and "))
	}
	return strings.Join(sides, " vs. ")
}
