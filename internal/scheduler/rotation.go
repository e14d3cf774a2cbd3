package scheduler

// nextCourt returns the court the next match occupies: court 0 for an empty
// history, otherwise the court after the most recent match, wrapping at
// courtCount. A wrap to court 0 starts a new round.
func nextCourt(matches []Match, courtCount int) int {
	if len(matches) == 0 {
		return 0
	}
	last := matches[len(matches)-1]
	return (last.Court + 1) % courtCount
}

// excludedPlayers returns the players already committed to another court in
// the current round: everyone appearing in the `court` most recent matches.
// Court 0 begins a fresh round, so nobody is excluded. The slice bound also
// covers a partial opening round with fewer matches than courts.
func excludedPlayers(matches []Match, court int) map[string]struct{} {
	if court == 0 {
		return nil
	}

	start := len(matches) - court
	if start < 0 {
		start = 0
	}

	excluded := make(map[string]struct{})
	for _, m := range matches[start:] {
		for _, id := range m.Players() {
			excluded[id] = struct{}{}
		}
	}
	return excluded
}
