package scheduler

import (
	"slices"
	"strings"
)

// teamKey builds a canonical key for a team roster. The key is independent
// of slot order so that ("a","b") and ("b","a") count as the same pairing.
func teamKey(team []string) string {
	sorted := slices.Clone(team)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x1f")
}

// playCounts tallies how many matches each player has appeared in.
func playCounts(matches []Match) map[string]int {
	counts := make(map[string]int)
	for _, m := range matches {
		for _, id := range m.Players() {
			counts[id]++
		}
	}
	return counts
}

// pairCounts tallies how many times each exact team roster has played
// together, keyed canonically.
func pairCounts(matches []Match) map[string]int {
	counts := make(map[string]int)
	for _, m := range matches {
		counts[teamKey(m.TeamA)]++
		counts[teamKey(m.TeamB)]++
	}
	return counts
}

// cost scores a candidate against the session history: the total prior
// appearances of its players, plus twice the number of times either exact
// team has played together before. Lower is fairer; repeat pairings are
// penalised twice as heavily as raw participation imbalance.
func cost(c candidate, plays, pairs map[string]int) int {
	playLoad := 0
	for _, id := range c.teamA {
		playLoad += plays[id]
	}
	for _, id := range c.teamB {
		playLoad += plays[id]
	}
	pairLoad := pairs[teamKey(c.teamA)] + pairs[teamKey(c.teamB)]
	return playLoad + 2*pairLoad
}

// pickBest returns the lowest-cost candidate. Ties go to the
// first-enumerated candidate, which keeps selection deterministic.
func pickBest(candidates []candidate, matches []Match) (candidate, bool) {
	if len(candidates) == 0 {
		return candidate{}, false
	}

	plays := playCounts(matches)
	pairs := pairCounts(matches)

	best := candidates[0]
	bestCost := cost(best, plays, pairs)
	for _, c := range candidates[1:] {
		if cc := cost(c, plays, pairs); cc < bestCost {
			best = c
			bestCost = cc
		}
	}
	return best, true
}
