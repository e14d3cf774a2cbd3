package scheduler

import (
	"gonum.org/v1/gonum/stat/combin"
)

// candidate is one legal way to fill both sides of a court.
type candidate struct {
	teamA []string
	teamB []string
}

// teamCandidates enumerates every teamSize-subset of the pool, in the
// lexicographic order combin produces over pool positions. The pool keeps
// its caller-supplied order; enumeration order is what makes tie-breaking
// deterministic further down.
func teamCandidates(pool []string, teamSize int) [][]string {
	if teamSize <= 0 || len(pool) < teamSize {
		return nil
	}

	indexSets := combin.Combinations(len(pool), teamSize)
	teams := make([][]string, 0, len(indexSets))
	for _, indexes := range indexSets {
		team := make([]string, teamSize)
		for i, j := range indexes {
			team[i] = pool[j]
		}
		teams = append(teams, team)
	}
	return teams
}

// generateCandidates enumerates every pair of disjoint team candidates over
// the pool. Pairs sharing a member are discarded; the rest keep their
// enumeration order.
func generateCandidates(pool []string, teamSize int) []candidate {
	teams := teamCandidates(pool, teamSize)
	if len(teams) < 2 {
		return nil
	}

	var candidates []candidate
	for _, indexes := range combin.Combinations(len(teams), 2) {
		teamA, teamB := teams[indexes[0]], teams[indexes[1]]
		if teamsOverlap(teamA, teamB) {
			continue
		}
		candidates = append(candidates, candidate{teamA: teamA, teamB: teamB})
	}
	return candidates
}

func teamsOverlap(teamA, teamB []string) bool {
	seen := make(map[string]struct{}, len(teamA))
	for _, id := range teamA {
		seen[id] = struct{}{}
	}
	for _, id := range teamB {
		if _, ok := seen[id]; ok {
			return true
		}
	}
	return false
}
