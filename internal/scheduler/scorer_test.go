package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, teamKey([]string{"a", "b"}), teamKey([]string{"b", "a"}))
	assert.NotEqual(t, teamKey([]string{"a", "b"}), teamKey([]string{"a", "c"}))
}

func TestPairCountsUseCanonicalKeys(t *testing.T) {
	matches := []Match{
		{TeamA: []string{"a", "b"}, TeamB: []string{"c", "d"}},
		{TeamA: []string{"b", "a"}, TeamB: []string{"d", "c"}},
	}

	pairs := pairCounts(matches)
	assert.Equal(t, 2, pairs[teamKey([]string{"a", "b"})], "slot order must not split pair counts")
	assert.Equal(t, 2, pairs[teamKey([]string{"c", "d"})])
}

func TestCostWeighsRepeatPairingsDouble(t *testing.T) {
	history := []Match{
		{TeamA: []string{"a"}, TeamB: []string{"b"}},
	}
	plays := playCounts(history)
	pairs := pairCounts(history)

	repeat := candidate{teamA: []string{"a"}, teamB: []string{"b"}}
	fresh := candidate{teamA: []string{"c"}, teamB: []string{"d"}}
	mixed := candidate{teamA: []string{"a"}, teamB: []string{"c"}}

	// playLoad 2 + 2*pairLoad 2 = 6
	assert.Equal(t, 6, cost(repeat, plays, pairs))
	assert.Equal(t, 0, cost(fresh, plays, pairs))
	// playLoad 1 + 2*pairLoad 1 = 3
	assert.Equal(t, 3, cost(mixed, plays, pairs))
}

func TestPickBestPrefersLowerPlayLoadOnEqualPairLoad(t *testing.T) {
	// Neither candidate pairing has occurred before, so pairLoad is zero for
	// both and only playLoad separates them.
	history := []Match{
		{TeamA: []string{"a", "b"}, TeamB: []string{"c", "d"}},
		{TeamA: []string{"a", "c"}, TeamB: []string{"b", "d"}},
	}

	low := candidate{teamA: []string{"e"}, teamB: []string{"f"}}  // playLoad 0
	high := candidate{teamA: []string{"a"}, teamB: []string{"b"}} // playLoad 4

	best, ok := pickBest([]candidate{high, low}, history)
	assert.True(t, ok)
	assert.Equal(t, low, best)
}

func TestPickBestBreaksTiesByEnumerationOrder(t *testing.T) {
	first := candidate{teamA: []string{"a"}, teamB: []string{"b"}}
	second := candidate{teamA: []string{"c"}, teamB: []string{"d"}}

	best, ok := pickBest([]candidate{first, second}, nil)
	assert.True(t, ok)
	assert.Equal(t, first, best, "equal costs must resolve to the first-enumerated candidate")
}
