package rating_test

import (
	"testing"

	"github.com/rallyrank/rallyrank/internal/database"
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/rallyrank/rallyrank/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTest creates an in-memory database with a group and the given
// players, returning the engine, the store and the group ID.
func setupTest(t *testing.T, playerNames ...string) (*rating.Engine, league.LeagueStore, string, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	cfg := rating.DefaultConfig()
	store := league.New(db, cfg.InitialRating)
	engine := rating.New(store, cfg)

	group, err := store.CreateGroup("test group")
	require.NoError(t, err)
	for _, name := range playerNames {
		_, err := store.ResolvePlayer(group.ID, name)
		require.NoError(t, err)
	}

	return engine, store, group.ID, dbTeardown
}

// recordMatch inserts a match plus participant rows and returns it with
// participants loaded.
func recordMatch(t *testing.T, store league.LeagueStore, groupID string, teamA, teamB []*string, scoreA, scoreB int, ranked bool, date int64) *league.Match {
	t.Helper()

	match := &league.Match{
		GroupID:    groupID,
		Date:       date,
		TeamAScore: scoreA,
		TeamBScore: scoreB,
		Ranked:     ranked,
	}
	require.NoError(t, store.CreateMatch(match))

	var rows []league.Participant
	for _, id := range teamA {
		rows = append(rows, league.Participant{MatchID: match.ID, PlayerID: id, Side: league.SideA})
	}
	for _, id := range teamB {
		rows = append(rows, league.Participant{MatchID: match.ID, PlayerID: id, Side: league.SideB})
	}
	require.NoError(t, store.CreateParticipants(match.ID, rows))

	loaded, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	return loaded
}

func playerID(t *testing.T, store league.LeagueStore, groupID, name string) *string {
	t.Helper()
	p, err := store.ResolvePlayer(groupID, name)
	require.NoError(t, err)
	return &p.ID
}

func TestComputeDeltaEqualRatings(t *testing.T) {
	cfg := rating.Config{InitialRating: 1500, KFactor: 32}

	winnerDelta, loserDelta := cfg.ComputeDelta([]int{1500}, []int{1500})
	assert.Equal(t, 16, winnerDelta)
	assert.Equal(t, -16, loserDelta)
}

func TestComputeDeltaFavorsUnderdog(t *testing.T) {
	cfg := rating.DefaultConfig()

	// An underdog win moves more points than an expected win.
	upsetWin, upsetLoss := cfg.ComputeDelta([]int{1400}, []int{1600})
	expectedWin, expectedLoss := cfg.ComputeDelta([]int{1600}, []int{1400})

	assert.Greater(t, upsetWin, expectedWin)
	assert.Less(t, upsetLoss, expectedLoss)
	assert.Equal(t, upsetWin, -upsetLoss, "symmetric match-up moves both sides equally")
	assert.Equal(t, expectedWin, -expectedLoss)
}

func TestApplySinglesDecisive(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice", "Bob")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	bob := playerID(t, store, groupID, "Bob")

	match := recordMatch(t, store, groupID, []*string{alice}, []*string{bob}, 21, 15, true, 100)
	require.NoError(t, engine.Apply(match))

	aliceRating, err := store.GetRating(*alice)
	require.NoError(t, err)
	bobRating, err := store.GetRating(*bob)
	require.NoError(t, err)
	assert.Equal(t, 1516, aliceRating)
	assert.Equal(t, 1484, bobRating)

	// Audit rows capture before/after from the same update.
	loaded, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	for _, p := range loaded.Participants {
		require.NotNil(t, p.OldRating)
		require.NotNil(t, p.NewRating)
		assert.Equal(t, 1500, *p.OldRating)
		if *p.PlayerID == *alice {
			assert.Equal(t, 1516, *p.NewRating)
		} else {
			assert.Equal(t, 1484, *p.NewRating)
		}
	}
}

func TestApplyTieIsNoOp(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice", "Bob")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	bob := playerID(t, store, groupID, "Bob")

	match := recordMatch(t, store, groupID, []*string{alice}, []*string{bob}, 10, 10, true, 100)
	require.NoError(t, engine.Apply(match))

	for _, id := range []*string{alice, bob} {
		r, err := store.GetRating(*id)
		require.NoError(t, err)
		assert.Equal(t, 1500, r, "a tied match must not move ratings even when ranked")
	}

	loaded, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	for _, p := range loaded.Participants {
		assert.Nil(t, p.OldRating, "a tie must not set audit values")
		assert.Nil(t, p.NewRating)
	}
}

func TestApplyUnrankedIsNoOp(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice", "Bob")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	bob := playerID(t, store, groupID, "Bob")

	match := recordMatch(t, store, groupID, []*string{alice}, []*string{bob}, 21, 15, false, 100)
	require.NoError(t, engine.Apply(match))

	r, err := store.GetRating(*alice)
	require.NoError(t, err)
	assert.Equal(t, 1500, r)
}

func TestApplyAnonymousSlot(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice", "Bob", "Cara")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	bob := playerID(t, store, groupID, "Bob")
	cara := playerID(t, store, groupID, "Cara")

	// Alice pairs with an untracked guest. The guest counts as 1500 for the
	// team average but gets no persisted rating.
	match := recordMatch(t, store, groupID, []*string{alice, nil}, []*string{bob, cara}, 21, 12, true, 100)
	require.NoError(t, engine.Apply(match))

	aliceRating, err := store.GetRating(*alice)
	require.NoError(t, err)
	assert.Equal(t, 1516, aliceRating)

	bobRating, err := store.GetRating(*bob)
	require.NoError(t, err)
	assert.Equal(t, 1484, bobRating)

	loaded, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	for _, p := range loaded.Participants {
		if p.PlayerID == nil {
			assert.Nil(t, p.OldRating, "anonymous slots never receive audit values")
			assert.Nil(t, p.NewRating)
		}
	}
}

func TestApplyMissingPlayerAborts(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	ghost := "no-such-player"

	match := &league.Match{
		ID:         "m-ghost",
		GroupID:    groupID,
		Date:       100,
		TeamAScore: 21,
		TeamBScore: 15,
		Ranked:     true,
		Participants: []league.Participant{
			{MatchID: "m-ghost", PlayerID: alice, Side: league.SideA},
			{MatchID: "m-ghost", PlayerID: &ghost, Side: league.SideB},
		},
	}

	err := engine.Apply(match)
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)

	// The stale reference aborts the whole update before any write.
	r, err := store.GetRating(*alice)
	require.NoError(t, err)
	assert.Equal(t, 1500, r)
}

func TestReplayEqualsIncrementalFold(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice", "Bob", "Cara", "Dan")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	bob := playerID(t, store, groupID, "Bob")
	cara := playerID(t, store, groupID, "Cara")
	dan := playerID(t, store, groupID, "Dan")

	matches := []*league.Match{
		recordMatch(t, store, groupID, []*string{alice, bob}, []*string{cara, dan}, 21, 15, true, 100),
		recordMatch(t, store, groupID, []*string{alice, cara}, []*string{bob, dan}, 18, 21, true, 200),
		recordMatch(t, store, groupID, []*string{alice}, []*string{dan}, 11, 11, true, 300), // tie, no-op
		recordMatch(t, store, groupID, []*string{bob}, []*string{cara}, 21, 19, false, 400), // unranked
		recordMatch(t, store, groupID, []*string{dan}, []*string{alice}, 21, 8, true, 500),
	}
	for _, m := range matches {
		require.NoError(t, engine.Apply(m))
	}

	snapshot := func() map[string]int {
		ratings := make(map[string]int)
		for _, id := range []*string{alice, bob, cara, dan} {
			r, err := store.GetRating(*id)
			require.NoError(t, err)
			ratings[*id] = r
		}
		return ratings
	}

	incremental := snapshot()

	require.NoError(t, engine.Replay(groupID))
	afterFirst := snapshot()
	assert.Equal(t, incremental, afterFirst, "replay must reproduce the incremental fold")

	require.NoError(t, engine.Replay(groupID))
	afterSecond := snapshot()
	assert.Equal(t, afterFirst, afterSecond, "replay must be idempotent")
}

func TestReplayOrdersByDateNotCreation(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice", "Bob")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	bob := playerID(t, store, groupID, "Bob")

	// Inserted out of order: the later-dated match first.
	recordMatch(t, store, groupID, []*string{alice}, []*string{bob}, 21, 10, true, 500)
	recordMatch(t, store, groupID, []*string{bob}, []*string{alice}, 21, 10, true, 100)

	require.NoError(t, engine.Replay(groupID))

	// Fold order is by date: Bob wins at 1500 vs 1500 (+16/-16), then Alice
	// wins as the underdog at 1484 vs 1516.
	aliceRating, err := store.GetRating(*alice)
	require.NoError(t, err)
	bobRating, err := store.GetRating(*bob)
	require.NoError(t, err)

	assert.Greater(t, aliceRating, 1500)
	assert.Less(t, bobRating, 1500)
	assert.Equal(t, 3000, aliceRating+bobRating, "deltas are symmetric in a singles match-up")
}

func TestReplayAfterDeleteRestoresHistory(t *testing.T) {
	engine, store, groupID, teardown := setupTest(t, "Alice", "Bob")
	defer teardown()

	alice := playerID(t, store, groupID, "Alice")
	bob := playerID(t, store, groupID, "Bob")

	first := recordMatch(t, store, groupID, []*string{alice}, []*string{bob}, 21, 15, true, 100)
	require.NoError(t, engine.Apply(first))

	bogus := recordMatch(t, store, groupID, []*string{alice}, []*string{bob}, 21, 0, true, 200)
	require.NoError(t, engine.Apply(bogus))

	// Remove the erroneous match and recompute instead of trying to invert
	// the incremental update.
	require.NoError(t, store.DeleteMatch(bogus.ID))
	require.NoError(t, engine.Replay(groupID))

	aliceRating, err := store.GetRating(*alice)
	require.NoError(t, err)
	bobRating, err := store.GetRating(*bob)
	require.NoError(t, err)
	assert.Equal(t, 1516, aliceRating)
	assert.Equal(t, 1484, bobRating)
}
