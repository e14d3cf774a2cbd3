package league_test

import (
	"database/sql"
	"testing"

	"github.com/rallyrank/rallyrank/internal/database"
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := league.New(db, 1500)
	return store, db, dbTeardown
}

func TestCreateAndGetGroup(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("tuesday badminton")
	require.NoError(t, err)
	require.NotEmpty(t, group.ID)

	fetched, err := store.GetGroup(group.ID)
	require.NoError(t, err)
	assert.Equal(t, "tuesday badminton", fetched.Name)

	_, err = store.GetGroup("nope")
	assert.ErrorIs(t, err, league.ErrGroupNotFound)
}

func TestResolvePlayerIsIdempotentByName(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("g")
	require.NoError(t, err)

	first, err := store.ResolvePlayer(group.ID, "Alice")
	require.NoError(t, err)
	assert.Equal(t, 1500, first.Rating, "new players start at the initial rating")

	second, err := store.ResolvePlayer(group.ID, "Alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resolving the same name must reuse the player")

	players, err := store.GetPlayers(group.ID)
	require.NoError(t, err)
	assert.Len(t, players, 1)

	// The same name in another group is a different player.
	other, err := store.CreateGroup("other")
	require.NoError(t, err)
	third, err := store.ResolvePlayer(other.ID, "Alice")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestAdjustRatingIsRelative(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("g")
	require.NoError(t, err)
	player, err := store.ResolvePlayer(group.ID, "Alice")
	require.NoError(t, err)

	newRating, err := store.AdjustRating(player.ID, 16)
	require.NoError(t, err)
	assert.Equal(t, 1516, newRating)

	newRating, err = store.AdjustRating(player.ID, -20)
	require.NoError(t, err)
	assert.Equal(t, 1496, newRating)

	r, err := store.GetRating(player.ID)
	require.NoError(t, err)
	assert.Equal(t, 1496, r)

	_, err = store.AdjustRating("missing", 10)
	assert.ErrorIs(t, err, league.ErrPlayerNotFound)
}

func TestResetRatingsScopedToGroup(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	groupA, err := store.CreateGroup("a")
	require.NoError(t, err)
	groupB, err := store.CreateGroup("b")
	require.NoError(t, err)

	alice, err := store.ResolvePlayer(groupA.ID, "Alice")
	require.NoError(t, err)
	bob, err := store.ResolvePlayer(groupB.ID, "Bob")
	require.NoError(t, err)

	_, err = store.AdjustRating(alice.ID, 100)
	require.NoError(t, err)
	_, err = store.AdjustRating(bob.ID, 100)
	require.NoError(t, err)

	require.NoError(t, store.ResetRatings(groupA.ID, 1500))

	aliceRating, err := store.GetRating(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500, aliceRating)

	bobRating, err := store.GetRating(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1600, bobRating, "other groups must be untouched")
}

func TestListMatchesOrdersByDate(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("g")
	require.NoError(t, err)

	// Insert out of date order.
	late := &league.Match{GroupID: group.ID, Date: 300, TeamAScore: 1, TeamBScore: 0, Ranked: true}
	require.NoError(t, store.CreateMatch(late))
	early := &league.Match{GroupID: group.ID, Date: 100, TeamAScore: 0, TeamBScore: 1, Ranked: true}
	require.NoError(t, store.CreateMatch(early))

	matches, err := store.ListMatches(group.ID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, early.ID, matches[0].ID)
	assert.Equal(t, late.ID, matches[1].ID)
}

func TestParticipantsRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("g")
	require.NoError(t, err)
	alice, err := store.ResolvePlayer(group.ID, "Alice")
	require.NoError(t, err)

	match := &league.Match{GroupID: group.ID, Date: 100, TeamAScore: 21, TeamBScore: 15, Ranked: true, InexactScore: true, Court: 1}
	require.NoError(t, store.CreateMatch(match))

	rows := []league.Participant{
		{MatchID: match.ID, PlayerID: &alice.ID, Side: league.SideA},
		{MatchID: match.ID, PlayerID: nil, Side: league.SideB}, // anonymous slot
	}
	require.NoError(t, store.CreateParticipants(match.ID, rows))

	loaded, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	assert.True(t, loaded.InexactScore)
	assert.Equal(t, 1, loaded.Court)
	require.Len(t, loaded.Participants, 2)

	teamA := loaded.Team(league.SideA)
	require.Len(t, teamA, 1)
	assert.Equal(t, alice.ID, *teamA[0].PlayerID)

	teamB := loaded.Team(league.SideB)
	require.Len(t, teamB, 1)
	assert.Nil(t, teamB[0].PlayerID)
}

func TestUpdateAndClearRatingAudit(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("g")
	require.NoError(t, err)
	alice, err := store.ResolvePlayer(group.ID, "Alice")
	require.NoError(t, err)

	match := &league.Match{GroupID: group.ID, Date: 100, TeamAScore: 1, TeamBScore: 0, Ranked: true}
	require.NoError(t, store.CreateMatch(match))
	require.NoError(t, store.CreateParticipants(match.ID, []league.Participant{
		{MatchID: match.ID, PlayerID: &alice.ID, Side: league.SideA},
	}))

	require.NoError(t, store.UpdateRatingAudit(match.ID, alice.ID, 1500, 1516))

	loaded, err := store.GetMatch(match.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Participants[0].OldRating)
	assert.Equal(t, 1500, *loaded.Participants[0].OldRating)
	assert.Equal(t, 1516, *loaded.Participants[0].NewRating)

	require.NoError(t, store.ClearRatingAudit(group.ID))
	loaded, err = store.GetMatch(match.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.Participants[0].OldRating)
	assert.Nil(t, loaded.Participants[0].NewRating)
}

func TestDeleteMatchRemovesParticipants(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("g")
	require.NoError(t, err)

	match := &league.Match{GroupID: group.ID, Date: 100, TeamAScore: 1, TeamBScore: 0, Ranked: true}
	require.NoError(t, store.CreateMatch(match))
	require.NoError(t, store.CreateParticipants(match.ID, []league.Participant{
		{MatchID: match.ID, PlayerID: nil, Side: league.SideA},
	}))

	require.NoError(t, store.DeleteMatch(match.ID))

	_, err = store.GetMatch(match.ID)
	assert.ErrorIs(t, err, league.ErrMatchNotFound)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM match_players WHERE match_id = ?`, match.ID).Scan(&count))
	assert.Equal(t, 0, count)

	assert.ErrorIs(t, store.DeleteMatch(match.ID), league.ErrMatchNotFound)
}

func TestLeaderboardOrdersByRating(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	group, err := store.CreateGroup("g")
	require.NoError(t, err)

	alice, err := store.ResolvePlayer(group.ID, "Alice")
	require.NoError(t, err)
	_, err = store.ResolvePlayer(group.ID, "Bob")
	require.NoError(t, err)
	cara, err := store.ResolvePlayer(group.ID, "Cara")
	require.NoError(t, err)

	_, err = store.AdjustRating(alice.ID, -50)
	require.NoError(t, err)
	_, err = store.AdjustRating(cara.ID, 50)
	require.NoError(t, err)

	board, err := store.Leaderboard(group.ID)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "Cara", board[0].Name)
	assert.Equal(t, "Bob", board[1].Name)
	assert.Equal(t, "Alice", board[2].Name)
}
