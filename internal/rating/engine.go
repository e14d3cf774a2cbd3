// Package rating maintains Elo-style integer skill ratings for league
// players. Ratings move only on ranked matches with a decisive score; ties
// are a defined no-op. The entire rating history can be rebuilt
// deterministically by replaying the match log from the initial rating.
package rating

import (
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/rallyrank/rallyrank/internal/league"
)

// Config carries the rating parameters, explicit per deployment rather than
// hidden constants.
type Config struct {
	// InitialRating is assigned to new players and stands in for anonymous
	// slots when averaging a side's strength.
	InitialRating int
	// KFactor controls the magnitude of rating change per match.
	KFactor float64
}

// DefaultConfig returns the standard club setup: 1500 start, K=32.
func DefaultConfig() Config {
	return Config{InitialRating: 1500, KFactor: 32}
}

// Engine applies match outcomes to player ratings. A single mutex serializes
// incremental updates and replays: a replay is a full-state recomputation
// and must not interleave with concurrent applies over the same players.
type Engine struct {
	store Store
	cfg   Config
	mu    sync.Mutex
}

// New creates a rating engine over the given store.
func New(store Store, cfg Config) *Engine {
	return &Engine{store: store, cfg: cfg}
}

// ComputeDelta returns the shared rating delta for each side of a decisive
// match, from the Elo expectation of the side averages. Every player on a
// side receives the same delta on top of their own rating. The winner delta
// is non-negative, the loser delta non-positive.
func (c Config) ComputeDelta(winnerRatings, loserRatings []int) (winnerDelta, loserDelta int) {
	winnerAvg := mean(winnerRatings)
	loserAvg := mean(loserRatings)

	expectedWinner := 1 / (1 + math.Pow(10, (loserAvg-winnerAvg)/400))
	expectedLoser := 1 - expectedWinner

	winnerDelta = int(math.Round(c.KFactor * (1 - expectedWinner)))
	loserDelta = int(math.Round(c.KFactor * (0 - expectedLoser)))
	return winnerDelta, loserDelta
}

// Apply moves ratings for a recorded match. Unranked matches and ties leave
// every rating untouched. The per-player update is a relative increment at
// the storage layer, and the audit values written to the participant rows
// derive from that same atomic step.
func (e *Engine) Apply(match *league.Match) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(match)
}

func (e *Engine) apply(match *league.Match) error {
	if !match.Ranked {
		log.Debug("Skipping unranked match", "matchID", match.ID)
		return nil
	}
	winner, decisive := match.Winner()
	if !decisive {
		log.Debug("Skipping tied match", "matchID", match.ID)
		return nil
	}

	loser := league.SideB
	if winner == league.SideB {
		loser = league.SideA
	}
	winners := match.Team(winner)
	losers := match.Team(loser)

	winnerRatings, err := e.sideRatings(winners)
	if err != nil {
		return fmt.Errorf("rating update for match %s: %w", match.ID, err)
	}
	loserRatings, err := e.sideRatings(losers)
	if err != nil {
		return fmt.Errorf("rating update for match %s: %w", match.ID, err)
	}

	winnerDelta, loserDelta := e.cfg.ComputeDelta(winnerRatings, loserRatings)
	log.Info("Applying rating deltas", "matchID", match.ID, "winnerDelta", winnerDelta, "loserDelta", loserDelta)

	if err := e.adjustSide(match.ID, winners, winnerDelta); err != nil {
		return fmt.Errorf("rating update for match %s: %w", match.ID, err)
	}
	if err := e.adjustSide(match.ID, losers, loserDelta); err != nil {
		return fmt.Errorf("rating update for match %s: %w", match.ID, err)
	}
	return nil
}

// sideRatings collects the current ratings for one side. Anonymous slots
// count as the initial rating for the average but never receive an update.
func (e *Engine) sideRatings(side []league.Participant) ([]int, error) {
	ratings := make([]int, 0, len(side))
	for _, p := range side {
		if p.PlayerID == nil {
			ratings = append(ratings, e.cfg.InitialRating)
			continue
		}
		r, err := e.store.GetRating(*p.PlayerID)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

func (e *Engine) adjustSide(matchID string, side []league.Participant, delta int) error {
	for _, p := range side {
		if p.PlayerID == nil {
			continue
		}
		newRating, err := e.store.AdjustRating(*p.PlayerID, delta)
		if err != nil {
			return err
		}
		if err := e.store.UpdateRatingAudit(matchID, *p.PlayerID, newRating-delta, newRating); err != nil {
			return err
		}
	}
	return nil
}

// Replay rebuilds every rating in the group from scratch: reset to the
// initial rating, clear the audit columns, then fold Apply over the match
// log in ascending date order. Pure fold over (state, match), so running it
// twice yields the same final ratings. This is how history corrections (e.g.
// after deleting a match) are made consistent.
func (e *Engine) Replay(groupID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	log.Info("Replaying rating history", "group", groupID)
	if err := e.store.ResetRatings(groupID, e.cfg.InitialRating); err != nil {
		return fmt.Errorf("replay for group %s: %w", groupID, err)
	}
	if err := e.store.ClearRatingAudit(groupID); err != nil {
		return fmt.Errorf("replay for group %s: %w", groupID, err)
	}

	matches, err := e.store.ListMatches(groupID)
	if err != nil {
		return fmt.Errorf("replay for group %s: %w", groupID, err)
	}

	for _, match := range matches {
		if err := e.apply(match); err != nil {
			return err
		}
	}
	log.Info("Replay finished", "group", groupID, "matches", len(matches))
	return nil
}

func mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
