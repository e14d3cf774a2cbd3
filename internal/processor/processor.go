package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/rallyrank/rallyrank/internal/metrics"
	"github.com/rallyrank/rallyrank/internal/pubsub"
)

// New creates a new Processor.
func New(store Store, rater Rater, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		rater:    rater,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// RecordMatch persists a completed match, applies rating changes when the
// match is ranked, and fans out the result (pubsub event + notification).
// In dry-run mode nothing is persisted or published; the assembled match is
// still returned so callers can inspect what would have been recorded.
func (p *Processor) RecordMatch(params RecordMatchParams, dryRun bool) (*league.Match, error) {
	startTime := time.Now()

	group, err := p.store.GetGroup(params.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	date := params.Date
	if date == 0 {
		date = time.Now().Unix()
	}

	match := &league.Match{
		ID:           uuid.New().String(),
		GroupID:      group.ID,
		Date:         date,
		TeamAScore:   params.TeamAScore,
		TeamBScore:   params.TeamBScore,
		InexactScore: params.InexactScore,
		Ranked:       params.Ranked,
		Court:        params.Court,
	}

	participants, err := p.resolveParticipants(group.ID, match.ID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}
	match.Participants = participants

	if dryRun {
		log.Info("[Dry Run] Would record match", "matchID", match.ID, "group", group.Name)
		p.notifier.SendResultNotification(match, p.knownPlayers(group.ID), dryRun)
		return match, nil
	}

	if err := p.store.CreateMatch(match); err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}
	if err := p.store.CreateParticipants(match.ID, match.Participants); err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}
	log.Info("Recorded match", "matchID", match.ID, "group", group.Name, "ranked", match.Ranked)

	if match.Ranked {
		if err := p.rater.Apply(match); err != nil {
			return nil, fmt.Errorf("failed to record match: %w", err)
		}
		// Re-read so the notification carries the audit values the rating
		// engine just wrote.
		match, err = p.store.GetMatch(match.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to record match: %w", err)
		}
	}

	if err := p.pubsub.SendMessage(pubsub.TopicMatchRecorded, match); err != nil {
		log.Error("Failed to publish match-recorded event", "error", err, "matchID", match.ID)
	}
	p.notifier.SendResultNotification(match, p.knownPlayers(group.ID), dryRun)

	p.metrics.IncMatchesRecorded()
	p.metrics.ObserveRecordDuration(time.Since(startTime).Seconds())
	return match, nil
}

// RemoveMatch deletes a match and its participant rows. With replayAfter the
// group's rating history is rebuilt afterwards, so standings reflect the
// corrected match log.
func (p *Processor) RemoveMatch(matchID string, replayAfter, dryRun bool) error {
	match, err := p.store.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("failed to remove match: %w", err)
	}

	if dryRun {
		log.Info("[Dry Run] Would remove match", "matchID", matchID, "replayAfter", replayAfter)
		return nil
	}

	if err := p.store.DeleteMatch(matchID); err != nil {
		return fmt.Errorf("failed to remove match: %w", err)
	}
	log.Info("Removed match", "matchID", matchID, "group", match.GroupID)

	if replayAfter {
		return p.Recalculate(match.GroupID, dryRun)
	}
	return nil
}

// Recalculate rebuilds the group's ratings from the full match log and posts
// the fresh standings.
func (p *Processor) Recalculate(groupID string, dryRun bool) error {
	group, err := p.store.GetGroup(groupID)
	if err != nil {
		return fmt.Errorf("failed to recalculate ratings: %w", err)
	}

	if dryRun {
		log.Info("[Dry Run] Would replay rating history", "group", group.Name)
		return nil
	}

	if err := p.rater.Replay(groupID); err != nil {
		return fmt.Errorf("failed to recalculate ratings: %w", err)
	}
	p.metrics.IncRatingReplays()

	if err := p.pubsub.SendMessage(pubsub.TopicRatingsReplayed, group); err != nil {
		log.Error("Failed to publish ratings-replayed event", "error", err, "group", groupID)
	}

	standings, err := p.store.Leaderboard(groupID)
	if err != nil {
		log.Error("Failed to load standings after replay", "error", err, "group", groupID)
		return nil
	}
	p.notifier.SendLeaderboard(group.Name, standings, dryRun)
	return nil
}

// resolveParticipants turns the two name lists into participant rows,
// creating unknown players on the fly. Empty names become anonymous slots.
func (p *Processor) resolveParticipants(groupID, matchID string, params RecordMatchParams) ([]league.Participant, error) {
	var rows []league.Participant
	sides := []struct {
		side  league.Side
		names []string
	}{
		{league.SideA, params.TeamA},
		{league.SideB, params.TeamB},
	}
	for _, s := range sides {
		for _, name := range s.names {
			row := league.Participant{MatchID: matchID, Side: s.side}
			if name != "" {
				player, err := p.store.ResolvePlayer(groupID, name)
				if err != nil {
					return nil, err
				}
				id := player.ID
				row.PlayerID = &id
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (p *Processor) knownPlayers(groupID string) []league.Player {
	players, err := p.store.GetPlayers(groupID)
	if err != nil {
		log.Error("Failed to load players for notification", "error", err, "group", groupID)
		return nil
	}
	return players
}
