package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rallyrank/rallyrank/internal/league"
	"github.com/rallyrank/rallyrank/internal/metrics"
	"github.com/rallyrank/rallyrank/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendResultNotification announces a recorded match result.
func (s *Notifier) SendResultNotification(match *league.Match, players []league.Player, dryRun bool) error {
	msg := s.formatResultNotification(match, players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendLeaderboard posts the group standings.
func (s *Notifier) SendLeaderboard(groupName string, players []league.Player, dryRun bool) error {
	msg := s.formatLeaderboard(groupName, players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) formatResultNotification(match *league.Match, players []league.Player) slack.Message {
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	sideNames := func(side league.Side) string {
		var parts []string
		for _, p := range match.Team(side) {
			if p.PlayerID == nil {
				parts = append(parts, "?")
				continue
			}
			parts = append(parts, names[*p.PlayerID])
		}
		return strings.Join(parts, " and ")
	}

	score := fmt.Sprintf("%d – %d", match.TeamAScore, match.TeamBScore)
	if match.InexactScore {
		switch {
		case match.TeamAScore > match.TeamBScore:
			score = "win"
		case match.TeamBScore > match.TeamAScore:
			score = "loss"
		default:
			score = "draw"
		}
	}

	headline := fmt.Sprintf("*%s* %s *%s*", sideNames(league.SideA), score, sideNames(league.SideB))
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Match result", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, headline, false, false), nil, nil),
	}

	var movements []string
	for _, p := range match.Participants {
		if p.PlayerID == nil || p.OldRating == nil || p.NewRating == nil {
			continue
		}
		delta := *p.NewRating - *p.OldRating
		movements = append(movements, fmt.Sprintf("%s %d → %d (%+d)", names[*p.PlayerID], *p.OldRating, *p.NewRating, delta))
	}
	if len(movements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, strings.Join(movements, " · "), false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatLeaderboard(groupName string, players []league.Player) slack.Message {
	var sb strings.Builder
	medals := []string{":first_place_medal:", ":second_place_medal:", ":third_place_medal:"}
	for i, p := range players {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&sb, "%s *%s* — %d\n", rank, p.Name, p.Rating)
	}
	if sb.Len() == 0 {
		sb.WriteString("No players yet.")
	}

	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("%s leaderboard", groupName), false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false), nil, nil),
	)
}
