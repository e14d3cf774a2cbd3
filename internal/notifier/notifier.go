package notifier

import "github.com/rallyrank/rallyrank/internal/league"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendResultNotification announces a recorded match, including rating
	// movements when the match was ranked and decisive.
	SendResultNotification(match *league.Match, players []league.Player, dryRun bool) error
	// SendLeaderboard posts the group standings, best rating first.
	SendLeaderboard(groupName string, players []league.Player, dryRun bool) error
}
