package processor

import (
	"github.com/rallyrank/rallyrank/internal/metrics"
	"github.com/rallyrank/rallyrank/internal/pubsub"
)

// Processor handles the business logic of recording matches and keeping
// ratings, notifications and events in sync.
type Processor struct {
	store    Store
	rater    Rater
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}

// RecordMatchParams describes one completed match to record. Team slots are
// player names; an empty name is an anonymous slot that counts toward team
// strength but never gets a rating update.
type RecordMatchParams struct {
	GroupID      string   `json:"group_id"`
	Date         int64    `json:"date"`
	TeamA        []string `json:"team_a"`
	TeamB        []string `json:"team_b"`
	TeamAScore   int      `json:"team_a_score"`
	TeamBScore   int      `json:"team_b_score"`
	InexactScore bool     `json:"inexact_score"`
	Ranked       bool     `json:"ranked"`
	Court        int      `json:"court"`
}
