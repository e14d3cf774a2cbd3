package pubsub

import "cloud.google.com/go/pubsub"

// Topics published by the application.
const (
	TopicMatchRecorded   = "match-recorded"
	TopicRatingsReplayed = "ratings-replayed"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}
