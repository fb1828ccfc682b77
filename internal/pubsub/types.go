package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	prefix   string
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. The
// event type doubles as the topic name.
type EventType string

const (
	EventMatchUpdated        EventType = "match-updated"
	EventAdvancementResolved EventType = "advancement-resolved"
	EventSnapshotRefreshed   EventType = "snapshot-refreshed"
)

// Envelope wraps every published payload.
type Envelope struct {
	ID      string    `msgpack:"id"`
	Type    EventType `msgpack:"type"`
	SentAt  time.Time `msgpack:"sent_at"`
	Payload []byte    `msgpack:"payload"`
}

// MatchUpdatedEvent is published after a match update has been persisted.
type MatchUpdatedEvent struct {
	MatchID  string `msgpack:"match_id"`
	Category string `msgpack:"category"`
	Stage    string `msgpack:"stage"`
	Player1  string `msgpack:"player1"`
	Player2  string `msgpack:"player2"`
	Status   string `msgpack:"status"`
	Winner   string `msgpack:"winner,omitempty"`
	Score    []int  `msgpack:"score,omitempty"`
}

// AdvancementResolvedEvent is published once per slot filled by the resolver.
type AdvancementResolvedEvent struct {
	MatchID     string `msgpack:"match_id"`
	Category    string `msgpack:"category"`
	Slot        int    `msgpack:"slot"`
	Placeholder string `msgpack:"placeholder"`
	Name        string `msgpack:"name"`
}

// SnapshotRefreshedEvent is published after a reset or restore.
type SnapshotRefreshedEvent struct {
	Reason  string `msgpack:"reason"`
	Matches int    `msgpack:"matches"`
}
