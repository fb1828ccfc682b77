package processor

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/mauv0809/shuttle-bracket/internal/activity"
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/metrics"
	"github.com/mauv0809/shuttle-bracket/internal/pubsub"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidUpdate   = errors.New("invalid match update")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Processor runs every write against the tournament. Writes are serialised:
// each one loads, recomputes and saves the whole snapshot.
type Processor struct {
	mu       sync.Mutex
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	activity activity.Log
}

// Optional distinguishes an absent JSON field from an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only called when the key is present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// MatchUpdate carries the fields a scorer may change. Absent fields are
// left untouched.
type MatchUpdate struct {
	MatchID string                           `json:"matchId"`
	Score   Optional[tournament.Score]       `json:"score"`
	Status  Optional[tournament.MatchStatus] `json:"status"`
	Winner  Optional[string]                 `json:"winner"`
	Player1 Optional[string]                 `json:"player1"`
	Player2 Optional[string]                 `json:"player2"`
}

// UpdateResult is what one update cycle produced.
type UpdateResult struct {
	Match    *tournament.Match    `json:"match"`
	Advanced []advancement.Change `json:"advanced"`
}

// RestoreStats summarises a restored backup.
type RestoreStats struct {
	Players    int `json:"players"`
	Matches    int `json:"matches"`
	Categories int `json:"categories"`
	Courts     int `json:"courts"`
}
