package processor

import (
	"context"

	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// Store defines the persistence operations required by the processor.
type Store interface {
	Load(ctx context.Context) (*tournament.Snapshot, error)
	Save(ctx context.Context, snapshot *tournament.Snapshot) error
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
