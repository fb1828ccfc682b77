package store

import (
	"context"

	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// Store persists the tournament snapshot. The engine never touches it; the
// processor loads before and saves after every update cycle.
type Store interface {
	Load(ctx context.Context) (*tournament.Snapshot, error)
	Save(ctx context.Context, snapshot *tournament.Snapshot) error
	IsEmpty(ctx context.Context) (bool, error)
}
