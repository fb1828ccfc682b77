package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// ReadSnapshotFile decodes a tournament JSON document such as a seed file or
// a downloaded backup.
func ReadSnapshotFile(path string) (*tournament.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var snapshot tournament.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &snapshot, nil
}

// Seed stores the snapshot from path when the store holds no matches yet.
// It reports whether anything was written.
func Seed(ctx context.Context, s Store, path string) (bool, error) {
	empty, err := s.IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to inspect store: %w", err)
	}
	if !empty {
		log.Info("Tournament data already present, skipping seed")
		return false, nil
	}
	snapshot, err := ReadSnapshotFile(path)
	if err != nil {
		return false, err
	}
	if err := s.Save(ctx, snapshot); err != nil {
		return false, fmt.Errorf("failed to save seed: %w", err)
	}
	log.Info("Tournament data initialized from seed file", "path", path, "matches", len(snapshot.Matches))
	return true, nil
}
