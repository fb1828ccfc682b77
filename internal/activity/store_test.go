package activity

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/shuttle-bracket/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	s := New(db).(*store)
	s.now = func() time.Time { return time.Date(2026, 1, 10, 16, 0, 0, 0, time.UTC) }
	return s, teardown
}

func TestRecordAndList(t *testing.T) {
	s, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	entries, err := s.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	s.Record(ctx, ActionMatchUpdate, map[string]any{"matchId": "7"})
	s.Record(ctx, ActionMasterReset, map[string]any{"totalMatchesReset": 69})
	s.Record(ctx, ActionRestore, nil)

	entries, err = s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionRestore, entries[0].Action)
	assert.Empty(t, entries[0].Details)
	assert.Equal(t, ActionMasterReset, entries[1].Action)
	assert.Equal(t, float64(69), entries[1].Details["totalMatchesReset"])
	assert.Equal(t, time.Date(2026, 1, 10, 16, 0, 0, 0, time.UTC), entries[1].CreatedAt)
}
