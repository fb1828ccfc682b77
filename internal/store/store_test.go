package store_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/shuttle-bracket/internal/database"
	"github.com/mauv0809/shuttle-bracket/internal/store"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (store.Store, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return store.New(db), db, teardown
}

func sampleSnapshot() *tournament.Snapshot {
	return &tournament.Snapshot{
		Players:    []tournament.Player{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}},
		Categories: []string{"Mens Singles"},
		Courts:     []string{"Court 5"},
		Groups:     []tournament.Group{{ID: "Mens Singles-A", Name: "A", Category: "Mens Singles", Players: []string{"Alice", "Bob"}}},
		Matches: []*tournament.Match{
			{
				ID: "1", Day: "Saturday", Time: "4:00 PM", Court: "Court 5",
				Category: "Mens Singles", Stage: "Gr A (1-2)",
				Player1: "Alice", Player2: "Bob",
				Score:  &tournament.Score{P1: 21, P2: 15},
				Status: tournament.StatusCompleted,
				Winner: tournament.StringPtr("Alice"),
				Format: "21 Points",
			},
			{
				ID: "2", Category: "Mens Singles", Stage: "Final",
				Player1: "Alice", Player2: "Winner SF 2",
				Player1Placeholder: "Winner Gr A",
				Status:             tournament.StatusScheduled,
			},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	empty, err := s.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	want := sampleSnapshot()
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty, err = s.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestSave_UpdatesAndDeletes(t *testing.T) {
	s, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	snapshot := sampleSnapshot()
	require.NoError(t, s.Save(ctx, snapshot))

	snapshot.Matches = snapshot.Matches[1:]
	snapshot.Matches[0].Player2 = "Bob"
	require.NoError(t, s.Save(ctx, snapshot))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "2", got.Matches[0].ID)
	assert.Equal(t, "Bob", got.Matches[0].Player2)
	assert.Nil(t, got.Matches[0].Score)
	assert.Nil(t, got.Matches[0].Winner)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLoad_UnreadableRowFails(t *testing.T) {
	s, db, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))
	_, err := db.Exec("UPDATE matches SET score_p1 = 'not a number' WHERE id = '1'")
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count))
	assert.Equal(t, 2, count, "the unreadable row is kept")
}

func TestLoad_EmptyStore(t *testing.T) {
	s, _, teardown := setupTestDB(t)
	defer teardown()

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Matches)
	assert.NotNil(t, got.Players)
}

func TestSeed(t *testing.T) {
	s, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "tournament.seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"players": [{"id": "1", "name": "Alice", "phone": null}],
		"categories": ["Kids Singles Boy"],
		"courts": ["Court 5"],
		"matches": [
			{"id": "1", "category": "Kids Singles Boy", "stage": "Gr A (1-2)", "player1": "Alice", "player2": "Bob", "score": {"p1": "11", "p2": 7}, "status": "COMPLETED", "winner": "Alice"},
			{"id": "2", "category": "Kids Singles Boy", "stage": "Semi 1", "player1": "Winner Gr A", "player2": "Winner Gr B", "score": null, "status": "SCHEDULED", "winner": null}
		]
	}`), 0o600))

	seeded, err := store.Seed(ctx, s, path)
	require.NoError(t, err)
	assert.True(t, seeded)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Matches, 2)
	require.NotNil(t, got.Matches[0].Score)
	assert.Equal(t, 11, got.Matches[0].Score.P1, "numeric strings are accepted")
	assert.Equal(t, "Winner Gr A", got.Matches[1].Player1)

	seeded, err = store.Seed(ctx, s, path)
	require.NoError(t, err)
	assert.False(t, seeded, "an existing tournament is never overwritten")
}

func TestSeed_MissingFile(t *testing.T) {
	s, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.Seed(context.Background(), s, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReadSnapshotFile_ShippedSeed(t *testing.T) {
	snapshot, err := store.ReadSnapshotFile(filepath.Join("..", "..", "data", "tournament.seed.json"))
	require.NoError(t, err)

	assert.Len(t, snapshot.Matches, 16)
	assert.Equal(t, []string{"Kids Singles Boy", "Mens Doubles"}, snapshot.Categories)
	for _, m := range snapshot.Matches {
		assert.Equal(t, tournament.StatusScheduled, m.Status, m.ID)
		assert.Nil(t, m.Score, m.ID)
	}
}
