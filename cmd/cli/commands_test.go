package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/shuttle-bracket/internal/tournament"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	p1, p2, err := parseScore("21-15")
	require.NoError(t, err)
	assert.Equal(t, 21, p1)
	assert.Equal(t, 15, p2)

	_, _, err = parseScore("twenty")
	assert.Error(t, err)
}

func newUpdateFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	fresh := &cobra.Command{}
	addUpdateFlags(fresh)
	require.NoError(t, fresh.Flags().Parse(args))
	return fresh
}

func TestBuildUpdate_OnlyChangedFields(t *testing.T) {
	raw, err := buildUpdate(newUpdateFlags(t, "--status", "COMPLETED", "--score", "21-19", "--winner", "Alice"), "7")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, map[string]any{
		"matchId": "7",
		"status":  "COMPLETED",
		"winner":  "Alice",
		"score":   map[string]any{"p1": float64(21), "p2": float64(19)},
	}, body)

	raw, err = buildUpdate(newUpdateFlags(t, "--clear-winner"), "7")
	require.NoError(t, err)
	body = nil
	require.NoError(t, json.Unmarshal(raw, &body))
	v, ok := body["winner"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.NotContains(t, body, "status")
}

func TestWithDryRun(t *testing.T) {
	dryRun = false
	assert.Equal(t, "/api/admin/reset", withDryRun("/api/admin/reset"))
	dryRun = true
	defer func() { dryRun = false }()
	assert.Equal(t, "/api/admin/reset?dry_run=true", withDryRun("/api/admin/reset"))
}

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tournament.json")
	out := filepath.Join(dir, "resolved.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
		"players": [], "categories": ["X"], "courts": [],
		"matches": [
			{"id": "1", "category": "X", "stage": "Gr A (1-2)", "player1": "Alice", "player2": "Bob", "score": {"p1": 21, "p2": 10}, "status": "COMPLETED", "winner": "Alice"},
			{"id": "2", "category": "X", "stage": "Final", "player1": "Winner Gr A", "player2": "Winner Gr B", "score": null, "status": "SCHEDULED", "winner": null}
		]
	}`), 0o600))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"resolve", "--file", in, "--write", out})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, stdout.String(), "Alice")
	assert.Contains(t, stdout.String(), "Advanced (1)")
	assert.Contains(t, stdout.String(), "Winner Gr B")

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var resolved tournament.Snapshot
	require.NoError(t, json.Unmarshal(raw, &resolved))
	final := resolved.FindMatch("2")
	assert.Equal(t, "Alice", final.Player1)
	assert.Equal(t, "Winner Gr A", final.Player1Placeholder)
	assert.Equal(t, "Winner Gr B", final.Player2)
}
