package notifier

import (
	"errors"
	"testing"

	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	failing := NewMock()
	expectedErr := errors.New("slack is down")
	failing.MatchUpdatedFunc = func(*tournament.Match, bool) error { return expectedErr }
	ok := NewMock()

	multi := NewMulti(failing, nil, ok)
	require.Len(t, multi, 2)

	err := multi.MatchUpdated(&tournament.Match{ID: "7"}, false)
	assert.ErrorIs(t, err, expectedErr)
	require.Len(t, ok.MatchUpdatedCalls, 1, "later notifiers still run")
	assert.Equal(t, "7", ok.MatchUpdatedCalls[0].Match.ID)

	require.NoError(t, multi.AdvancementsResolved([]advancement.Change{{Name: "Alice"}}, false))
	require.NoError(t, multi.SnapshotRefreshed(&tournament.Snapshot{}, "reset", true))
	assert.Equal(t, []string{"reset"}, failing.SnapshotRefreshedCalls)
	assert.Len(t, ok.AdvancementsResolvedCalls, 1)
}

func TestMulti_Empty(t *testing.T) {
	assert.NoError(t, NewMulti().MatchUpdated(&tournament.Match{}, false))
}
