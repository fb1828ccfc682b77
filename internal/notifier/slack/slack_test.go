package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/metrics"
	"github.com/mauv0809/shuttle-bracket/internal/notifier"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	calls                  int
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.calls++
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.NotifSent(channelName))
}

func TestSendMessage_Success(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.Equal(t, 1, api.calls, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent(channelName))
	assert.Equal(t, 0, metrics.NotifFailed(channelName))
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.NotifSent(channelName))
	assert.Equal(t, 1, metrics.NotifFailed(channelName))
}

func TestMatchUpdated_OnlyCompletedMatches(t *testing.T) {
	api := &mockSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, n.MatchUpdated(&tournament.Match{ID: "1", Status: tournament.StatusPlaying}, false))
	assert.Equal(t, 0, api.calls)

	require.NoError(t, n.MatchUpdated(&tournament.Match{ID: "1", Status: tournament.StatusCompleted}, false))
	assert.Equal(t, 1, api.calls)
}

func TestAdvancementsResolved(t *testing.T) {
	api := &mockSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, n.AdvancementsResolved(nil, false))
	assert.Equal(t, 0, api.calls, "nothing to announce")

	require.NoError(t, n.AdvancementsResolved([]advancement.Change{{Name: "Alice"}}, false))
	assert.Equal(t, 1, api.calls)
}

func TestSnapshotRefreshed_SkipsAdvancementRefresh(t *testing.T) {
	api := &mockSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, n.SnapshotRefreshed(&tournament.Snapshot{}, notifier.ReasonAdvancement, false))
	assert.Equal(t, 0, api.calls)

	require.NoError(t, n.SnapshotRefreshed(&tournament.Snapshot{}, notifier.ReasonReset, false))
	assert.Equal(t, 1, api.calls)
}

func TestFormatResult(t *testing.T) {
	match := &tournament.Match{
		ID: "12", Category: "Mens Singles", Stage: "Gr A (1-2)", Court: "Court 5",
		Player1: "Alice", Player2: "Bob",
		Score:  &tournament.Score{P1: 21, P2: 15},
		Status: tournament.StatusCompleted,
		Winner: tournament.StringPtr("Alice"),
	}
	msg := formatResult(match)
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Contains(t, header.Text.Text, "Match finished")

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Mens Singles · Gr A (1-2)\nCourt 5", details.Text.Text)

	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Alice 21 - 15 Bob\nAlice won! 🏆", result.Text.Text)
}

func TestFormatAdvancements(t *testing.T) {
	msg := formatAdvancements([]advancement.Change{
		{Slot: advancement.Slot{MatchID: "61", Category: "Kids Singles Boy", Position: 1, Text: "Winner Gr A"}, Kind: advancement.KindGroupWinner, Name: "Aarav"},
	})
	require.Len(t, msg.Blocks.BlockSet, 2)
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "• *Aarav* takes _Winner Gr A_ in match 61 (Kids Singles Boy)", section.Text.Text)
}

func TestFormatStandings(t *testing.T) {
	msg := formatStandings("Mens Singles", "A", []standings.Entrant{
		{Name: "Alice", Won: 2, Lost: 0, PointDiff: 12},
		{Name: "Bob", Won: 0, Lost: 2, PointDiff: -12},
	})
	require.Len(t, msg.Blocks.BlockSet, 2)
	header := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "📊 Mens Singles · Group A", header.Text.Text)
	section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	assert.Equal(t, "```1. Alice  W2 L0  +12\n2. Bob  W0 L2  -12```", section.Text.Text)

	empty := formatStandings("Mens Singles", "Pool", nil)
	assert.Equal(t, "📊 Mens Singles", empty.Blocks.BlockSet[0].(*slackapi.HeaderBlock).Text.Text)
}
