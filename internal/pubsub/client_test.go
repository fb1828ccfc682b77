package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeDecode(t *testing.T) {
	data, err := Encode(EventAdvancementResolved, AdvancementResolvedEvent{
		MatchID:     "61",
		Category:    "Kids Singles Boy",
		Slot:        1,
		Placeholder: "Winner Gr A",
		Name:        "Aarav",
	})
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, msgpack.Unmarshal(data, &env))
	assert.Equal(t, EventAdvancementResolved, env.Type)
	assert.NotEmpty(t, env.ID)
	assert.False(t, env.SentAt.IsZero())

	var got AdvancementResolvedEvent
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, "Aarav", got.Name)
	assert.Equal(t, "Winner Gr A", got.Placeholder)
}

func TestEncode_UniqueIDs(t *testing.T) {
	a, err := Encode(EventSnapshotRefreshed, SnapshotRefreshedEvent{Reason: "reset"})
	require.NoError(t, err)
	b, err := Encode(EventSnapshotRefreshed, SnapshotRefreshedEvent{Reason: "reset"})
	require.NoError(t, err)

	var envA, envB Envelope
	require.NoError(t, msgpack.Unmarshal(a, &envA))
	require.NoError(t, msgpack.Unmarshal(b, &envB))
	assert.NotEqual(t, envA.ID, envB.ID)
}

func TestDecode_Garbage(t *testing.T) {
	var got MatchUpdatedEvent
	assert.Error(t, Decode([]byte{0xc1}, &got))
}

func TestMock_ProcessMessageDecodes(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(EventMatchUpdated, MatchUpdatedEvent{MatchID: "1"}))
	assert.Equal(t, []EventType{EventMatchUpdated}, m.Topics())

	data, err := Encode(EventMatchUpdated, MatchUpdatedEvent{MatchID: "1", Status: "COMPLETED"})
	require.NoError(t, err)
	var got MatchUpdatedEvent
	require.NoError(t, m.ProcessMessage(data, &got))
	assert.Equal(t, "COMPLETED", got.Status)
}

func TestEvents_RoundTripToDomain(t *testing.T) {
	data, err := Encode(EventMatchUpdated, MatchUpdatedEvent{
		MatchID: "7", Category: "X", Stage: "Final", Player1: "Alice", Player2: "Bob",
		Status: "COMPLETED", Winner: "Alice", Score: []int{21, 19},
	})
	require.NoError(t, err)

	var event MatchUpdatedEvent
	require.NoError(t, Decode(data, &event))
	m := event.Match()
	assert.Equal(t, "Alice", m.WinnerName())
	require.NotNil(t, m.Score)
	assert.Equal(t, 19, m.Score.P2)
	assert.True(t, m.IsCompleted())

	change := AdvancementResolvedEvent{MatchID: "10", Slot: 2, Placeholder: "Runner Gr B", Name: "Bob"}.Change()
	assert.Equal(t, "group-runner", string(change.Kind))
	assert.Equal(t, 2, change.Position)
}
