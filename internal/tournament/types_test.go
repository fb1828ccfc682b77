package tournament

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_UnmarshalLenient(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Score
	}{
		{"numbers", `{"p1": 21, "p2": 19}`, Score{21, 19}},
		{"numeric strings", `{"p1": "21", "p2": " 7 "}`, Score{21, 7}},
		{"missing side", `{"p1": 11}`, Score{11, 0}},
		{"nulls", `{"p1": null, "p2": null}`, Score{0, 0}},
		{"garbage", `{"p1": "abc", "p2": [1, 2]}`, Score{0, 0}},
		{"trailing text", `{"p1": "21 pts", "p2": "15.0"}`, Score{21, 15}},
		{"not an object", `"21-15"`, Score{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Score
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_NullScoreAndWinner(t *testing.T) {
	var m Match
	require.NoError(t, json.Unmarshal([]byte(`{"id": "1", "score": null, "winner": null, "status": "SCHEDULED"}`), &m))
	assert.Nil(t, m.Score)
	assert.Nil(t, m.Winner)
	assert.Equal(t, "", m.WinnerName())
	assert.False(t, m.IsCompleted())
}

func TestSnapshot_FindMatch(t *testing.T) {
	s := &Snapshot{Matches: []*Match{{ID: "1"}, {ID: "2"}}}
	require.NotNil(t, s.FindMatch("2"))
	assert.Equal(t, "2", s.FindMatch("2").ID)
	assert.Nil(t, s.FindMatch("3"))
}
