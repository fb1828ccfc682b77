package tournament

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// MatchStatus is the lifecycle state of a single match.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusPlaying   MatchStatus = "PLAYING"
	StatusCompleted MatchStatus = "COMPLETED"
)

// Score holds the points of both sides of a match.
type Score struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// UnmarshalJSON accepts numbers, numeric strings and nulls. Anything that
// cannot be read as an integer counts as zero.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw struct {
		P1 json.RawMessage `json:"p1"`
		P2 json.RawMessage `json:"p2"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object at all. Treat it like an empty score.
		*s = Score{}
		return nil
	}
	s.P1 = lenientInt(raw.P1)
	s.P2 = lenientInt(raw.P2)
	return nil
}

func lenientInt(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
	} else {
		text = string(raw)
	}
	text = strings.TrimSpace(text)
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	// Mirrors parseInt: "21.0" or "21 pts" still yield the leading integer.
	end := 0
	for end < len(text) && (text[end] >= '0' && text[end] <= '9' || end == 0 && (text[end] == '-' || text[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0
	}
	return n
}

// Match is one scheduled contest between two entrants.
type Match struct {
	ID       string      `json:"id"`
	Day      string      `json:"day,omitempty"`
	Date     string      `json:"date,omitempty"`
	Time     string      `json:"time,omitempty"`
	Court    string      `json:"court,omitempty"`
	Category string      `json:"category"`
	Stage    string      `json:"stage"`
	Player1  string      `json:"player1"`
	Player2  string      `json:"player2"`
	Score    *Score      `json:"score"`
	Status   MatchStatus `json:"status"`
	Winner   *string     `json:"winner"`
	Format   string      `json:"format,omitempty"`

	// Placeholder text a slot held before it was resolved. Empty when the
	// slot was scheduled with a concrete name.
	Player1Placeholder string `json:"player1Placeholder,omitempty"`
	Player2Placeholder string `json:"player2Placeholder,omitempty"`
}

// IsCompleted reports whether the match has finished.
func (m *Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

// WinnerName returns the winner or an empty string when there is none.
func (m *Match) WinnerName() string {
	if m.Winner == nil {
		return ""
	}
	return *m.Winner
}

// Player is a registered entrant (single player or doubles team).
type Player struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

// Group lists the entrants drawn into one group of a category.
type Group struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Players  []string `json:"players"`
}

// Snapshot is the full tournament record the engine works on.
type Snapshot struct {
	Players    []Player `json:"players"`
	Matches    []*Match `json:"matches"`
	Categories []string `json:"categories"`
	Courts     []string `json:"courts"`
	Groups     []Group  `json:"groups,omitempty"`
}

// FindMatch returns the match with the given id, or nil.
func (s *Snapshot) FindMatch(id string) *Match {
	for _, m := range s.Matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// StringPtr is a convenience for building winners in code and tests.
func StringPtr(s string) *string {
	return &s
}
