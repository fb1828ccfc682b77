package advancement

import (
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// Kind names the advancement rule a placeholder belongs to.
type Kind string

const (
	KindGroupWinner     Kind = "group-winner"
	KindGroupRunner     Kind = "group-runner"
	KindGroupRank       Kind = "group-rank"
	KindOverallRank     Kind = "overall-rank"
	KindOverallTop      Kind = "overall-top"
	KindSemifinalWinner Kind = "semifinal-winner"
	KindUnknown         Kind = "unknown"
)

// Placeholder is a parsed placeholder expression such as "Rank 2 Gr B".
type Placeholder struct {
	Kind      Kind   `json:"kind"`
	Text      string `json:"text"`
	Group     string `json:"group,omitempty"`
	Position  int    `json:"position,omitempty"`
	Semifinal int    `json:"semifinal,omitempty"`
}

// Slot points at one side of a match.
type Slot struct {
	MatchID  string `json:"matchId"`
	Category string `json:"category"`
	Position int    `json:"slot"`
	Text     string `json:"text"`
}

// Change records one placeholder replaced by a name.
type Change struct {
	Slot
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

// Details explains how one side of a match was, or will be, filled.
type Details struct {
	Type        Kind                `json:"type"`
	Placeholder string              `json:"placeholder,omitempty"`
	Resolved    bool                `json:"resolved"`
	Description string              `json:"description"`
	Group       string              `json:"group,omitempty"`
	Position    int                 `json:"position,omitempty"`
	Standings   []standings.Entrant `json:"standings,omitempty"`
	Match       *tournament.Match   `json:"match,omitempty"`
}

// SlotInfo pairs the current slot value with its advancement details.
type SlotInfo struct {
	Name               string  `json:"name"`
	AdvancementDetails Details `json:"advancementDetails"`
}

// Info is the advancement view of a single match.
type Info struct {
	MatchID        string   `json:"matchId"`
	HasAdvancement bool     `json:"hasAdvancement"`
	Player1        SlotInfo `json:"player1"`
	Player2        SlotInfo `json:"player2"`
}
