package pubsub

import (
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// Match rebuilds the match the event was published for.
func (e MatchUpdatedEvent) Match() *tournament.Match {
	m := &tournament.Match{
		ID:       e.MatchID,
		Category: e.Category,
		Stage:    e.Stage,
		Player1:  e.Player1,
		Player2:  e.Player2,
		Status:   tournament.MatchStatus(e.Status),
	}
	if e.Winner != "" {
		m.Winner = tournament.StringPtr(e.Winner)
	}
	if len(e.Score) == 2 {
		m.Score = &tournament.Score{P1: e.Score[0], P2: e.Score[1]}
	}
	return m
}

// Change rebuilds the advancement the event was published for.
func (e AdvancementResolvedEvent) Change() advancement.Change {
	kind := advancement.KindUnknown
	if p, ok := advancement.Parse(e.Placeholder); ok {
		kind = p.Kind
	}
	return advancement.Change{
		Slot: advancement.Slot{
			MatchID:  e.MatchID,
			Category: e.Category,
			Position: e.Slot,
			Text:     e.Placeholder,
		},
		Kind: kind,
		Name: e.Name,
	}
}
