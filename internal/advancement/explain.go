package advancement

import (
	"fmt"

	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// Explain describes how each side of match got, or will get, its entrant.
func Explain(match *tournament.Match, matches []*tournament.Match, result standings.Result) Info {
	b := newBracket(matches, result)
	info := Info{
		MatchID: match.ID,
		Player1: explainSlot(b, match, 1),
		Player2: explainSlot(b, match, 2),
	}
	info.HasAdvancement = info.Player1.AdvancementDetails.Type != KindUnknown ||
		info.Player2.AdvancementDetails.Type != KindUnknown
	return info
}

func explainSlot(b *bracket, m *tournament.Match, position int) SlotInfo {
	current, origin := slot(m, position)
	out := SlotInfo{Name: *current, AdvancementDetails: Details{Type: KindUnknown}}

	text := *origin
	resolved := text != ""
	if !resolved {
		text = *current
	}
	p, ok := Parse(text)
	if !ok {
		return out
	}

	d := Details{
		Type:        p.Kind,
		Placeholder: p.Text,
		Resolved:    resolved,
		Group:       p.Group,
		Position:    p.Position,
	}

	switch p.Kind {
	case KindGroupWinner, KindGroupRunner, KindGroupRank:
		d.Standings, _ = b.result.Group(m.Category, p.Group)
		if resolved {
			d.Description = fmt.Sprintf("%s finished %s in Group %s", *current, ordinal(p.Position), p.Group)
		} else {
			d.Description = fmt.Sprintf("Decided when every Group %s match is completed (%s place)", p.Group, ordinal(p.Position))
		}
	case KindOverallRank, KindOverallTop:
		d.Standings = b.aggregate(m.Category)
		if resolved {
			d.Description = fmt.Sprintf("%s finished %s overall in %s", *current, ordinal(p.Position), m.Category)
		} else {
			d.Description = fmt.Sprintf("Decided when every league match of %s is completed (%s place overall)", m.Category, ordinal(p.Position))
		}
	case KindSemifinalWinner:
		d.Match = b.semifinal(m.Category, p.Semifinal)
		if resolved {
			d.Description = fmt.Sprintf("%s won Semi-Final %d", *current, p.Semifinal)
		} else {
			d.Description = fmt.Sprintf("Decided by the result of Semi-Final %d", p.Semifinal)
		}
	}

	out.AdvancementDetails = d
	return out
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
