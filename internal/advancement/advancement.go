// Package advancement fills placeholder slots ("Winner Gr A", "Rank 1 Team",
// "Winner SF 2") of scheduled matches once the matches they depend on are
// finished.
//
// Resolution is safe to repeat: a slot holding a name no longer matches any
// rule, so running the resolver on a settled bracket changes nothing.
package advancement

import (
	"regexp"

	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// Resolve replaces every placeholder whose precondition holds and reports
// whether any slot changed. matches is mutated in place; result must be
// computed from the same matches.
func Resolve(matches []*tournament.Match, result standings.Result) bool {
	return len(ResolveWithChanges(matches, result)) > 0
}

// ResolveWithChanges is Resolve, returning each substitution it made.
func ResolveWithChanges(matches []*tournament.Match, result standings.Result) []Change {
	b := newBracket(matches, result)
	var changes []Change

	for _, m := range matches {
		if m == nil || m.Status != tournament.StatusScheduled {
			continue
		}
		if c, ok := resolveSlot(b, m, 1); ok {
			changes = append(changes, c)
		}
		if c, ok := resolveSlot(b, m, 2); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

func resolveSlot(b *bracket, m *tournament.Match, position int) (Change, bool) {
	current, origin := slot(m, position)

	r, p, ok := match(*current)
	if !ok {
		return Change{}, false
	}
	name, ok := r.resolve(b, m.Category, p)
	if !ok || name == *current {
		return Change{}, false
	}

	if *origin == "" {
		*origin = *current
	}
	*current = name
	return Change{
		Slot: Slot{MatchID: m.ID, Category: m.Category, Position: position, Text: p.Text},
		Kind: p.Kind,
		Name: name,
	}, true
}

func slot(m *tournament.Match, position int) (current, origin *string) {
	if position == 1 {
		return &m.Player1, &m.Player1Placeholder
	}
	return &m.Player2, &m.Player2Placeholder
}

var placeholderLike = regexp.MustCompile(`(?i)^\s*(?:winner|runner|rank|top)\b`)

// Unmatched lists scheduled slots that read like a placeholder but fit no
// rule, typically a typo in the schedule. Such slots are never resolved.
func Unmatched(matches []*tournament.Match) []Slot {
	var out []Slot
	for _, m := range matches {
		if m == nil || m.Status != tournament.StatusScheduled {
			continue
		}
		for position := 1; position <= 2; position++ {
			current, _ := slot(m, position)
			if !placeholderLike.MatchString(*current) {
				continue
			}
			if _, ok := Parse(*current); ok {
				continue
			}
			out = append(out, Slot{MatchID: m.ID, Category: m.Category, Position: position, Text: *current})
		}
	}
	return out
}

// Pending lists scheduled slots still holding a recognised placeholder.
func Pending(matches []*tournament.Match) []Slot {
	var out []Slot
	for _, m := range matches {
		if m == nil || m.Status != tournament.StatusScheduled {
			continue
		}
		for position := 1; position <= 2; position++ {
			current, _ := slot(m, position)
			if _, ok := Parse(*current); ok {
				out = append(out, Slot{MatchID: m.ID, Category: m.Category, Position: position, Text: *current})
			}
		}
	}
	return out
}
