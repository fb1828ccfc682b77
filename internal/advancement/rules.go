package advancement

import (
	"regexp"
	"strconv"

	"github.com/mauv0809/shuttle-bracket/internal/stage"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// bracket is the read-only view a rule resolves against during one pass.
type bracket struct {
	matches []*tournament.Match
	result  standings.Result
	overall map[string][]standings.Entrant
}

func newBracket(matches []*tournament.Match, result standings.Result) *bracket {
	return &bracket{
		matches: matches,
		result:  result,
		overall: make(map[string][]standings.Entrant),
	}
}

// groupComplete reports whether every match of a group has finished. A group
// with no matches at all is never complete.
func (b *bracket) groupComplete(category, group string) bool {
	found := false
	for _, m := range b.matches {
		if m == nil || m.Category != category || !stage.NamesGroup(m.Stage, group) {
			continue
		}
		if !m.IsCompleted() {
			return false
		}
		found = true
	}
	return found
}

// leagueComplete reports whether every group and pool match of a category has
// finished.
func (b *bracket) leagueComplete(category string) bool {
	found := false
	for _, m := range b.matches {
		if m == nil || m.Category != category || !stage.IsLeague(m.Stage) {
			continue
		}
		if !m.IsCompleted() {
			return false
		}
		found = true
	}
	return found
}

func (b *bracket) aggregate(category string) []standings.Entrant {
	if table, ok := b.overall[category]; ok {
		return table
	}
	table := standings.Aggregate(b.result, category)
	b.overall[category] = table
	return table
}

func (b *bracket) semifinal(category string, n int) *tournament.Match {
	for _, m := range b.matches {
		if m == nil || m.Category != category {
			continue
		}
		if sf, ok := stage.Semifinal(m.Stage); ok && sf == n {
			return m
		}
	}
	return nil
}

// rule couples a placeholder pattern with the way it is resolved.
type rule struct {
	kind    Kind
	pattern *regexp.Regexp
	parse   func(m []string) Placeholder
	resolve func(b *bracket, category string, p Placeholder) (string, bool)
}

const groupToken = `(?:group|grp|gr)\.?\s*([a-z0-9]+)\b`

// rules is evaluated in order; the first pattern that matches decides.
// Patterns are anchored at the start only, so trailing notes such as
// "Winner Gr A (Court 5)" still resolve.
var rules = []rule{
	{
		kind:    KindGroupWinner,
		pattern: regexp.MustCompile(`(?i)^\s*winner\s+` + groupToken),
		parse: func(m []string) Placeholder {
			return Placeholder{Group: stage.NormalizeGroup(m[1]), Position: 1}
		},
		resolve: resolveGroupPosition,
	},
	{
		kind:    KindGroupRunner,
		pattern: regexp.MustCompile(`(?i)^\s*runner(?:[\s-]*up)?\s+` + groupToken),
		parse: func(m []string) Placeholder {
			return Placeholder{Group: stage.NormalizeGroup(m[1]), Position: 2}
		},
		resolve: resolveGroupPosition,
	},
	{
		kind:    KindGroupRank,
		pattern: regexp.MustCompile(`(?i)^\s*rank\s+(\d+)\s+` + groupToken),
		parse: func(m []string) Placeholder {
			return Placeholder{Group: stage.NormalizeGroup(m[2]), Position: atoi(m[1])}
		},
		resolve: resolveGroupPosition,
	},
	{
		kind:    KindOverallRank,
		pattern: regexp.MustCompile(`(?i)^\s*rank\s+(\d+)\s+team\b`),
		parse: func(m []string) Placeholder {
			return Placeholder{Position: atoi(m[1])}
		},
		resolve: resolveOverallPosition,
	},
	{
		kind:    KindOverallTop,
		pattern: regexp.MustCompile(`(?i)^\s*top\s+team\s+(\d+)\b`),
		parse: func(m []string) Placeholder {
			return Placeholder{Position: atoi(m[1])}
		},
		resolve: resolveOverallPosition,
	},
	{
		kind:    KindSemifinalWinner,
		pattern: regexp.MustCompile(`(?i)^\s*winner\s+sf\s*(\d+)\b`),
		parse: func(m []string) Placeholder {
			return Placeholder{Semifinal: atoi(m[1])}
		},
		resolve: resolveSemifinalWinner,
	},
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Parse matches text against the placeholder rules. ok is false when the
// text is not a recognised placeholder.
func Parse(text string) (Placeholder, bool) {
	_, p, ok := match(text)
	return p, ok
}

func match(text string) (rule, Placeholder, bool) {
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		p := r.parse(m)
		p.Kind = r.kind
		p.Text = text
		return r, p, true
	}
	return rule{}, Placeholder{}, false
}

func resolveGroupPosition(b *bracket, category string, p Placeholder) (string, bool) {
	if p.Position < 1 || !b.groupComplete(category, p.Group) {
		return "", false
	}
	table, ok := b.result.Group(category, p.Group)
	if !ok || len(table) < p.Position {
		return "", false
	}
	return table[p.Position-1].Name, true
}

func resolveOverallPosition(b *bracket, category string, p Placeholder) (string, bool) {
	if p.Position < 1 || !b.leagueComplete(category) {
		return "", false
	}
	table := b.aggregate(category)
	if len(table) < p.Position {
		return "", false
	}
	return table[p.Position-1].Name, true
}

func resolveSemifinalWinner(b *bracket, category string, p Placeholder) (string, bool) {
	sf := b.semifinal(category, p.Semifinal)
	if sf == nil || !sf.IsCompleted() || sf.WinnerName() == "" {
		return "", false
	}
	return sf.WinnerName(), true
}
