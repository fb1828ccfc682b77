// Package standings builds group tables from completed league matches.
package standings

import (
	"github.com/mauv0809/shuttle-bracket/internal/stage"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

type groupAcc struct {
	order    []string
	entrants map[string]*Entrant
}

func (g *groupAcc) entrant(name string) *Entrant {
	if e, ok := g.entrants[name]; ok {
		return e
	}
	e := &Entrant{Name: name}
	g.entrants[name] = e
	g.order = append(g.order, name)
	return e
}

// Compute derives the standings of every category and group from the
// completed group and pool matches. Elimination matches are ignored, as are
// matches without a score. Groups that have no completed match are absent
// from the result.
func Compute(matches []*tournament.Match) Result {
	acc := make(map[string]map[string]*groupAcc)
	var categoryOrder []string
	h2h := make(HeadToHead)

	for _, m := range matches {
		if m == nil || m.Score == nil || !m.IsCompleted() {
			continue
		}
		group, ok := stage.Group(m.Stage)
		if !ok {
			continue
		}

		groups, ok := acc[m.Category]
		if !ok {
			groups = make(map[string]*groupAcc)
			acc[m.Category] = groups
			categoryOrder = append(categoryOrder, m.Category)
		}
		g, ok := groups[group]
		if !ok {
			g = &groupAcc{entrants: make(map[string]*Entrant)}
			groups[group] = g
		}

		p1 := g.entrant(m.Player1)
		p2 := g.entrant(m.Player2)
		s1, s2 := m.Score.P1, m.Score.P2

		p1.Played++
		p2.Played++
		p1.PointsFor += s1
		p1.PointsAgainst += s2
		p2.PointsFor += s2
		p2.PointsAgainst += s1
		p1.PointDiff = p1.PointsFor - p1.PointsAgainst
		p2.PointDiff = p2.PointsFor - p2.PointsAgainst

		switch m.WinnerName() {
		case "":
		case m.Player1:
			p1.Won++
			p2.Lost++
		case m.Player2:
			p2.Won++
			p1.Lost++
		}

		var winner *string
		if m.Winner != nil {
			w := *m.Winner
			winner = &w
		}
		h2h[NewPairKey(m.Category, group, m.Player1, m.Player2)] = winner
	}

	table := make(Table, len(acc))
	for _, category := range categoryOrder {
		table[category] = make(map[string][]Entrant, len(acc[category]))
		for group, g := range acc[category] {
			entrants := make([]Entrant, 0, len(g.order))
			for _, name := range g.order {
				entrants = append(entrants, *g.entrants[name])
			}
			Sort(entrants, category, group, h2h)
			table[category][group] = entrants
		}
	}

	return Result{Standings: table, HeadToHead: h2h}
}

// Aggregate merges every group of a category into one table and re-ranks it
// with the same comparator. Head-to-head lookups use the pool group key, so
// only direct matches played in a pool count across groups.
func Aggregate(r Result, category string) []Entrant {
	var all []Entrant
	for _, group := range r.Groups(category) {
		all = append(all, r.Standings[category][group]...)
	}
	Sort(all, category, stage.PoolGroup, r.HeadToHead)
	return all
}
