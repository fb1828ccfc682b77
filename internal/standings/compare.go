package standings

import "sort"

// Compare orders two entrants of the same group. It returns a negative value
// when a ranks above b, positive when b ranks above a and zero when the
// stated keys cannot separate them.
//
// Keys, in order: wins, the direct match between the two, point difference,
// points scored. The head-to-head key is pairwise, so it settles a two-way
// tie on wins. With three or more entrants level on wins the outcome depends
// on the order the sort compares them in; no mini-league is computed.
func Compare(a, b Entrant, category, group string, h2h HeadToHead) int {
	if a.Won != b.Won {
		return b.Won - a.Won
	}
	if winner, ok := h2h.Winner(category, group, a.Name, b.Name); ok {
		switch winner {
		case a.Name:
			return -1
		case b.Name:
			return 1
		}
	}
	if a.PointDiff != b.PointDiff {
		return b.PointDiff - a.PointDiff
	}
	return b.PointsFor - a.PointsFor
}

// Sort ranks entrants in place. Entrants the comparator leaves level keep
// their incoming order.
func Sort(entrants []Entrant, category, group string, h2h HeadToHead) {
	sort.SliceStable(entrants, func(i, j int) bool {
		return Compare(entrants[i], entrants[j], category, group, h2h) < 0
	})
}
