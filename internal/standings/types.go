package standings

import (
	"encoding/json"
	"sort"
	"strings"
)

// Entrant is the derived league record of one player or team in a group.
type Entrant struct {
	Name          string `json:"name"`
	Played        int    `json:"played"`
	Won           int    `json:"won"`
	Lost          int    `json:"lost"`
	PointsFor     int    `json:"pointsFor"`
	PointsAgainst int    `json:"pointsAgainst"`
	PointDiff     int    `json:"pointDiff"`
}

// Table maps category -> group -> entrants, best ranked first.
type Table map[string]map[string][]Entrant

// PairKey identifies the direct match of two entrants in a group. A is
// always the lexically smaller name.
type PairKey struct {
	Category string
	Group    string
	A        string
	B        string
}

// NewPairKey builds the key for two names in either order.
func NewPairKey(category, group, x, y string) PairKey {
	if y < x {
		x, y = y, x
	}
	return PairKey{Category: category, Group: group, A: x, B: y}
}

func (k PairKey) String() string {
	return strings.Join([]string{k.Category, k.Group, k.A, k.B}, "|")
}

// HeadToHead records the winner of each direct match. A nil winner means the
// match produced no winner and is ignored when ranking.
type HeadToHead map[PairKey]*string

// Winner returns the recorded winner of the direct match between x and y.
func (h HeadToHead) Winner(category, group, x, y string) (string, bool) {
	w, ok := h[NewPairKey(category, group, x, y)]
	if !ok || w == nil {
		return "", false
	}
	return *w, true
}

// MarshalJSON flattens the keys to "category|group|a|b".
func (h HeadToHead) MarshalJSON() ([]byte, error) {
	flat := make(map[string]*string, len(h))
	for k, v := range h {
		flat[k.String()] = v
	}
	return json.Marshal(flat)
}

// Result is the output of Compute.
type Result struct {
	Standings  Table      `json:"standings"`
	HeadToHead HeadToHead `json:"headToHead"`
}

// Group returns the ranked entrants of a group. ok is false when the group
// has no completed match yet.
func (r Result) Group(category, group string) ([]Entrant, bool) {
	groups, ok := r.Standings[category]
	if !ok {
		return nil, false
	}
	entrants, ok := groups[group]
	return entrants, ok
}

// Groups returns the group keys of a category in sorted order.
func (r Result) Groups(category string) []string {
	keys := make([]string, 0, len(r.Standings[category]))
	for g := range r.Standings[category] {
		keys = append(keys, g)
	}
	sort.Strings(keys)
	return keys
}
