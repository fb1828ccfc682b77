// Package stage interprets the free-text stage labels of the schedule
// ("Gr A (1-2)", "Pool (3-4)", "Semi 1", "Final").
//
// Every rule that derives structure from a label lives here so the labelling
// convention can change without touching standings or advancement.
package stage

import (
	"regexp"
	"strconv"
	"strings"
)

// PoolGroup is the group key shared by every match of a single-pool category.
const PoolGroup = "Pool"

var (
	// A code glued to the token ("GrA", "Gr1", "Grp2") is one letter or a
	// number, so words such as "Grand" are not read as group "AND".
	groupPattern     = regexp.MustCompile(`(?i)\b(?:group|grp|gr)(?:\.?\s*([a-z]|\d+)\b|\b\.?\s*([a-z0-9]+))`)
	semifinalPattern = regexp.MustCompile(`(?i)\b(?:semi(?:[\s-]*final)?|sf)\s*(\d+)\b`)
)

// Group classifies a stage label into its league group. ok is false for
// elimination stages, which never count towards standings.
func Group(label string) (group string, ok bool) {
	if m := groupPattern.FindStringSubmatch(label); m != nil {
		code := m[1]
		if code == "" {
			code = m[2]
		}
		return NormalizeGroup(code), true
	}
	if strings.Contains(strings.ToLower(label), "pool") {
		return PoolGroup, true
	}
	return "", false
}

// IsLeague reports whether the label belongs to a group or pool round.
func IsLeague(label string) bool {
	_, ok := Group(label)
	return ok
}

// NamesGroup reports whether the label is a match of the given group.
func NamesGroup(label, group string) bool {
	g, ok := Group(label)
	return ok && g == NormalizeGroup(group)
}

// Semifinal returns the semi-final number of a label such as "Semi 1",
// "SF 2" or "Semi-Final 1".
func Semifinal(label string) (int, bool) {
	m := semifinalPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeGroup upper-cases group codes so "Gr a" and "Gr A" agree. The
// pool key is left as is.
func NormalizeGroup(code string) string {
	if strings.EqualFold(code, PoolGroup) {
		return PoolGroup
	}
	return strings.ToUpper(code)
}
