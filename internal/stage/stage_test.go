package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		label string
		group string
		ok    bool
	}{
		{"Gr A (1-2)", "A", true},
		{"Grp B (3-4)", "B", true},
		{"Group C", "C", true},
		{"gr d (2-3)", "D", true},
		{"Gr 2 (1-2)", "2", true},
		{"GrA (1-2)", "A", true},
		{"Gr1 (1-2)", "1", true},
		{"Grp2 (1-2)", "2", true},
		{"GroupB", "B", true},
		{"Gr. C (1-2)", "C", true},
		{"Gr AB (1-2)", "AB", true},
		{"Pool (1-2)", PoolGroup, true},
		{"POOL (4-1)", PoolGroup, true},
		{"Semi 1", "", false},
		{"Final", "", false},
		{"Grand Final", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			group, ok := Group(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.group, group)
		})
	}
}

func TestNamesGroup(t *testing.T) {
	assert.True(t, NamesGroup("Gr A (1-2)", "A"))
	assert.True(t, NamesGroup("Gr A (1-2)", "a"))
	assert.False(t, NamesGroup("Gr AB (1-2)", "A"), "group codes must match exactly")
	assert.False(t, NamesGroup("Semi 1", "A"))
	assert.True(t, NamesGroup("Pool (1-2)", "Pool"))
	assert.True(t, NamesGroup("GrA (2-3)", "A"))
}

func TestSemifinal(t *testing.T) {
	tests := []struct {
		label string
		n     int
		ok    bool
	}{
		{"Semi 1", 1, true},
		{"SF 2", 2, true},
		{"Semi-Final 1", 1, true},
		{"semi final 2", 2, true},
		{"Semi 10", 10, true},
		{"Final", 0, false},
		{"Gr A (1-2)", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			n, ok := Semifinal(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.n, n)
		})
	}
}
