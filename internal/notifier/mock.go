package notifier

import (
	"sync"

	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	MatchUpdatedFunc         func(match *tournament.Match, dryRun bool) error
	AdvancementsResolvedFunc func(changes []advancement.Change, dryRun bool) error
	SnapshotRefreshedFunc    func(snapshot *tournament.Snapshot, reason string, dryRun bool) error

	// Call records
	MatchUpdatedCalls []struct {
		Match  tournament.Match
		DryRun bool
	}
	AdvancementsResolvedCalls [][]advancement.Change
	SnapshotRefreshedCalls    []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchUpdatedCalls = nil
	m.AdvancementsResolvedCalls = nil
	m.SnapshotRefreshedCalls = nil
}

func (m *Mock) MatchUpdated(match *tournament.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchUpdatedCalls = append(m.MatchUpdatedCalls, struct {
		Match  tournament.Match
		DryRun bool
	}{*match, dryRun})
	if m.MatchUpdatedFunc != nil {
		return m.MatchUpdatedFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) AdvancementsResolved(changes []advancement.Change, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AdvancementsResolvedCalls = append(m.AdvancementsResolvedCalls, changes)
	if m.AdvancementsResolvedFunc != nil {
		return m.AdvancementsResolvedFunc(changes, dryRun)
	}
	return nil
}

func (m *Mock) SnapshotRefreshed(snapshot *tournament.Snapshot, reason string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotRefreshedCalls = append(m.SnapshotRefreshedCalls, reason)
	if m.SnapshotRefreshedFunc != nil {
		return m.SnapshotRefreshedFunc(snapshot, reason, dryRun)
	}
	return nil
}
