package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

var _ Store = (*MockStore)(nil)

// MockStore is an in-memory Store for tests. It is safe for concurrent use.
// Snapshots are deep-copied on the way in and out, like a real store.
type MockStore struct {
	mu sync.Mutex

	Snapshot *tournament.Snapshot

	// Spies for method calls
	LoadFunc func(ctx context.Context) (*tournament.Snapshot, error)
	SaveFunc func(ctx context.Context, snapshot *tournament.Snapshot) error

	// Call records
	LoadCalls int
	SaveCalls []*tournament.Snapshot
}

// NewMock creates a new mock instance holding snapshot.
func NewMock(snapshot *tournament.Snapshot) *MockStore {
	return &MockStore{Snapshot: clone(snapshot)}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = 0
	m.SaveCalls = nil
}

func (m *MockStore) Load(ctx context.Context) (*tournament.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	if m.Snapshot == nil {
		return &tournament.Snapshot{}, nil
	}
	return clone(m.Snapshot), nil
}

func (m *MockStore) Save(ctx context.Context, snapshot *tournament.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, clone(snapshot))
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, snapshot)
	}
	m.Snapshot = clone(snapshot)
	return nil
}

func (m *MockStore) IsEmpty(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Snapshot == nil || len(m.Snapshot.Matches) == 0, nil
}

func clone(snapshot *tournament.Snapshot) *tournament.Snapshot {
	if snapshot == nil {
		return nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		panic(err)
	}
	var out tournament.Snapshot
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}
