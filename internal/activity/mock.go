package activity

import (
	"context"
	"sync"
)

var _ Log = (*Mock)(nil)

// Mock is an in-memory Log for tests. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	RecordCalls []struct {
		Action  Action
		Details map[string]any
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Record(ctx context.Context, action Action, details map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = append(m.RecordCalls, struct {
		Action  Action
		Details map[string]any
	}{action, details})
}

func (m *Mock) List(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := []Entry{}
	for i := len(m.RecordCalls) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}
		c := m.RecordCalls[i]
		entries = append(entries, Entry{ID: int64(i + 1), Action: c.Action, Details: c.Details})
	}
	return entries, nil
}

// Actions returns the recorded actions in call order.
func (m *Mock) Actions() []Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Action, 0, len(m.RecordCalls))
	for _, c := range m.RecordCalls {
		out = append(out, c.Action)
	}
	return out
}
