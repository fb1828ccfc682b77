package activity

import "context"

// Log records administrative actions such as resets and restores.
type Log interface {
	Record(ctx context.Context, action Action, details map[string]any)
	List(ctx context.Context, limit int) ([]Entry, error)
}
