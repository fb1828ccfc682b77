package activity

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new activity Log.
func New(db *sql.DB) Log {
	return &store{
		db:  db,
		now: time.Now,
	}
}

// Record appends an entry. Failures are logged, never returned: losing an
// audit line must not fail the action it describes.
func (s *store) Record(ctx context.Context, action Action, details map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		log.Error("Failed to encode activity details", "error", err, "action", action)
		return
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO activity_log (created_at, action, details_json) VALUES (?, ?, ?)",
		s.now().UnixMilli(), string(action), string(raw),
	)
	if err != nil {
		log.Error("Failed to record activity", "error", err, "action", action)
		return
	}
	log.Info("Recorded activity", "action", action, "details", details)
}

// List returns the most recent entries first.
func (s *store) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, action, details_json FROM activity_log ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e         Entry
			createdAt int64
			action    string
			details   sql.NullString
		)
		if err := rows.Scan(&e.ID, &createdAt, &action, &details); err != nil {
			return nil, err
		}
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		e.Action = Action(action)
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				log.Error("Failed to decode activity details", "error", err, "id", e.ID)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
