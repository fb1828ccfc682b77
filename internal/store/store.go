package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

// New creates a Store backed by db.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const matchColumns = `id, day, date, time, court, category, stage, player1, player2, score_p1, score_p2, status, winner, format, player1_placeholder, player2_placeholder`

// Load reads the whole snapshot. Matches come back in schedule order.
func (s *store) Load(ctx context.Context) (*tournament.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := &tournament.Snapshot{
		Players:    []tournament.Player{},
		Matches:    []*tournament.Match{},
		Categories: []string{},
		Courts:     []string{},
	}

	meta, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}
	targets := map[string]any{
		metaPlayers:    &snapshot.Players,
		metaCategories: &snapshot.Categories,
		metaCourts:     &snapshot.Courts,
		metaGroups:     &snapshot.Groups,
	}
	for key, target := range targets {
		raw, ok := meta[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(raw), target); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			// A skipped row would be deleted by the next Save.
			log.Error("Failed to scan match row", "error", err)
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		snapshot.Matches = append(snapshot.Matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}
	return snapshot, nil
}

func (s *store) loadMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM tournament_meta")
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*tournament.Match, error) {
	var match tournament.Match
	var scoreP1, scoreP2 sql.NullInt64
	var winner sql.NullString
	var status string

	err := scanner.Scan(
		&match.ID, &match.Day, &match.Date, &match.Time, &match.Court, &match.Category, &match.Stage,
		&match.Player1, &match.Player2, &scoreP1, &scoreP2, &status, &winner, &match.Format,
		&match.Player1Placeholder, &match.Player2Placeholder,
	)
	if err != nil {
		return nil, err
	}

	match.Status = tournament.MatchStatus(status)
	if scoreP1.Valid || scoreP2.Valid {
		match.Score = &tournament.Score{P1: int(scoreP1.Int64), P2: int(scoreP2.Int64)}
	}
	if winner.Valid {
		match.Winner = tournament.StringPtr(winner.String)
	}
	return &match, nil
}

// Save replaces the stored snapshot in one transaction. Matches missing from
// the snapshot are deleted.
func (s *store) Save(ctx context.Context, snapshot *tournament.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := saveMeta(ctx, tx, snapshot); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (`+matchColumns+`, position, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day = excluded.day,
			date = excluded.date,
			time = excluded.time,
			court = excluded.court,
			category = excluded.category,
			stage = excluded.stage,
			player1 = excluded.player1,
			player2 = excluded.player2,
			score_p1 = excluded.score_p1,
			score_p2 = excluded.score_p2,
			status = excluded.status,
			winner = excluded.winner,
			format = excluded.format,
			player1_placeholder = excluded.player1_placeholder,
			player2_placeholder = excluded.player2_placeholder,
			position = excluded.position,
			updated_at = excluded.updated_at;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	ids := make([]any, 0, len(snapshot.Matches))
	for i, m := range snapshot.Matches {
		if m == nil {
			continue
		}
		var scoreP1, scoreP2 sql.NullInt64
		if m.Score != nil {
			scoreP1 = sql.NullInt64{Int64: int64(m.Score.P1), Valid: true}
			scoreP2 = sql.NullInt64{Int64: int64(m.Score.P2), Valid: true}
		}
		var winner sql.NullString
		if m.Winner != nil {
			winner = sql.NullString{String: *m.Winner, Valid: true}
		}
		status := m.Status
		if status == "" {
			status = tournament.StatusScheduled
		}

		_, err = stmt.ExecContext(ctx,
			m.ID, m.Day, m.Date, m.Time, m.Court, m.Category, m.Stage, m.Player1, m.Player2,
			scoreP1, scoreP2, string(status), winner, m.Format, m.Player1Placeholder, m.Player2Placeholder,
			i, now,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save match %s: %w", m.ID, err)
		}
		ids = append(ids, m.ID)
	}

	deleteQuery := "DELETE FROM matches"
	if len(ids) > 0 {
		deleteQuery += " WHERE id NOT IN (?" + strings.Repeat(",?", len(ids)-1) + ")"
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, ids...); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete stale matches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Saved tournament snapshot", "matches", len(ids))
	return nil
}

func saveMeta(ctx context.Context, tx *sql.Tx, snapshot *tournament.Snapshot) error {
	values := map[string]any{
		metaPlayers:    snapshot.Players,
		metaCategories: snapshot.Categories,
		metaCourts:     snapshot.Courts,
		metaGroups:     snapshot.Groups,
	}
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO tournament_meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value;
		`, key, string(raw))
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}

// IsEmpty reports whether no match has been stored yet.
func (s *store) IsEmpty(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM matches").Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
