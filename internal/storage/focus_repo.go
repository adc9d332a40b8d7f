package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type FocusRepo struct {
	db *sql.DB
}

func NewFocusRepo(db *sql.DB) *FocusRepo {
	return &FocusRepo{db: db}
}

func (r *FocusRepo) Insert(ctx context.Context, s FocusSession) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (started_at, ended_at, minutes) VALUES (?, ?, ?)
	`, s.StartedAt, s.EndedAt, s.Minutes)
	if err != nil {
		return 0, fmt.Errorf("focus insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("focus last insert id: %w", err)
	}
	return id, nil
}

// MinutesBetween sums focus minutes for sessions ending in [from, to).
func (r *FocusRepo) MinutesBetween(ctx context.Context, from, to time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(minutes), 0) FROM focus_sessions WHERE ended_at >= ? AND ended_at < ?
	`, from, to)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("focus minutes: %w", err)
	}
	return n, nil
}

func (r *FocusRepo) ListBetween(ctx context.Context, from, to time.Time) ([]FocusSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, minutes
		FROM focus_sessions
		WHERE ended_at >= ? AND ended_at < ?
		ORDER BY ended_at ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("focus range: %w", err)
	}
	defer rows.Close()

	var out []FocusSession
	for rows.Next() {
		var s FocusSession
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.EndedAt, &s.Minutes); err != nil {
			return nil, fmt.Errorf("focus scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("focus rows: %w", err)
	}
	return out, nil
}
