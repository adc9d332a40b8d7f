package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type PriorityRepo struct {
	db *sql.DB
}

func NewPriorityRepo(db *sql.DB) *PriorityRepo {
	return &PriorityRepo{db: db}
}

func (r *PriorityRepo) Insert(ctx context.Context, p Priority) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO priorities (id, day, title, rank, is_completed, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Day, p.Title, p.Rank, boolToInt(p.IsCompleted), p.CompletedAt, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("priority insert: %w", err)
	}
	return nil
}

func (r *PriorityRepo) Get(ctx context.Context, id string) (*Priority, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, day, title, rank, is_completed, completed_at, created_at
		FROM priorities WHERE id = ?
	`, id)
	var p Priority
	if err := row.Scan(&p.ID, &p.Day, &p.Title, &p.Rank, &p.IsCompleted, &p.CompletedAt, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("priority get: %w", err)
	}
	return &p, nil
}

// ListSlate returns a day's slate ordered by rank, capped at limit. Only
// this slate counts toward the daily log, not the full backlog.
func (r *PriorityRepo) ListSlate(ctx context.Context, day string, limit int) ([]Priority, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, day, title, rank, is_completed, completed_at, created_at
		FROM priorities
		WHERE day = ?
		ORDER BY rank ASC, created_at ASC
		LIMIT ?
	`, day, limit)
	if err != nil {
		return nil, fmt.Errorf("priority slate: %w", err)
	}
	defer rows.Close()

	var out []Priority
	for rows.Next() {
		var p Priority
		if err := rows.Scan(&p.ID, &p.Day, &p.Title, &p.Rank, &p.IsCompleted, &p.CompletedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("priority scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("priority rows: %w", err)
	}
	return out, nil
}

// CountCompletedRange counts completed priorities over days in [from, to).
func (r *PriorityRepo) CountCompletedRange(ctx context.Context, from, to string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM priorities WHERE day >= ? AND day < ? AND is_completed = 1
	`, from, to)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("priority count: %w", err)
	}
	return n, nil
}

// SetCompleted marks a priority done or not done. completedAt is nil when
// un-completing.
func (r *PriorityRepo) SetCompleted(ctx context.Context, id string, completedAt *time.Time) error {
	done := 0
	if completedAt != nil {
		done = 1
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE priorities SET is_completed = ?, completed_at = ? WHERE id = ?
	`, done, completedAt, id)
	if err != nil {
		return fmt.Errorf("priority set completed: %w", err)
	}
	return nil
}

func (r *PriorityRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM priorities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("priority delete: %w", err)
	}
	return nil
}
