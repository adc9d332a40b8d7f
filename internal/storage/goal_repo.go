package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type GoalRepo struct {
	db *sql.DB
}

func NewGoalRepo(db *sql.DB) *GoalRepo {
	return &GoalRepo{db: db}
}

func (r *GoalRepo) Insert(ctx context.Context, g Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, title, created_at) VALUES (?, ?, ?)
	`, g.ID, g.Title, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("goal insert: %w", err)
	}
	return nil
}

func (r *GoalRepo) ListAll(ctx context.Context) ([]Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, created_at FROM goals ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("goal list: %w", err)
	}
	defer rows.Close()

	var out []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.Title, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("goal scan: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal rows: %w", err)
	}
	return out, nil
}

func (r *GoalRepo) InsertMilestone(ctx context.Context, m Milestone) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO milestones (id, goal_id, title, is_completed, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.GoalID, m.Title, boolToInt(m.IsCompleted), m.CompletedAt, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("milestone insert: %w", err)
	}
	return nil
}

func (r *GoalRepo) GetMilestone(ctx context.Context, id string) (*Milestone, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, goal_id, title, is_completed, completed_at, created_at
		FROM milestones WHERE id = ?
	`, id)
	var m Milestone
	if err := row.Scan(&m.ID, &m.GoalID, &m.Title, &m.IsCompleted, &m.CompletedAt, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("milestone get: %w", err)
	}
	return &m, nil
}

func (r *GoalRepo) ListMilestones(ctx context.Context, goalID string) ([]Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, goal_id, title, is_completed, completed_at, created_at
		FROM milestones WHERE goal_id = ? ORDER BY created_at ASC
	`, goalID)
	if err != nil {
		return nil, fmt.Errorf("milestone list: %w", err)
	}
	return collectMilestones(rows)
}

func (r *GoalRepo) ListAllMilestones(ctx context.Context) ([]Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, goal_id, title, is_completed, completed_at, created_at
		FROM milestones ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("milestone list all: %w", err)
	}
	return collectMilestones(rows)
}

func collectMilestones(rows *sql.Rows) ([]Milestone, error) {
	defer rows.Close()
	var out []Milestone
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.GoalID, &m.Title, &m.IsCompleted, &m.CompletedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("milestone scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("milestone rows: %w", err)
	}
	return out, nil
}

func (r *GoalRepo) SetMilestoneCompleted(ctx context.Context, id string, completedAt *time.Time) error {
	done := 0
	if completedAt != nil {
		done = 1
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE milestones SET is_completed = ?, completed_at = ? WHERE id = ?
	`, done, completedAt, id)
	if err != nil {
		return fmt.Errorf("milestone set completed: %w", err)
	}
	return nil
}
