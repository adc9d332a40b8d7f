package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Insert(ctx context.Context, t Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, goal_id, title, weight, is_completed, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.GoalID, t.Title, t.Weight, boolToInt(t.IsCompleted), t.CompletedAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

const taskColumns = `id, goal_id, title, weight, is_completed, completed_at, created_at`

func scanTask(row interface{ Scan(...any) error }) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.GoalID, &t.Title, &t.Weight, &t.IsCompleted, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task get: %w", err)
	}
	return t, nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	return collectTasks(rows)
}

// ListCompletedBetween returns tasks whose completion instant falls in
// [from, to).
func (r *TaskRepo) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE is_completed = 1 AND completed_at >= ? AND completed_at < ?
		ORDER BY completed_at ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("task completed range: %w", err)
	}
	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]Task, error) {
	defer rows.Close()
	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) SetCompleted(ctx context.Context, id string, completedAt *time.Time) error {
	done := 0
	if completedAt != nil {
		done = 1
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET is_completed = ?, completed_at = ? WHERE id = ?
	`, done, completedAt, id)
	if err != nil {
		return fmt.Errorf("task set completed: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}
