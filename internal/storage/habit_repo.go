package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type HabitRepo struct {
	db *sql.DB
}

func NewHabitRepo(db *sql.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

func (r *HabitRepo) Insert(ctx context.Context, h Habit) error {
	days, err := json.Marshal(h.ScheduleDays)
	if err != nil {
		return fmt.Errorf("marshal schedule days: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO habits (id, name, schedule_days, streak, progress, reminder_hour, reminder_minute, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, h.ID, h.Name, string(days), h.Streak, h.Progress, h.ReminderHour, h.ReminderMinute, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("habit insert: %w", err)
	}
	return nil
}

const habitColumns = `id, name, schedule_days, streak, progress, reminder_hour, reminder_minute, created_at, archived_at`

func scanHabit(row interface{ Scan(...any) error }) (*Habit, error) {
	var h Habit
	var days string
	err := row.Scan(&h.ID, &h.Name, &days, &h.Streak, &h.Progress,
		&h.ReminderHour, &h.ReminderMinute, &h.CreatedAt, &h.ArchivedAt)
	if err != nil {
		return nil, err
	}
	if days != "" {
		if err := json.Unmarshal([]byte(days), &h.ScheduleDays); err != nil {
			return nil, fmt.Errorf("unmarshal schedule days: %w", err)
		}
	}
	return &h, nil
}

func (r *HabitRepo) Get(ctx context.Context, id string) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit get: %w", err)
	}
	return h, nil
}

// ListActive returns non-archived habits, oldest first.
func (r *HabitRepo) ListActive(ctx context.Context) ([]Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+habitColumns+` FROM habits WHERE archived_at IS NULL ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("habit scan: %w", err)
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) UpdateProgress(ctx context.Context, id string, progress float64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET progress = ? WHERE id = ?`, progress, id)
	if err != nil {
		return fmt.Errorf("habit update progress: %w", err)
	}
	return nil
}

func (r *HabitRepo) UpdateStreak(ctx context.Context, id string, streak int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET streak = ? WHERE id = ?`, streak, id)
	if err != nil {
		return fmt.Errorf("habit update streak: %w", err)
	}
	return nil
}

func (r *HabitRepo) Archive(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET archived_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("habit archive: %w", err)
	}
	return nil
}

// UpsertCheckIn records a habit's progress for a day. One row per habit per
// day; repeat check-ins overwrite progress, which keeps the recompute
// idempotent under toggling.
func (r *HabitRepo) UpsertCheckIn(ctx context.Context, c HabitCheckIn) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_checkins (id, habit_id, day, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET progress = excluded.progress, updated_at = excluded.updated_at
	`, c.ID, c.HabitID, c.Day, c.Progress, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("checkin upsert: %w", err)
	}
	return nil
}

// ListCheckInsRange returns check-ins for days in [from, to).
func (r *HabitRepo) ListCheckInsRange(ctx context.Context, from, to string) ([]HabitCheckIn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, day, progress, created_at, updated_at
		FROM habit_checkins
		WHERE day >= ? AND day < ?
		ORDER BY day ASC, habit_id ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("checkin range: %w", err)
	}
	defer rows.Close()

	var out []HabitCheckIn
	for rows.Next() {
		var c HabitCheckIn
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Day, &c.Progress, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("checkin scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkin rows: %w", err)
	}
	return out, nil
}

// CountCheckInsRange counts check-ins with positive progress in [from, to).
func (r *HabitRepo) CountCheckInsRange(ctx context.Context, from, to string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM habit_checkins WHERE day >= ? AND day < ? AND progress > 0
	`, from, to)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("checkin count: %w", err)
	}
	return n, nil
}
