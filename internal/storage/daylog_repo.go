package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type DayLogRepo struct {
	db *sql.DB
}

func NewDayLogRepo(db *sql.DB) *DayLogRepo {
	return &DayLogRepo{db: db}
}

const dayLogColumns = `day, intensity, completed_priorities, total_priorities,
	completed_habits, total_habits, focus_minutes, protected, note, photo_ref, updated_at`

func scanDayLog(row interface{ Scan(...any) error }) (*DailyLog, error) {
	var l DailyLog
	err := row.Scan(&l.Day, &l.Intensity, &l.CompletedPriorities, &l.TotalPriorities,
		&l.CompletedHabits, &l.TotalHabits, &l.FocusMinutes, &l.Protected, &l.Note,
		&l.PhotoRef, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *DayLogRepo) Get(ctx context.Context, day string) (*DailyLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+dayLogColumns+` FROM daily_logs WHERE day = ?`, day)
	l, err := scanDayLog(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("daylog get: %w", err)
	}
	return l, nil
}

// Upsert writes the full recomputed row for a day. The day key is the
// conflict target, so repeated recomputes land on the same row.
func (r *DayLogRepo) Upsert(ctx context.Context, l *DailyLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_logs (
			day, intensity, completed_priorities, total_priorities,
			completed_habits, total_habits, focus_minutes, protected, note, photo_ref, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			intensity = excluded.intensity,
			completed_priorities = excluded.completed_priorities,
			total_priorities = excluded.total_priorities,
			completed_habits = excluded.completed_habits,
			total_habits = excluded.total_habits,
			focus_minutes = excluded.focus_minutes,
			protected = excluded.protected,
			note = excluded.note,
			photo_ref = excluded.photo_ref,
			updated_at = excluded.updated_at
	`, l.Day, l.Intensity, l.CompletedPriorities, l.TotalPriorities,
		l.CompletedHabits, l.TotalHabits, l.FocusMinutes, boolToInt(l.Protected),
		l.Note, l.PhotoRef, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("daylog upsert: %w", err)
	}
	return nil
}

// ListRange returns logs for days in [from, to), ascending by day.
func (r *DayLogRepo) ListRange(ctx context.Context, from, to string) ([]DailyLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+dayLogColumns+`
		FROM daily_logs
		WHERE day >= ? AND day < ?
		ORDER BY day ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("daylog range: %w", err)
	}
	return collectDayLogs(rows)
}

// ListAll returns the full log history ascending by day.
func (r *DayLogRepo) ListAll(ctx context.Context) ([]DailyLog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+dayLogColumns+` FROM daily_logs ORDER BY day ASC`)
	if err != nil {
		return nil, fmt.Errorf("daylog list: %w", err)
	}
	return collectDayLogs(rows)
}

func collectDayLogs(rows *sql.Rows) ([]DailyLog, error) {
	defer rows.Close()
	var out []DailyLog
	for rows.Next() {
		l, err := scanDayLog(rows)
		if err != nil {
			return nil, fmt.Errorf("daylog scan: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daylog rows: %w", err)
	}
	return out, nil
}

// SetProtected flips the per-day protection flag, creating the row if the
// day has no log yet.
func (r *DayLogRepo) SetProtected(ctx context.Context, day string, protected bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_logs (day, protected, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(day) DO UPDATE SET protected = excluded.protected, updated_at = CURRENT_TIMESTAMP
	`, day, boolToInt(protected))
	if err != nil {
		return fmt.Errorf("daylog set protected: %w", err)
	}
	return nil
}

// SetNote sets the user note (and optional photo ref) on a day, creating
// the row lazily the first time the day is opened.
func (r *DayLogRepo) SetNote(ctx context.Context, day, note string, photoRef *string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_logs (day, note, photo_ref, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(day) DO UPDATE SET note = excluded.note, photo_ref = excluded.photo_ref, updated_at = CURRENT_TIMESTAMP
	`, day, note, photoRef)
	if err != nil {
		return fmt.Errorf("daylog set note: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
