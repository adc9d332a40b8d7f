package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainUserKey = "main_user"

type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) Get(ctx context.Context, key string) (*UserStats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, streak_days, focus_minutes, streak_protected, freeze_tokens,
			freeze_allowance, last_freeze_reset_month, reminders_enabled,
			reminder_hour, reminder_minute, updated_at
		FROM user_stats WHERE key = ?
	`, key)

	var s UserStats
	err := row.Scan(&s.Key, &s.StreakDays, &s.FocusMinutes, &s.StreakProtected,
		&s.FreezeTokens, &s.FreezeAllowance, &s.LastFreezeResetMonth,
		&s.RemindersEnabled, &s.ReminderHour, &s.ReminderMinute, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stats get: %w", err)
	}
	return &s, nil
}

func (r *StatsRepo) GetOrCreateMain(ctx context.Context) (*UserStats, error) {
	s, err := r.Get(ctx, MainUserKey)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO user_stats (key) VALUES (?)`, MainUserKey); err != nil {
		return nil, fmt.Errorf("stats insert: %w", err)
	}
	return r.Get(ctx, MainUserKey)
}

func (r *StatsRepo) Update(ctx context.Context, s *UserStats) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_stats
		SET streak_days = ?, focus_minutes = ?, streak_protected = ?, freeze_tokens = ?,
			freeze_allowance = ?, last_freeze_reset_month = ?, reminders_enabled = ?,
			reminder_hour = ?, reminder_minute = ?, updated_at = ?
		WHERE key = ?
	`, s.StreakDays, s.FocusMinutes, boolToInt(s.StreakProtected), s.FreezeTokens,
		s.FreezeAllowance, s.LastFreezeResetMonth, boolToInt(s.RemindersEnabled),
		s.ReminderHour, s.ReminderMinute, s.UpdatedAt, s.Key)
	if err != nil {
		return fmt.Errorf("stats update: %w", err)
	}
	return nil
}
