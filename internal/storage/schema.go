package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_stats (
			key TEXT PRIMARY KEY,
			streak_days INTEGER DEFAULT 0,
			focus_minutes INTEGER DEFAULT 0,
			streak_protected INTEGER DEFAULT 0,
			freeze_tokens INTEGER DEFAULT 2,
			freeze_allowance INTEGER DEFAULT 2,
			last_freeze_reset_month TEXT DEFAULT '',
			reminders_enabled INTEGER DEFAULT 0,
			reminder_hour INTEGER DEFAULT 9,
			reminder_minute INTEGER DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS daily_logs (
			day TEXT PRIMARY KEY,
			intensity REAL DEFAULT 0,
			completed_priorities INTEGER DEFAULT 0,
			total_priorities INTEGER DEFAULT 0,
			completed_habits INTEGER DEFAULT 0,
			total_habits INTEGER DEFAULT 0,
			focus_minutes INTEGER DEFAULT 0,
			protected INTEGER DEFAULT 0,
			note TEXT DEFAULT '',
			photo_ref TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS xp_bonuses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			detail TEXT DEFAULT '',
			amount INTEGER NOT NULL,
			week_start TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quest_claims (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quest_id TEXT NOT NULL,
			week_start TEXT NOT NULL,
			reward_xp INTEGER NOT NULL,
			claimed_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			schedule_days TEXT DEFAULT '[]',
			streak INTEGER DEFAULT 0,
			progress REAL DEFAULT 0,
			reminder_hour INTEGER DEFAULT 9,
			reminder_minute INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			archived_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS habit_checkins (
			id TEXT PRIMARY KEY,
			habit_id TEXT NOT NULL,
			day TEXT NOT NULL,
			progress REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(habit_id) REFERENCES habits(id)
		);`,
		`CREATE TABLE IF NOT EXISTS priorities (
			id TEXT PRIMARY KEY,
			day TEXT NOT NULL,
			title TEXT NOT NULL,
			rank INTEGER NOT NULL,
			is_completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS milestones (
			id TEXT PRIMARY KEY,
			goal_id TEXT NOT NULL,
			title TEXT NOT NULL,
			is_completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(goal_id) REFERENCES goals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			goal_id TEXT,
			title TEXT NOT NULL,
			weight INTEGER DEFAULT 0,
			is_completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS focus_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			minutes INTEGER NOT NULL
		);`,
		// One claim per (quest, week); the idempotency guard for rewards.
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_quest_claims_quest_week ON quest_claims(quest_id, week_start);`,
		// One check-in per habit per day; progress edits upsert into it.
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_habit_checkins_habit_day ON habit_checkins(habit_id, day);`,
		`CREATE INDEX IF NOT EXISTS idx_habit_checkins_day ON habit_checkins(day);`,
		`CREATE INDEX IF NOT EXISTS idx_priorities_day ON priorities(day);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_completed_at ON tasks(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_milestones_completed_at ON milestones(completed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_focus_sessions_ended_at ON focus_sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_xp_bonuses_week_start ON xp_bonuses(week_start);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE daily_logs ADD COLUMN protected INTEGER DEFAULT 0;`,
		`ALTER TABLE daily_logs ADD COLUMN photo_ref TEXT;`,
		`ALTER TABLE habits ADD COLUMN reminder_hour INTEGER DEFAULT 9;`,
		`ALTER TABLE habits ADD COLUMN reminder_minute INTEGER DEFAULT 0;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
