package storage

import "time"

// DailyLog is the one-row-per-calendar-day summary the engine derives from
// source records. Day is the unique day key ("2006-01-02").
type DailyLog struct {
	Day                 string
	Intensity           float64
	CompletedPriorities int
	TotalPriorities     int
	CompletedHabits     int
	TotalHabits         int
	FocusMinutes        int
	Protected           bool
	Note                string
	PhotoRef            *string
	UpdatedAt           time.Time
}

// UserStats is the singleton per-user record: streak display fields, the
// freeze-token budget, and reminder preferences.
type UserStats struct {
	Key                  string
	StreakDays           int
	FocusMinutes         int
	StreakProtected      bool
	FreezeTokens         int
	FreezeAllowance      int
	LastFreezeResetMonth string
	RemindersEnabled     bool
	ReminderHour         int
	ReminderMinute       int
	UpdatedAt            time.Time
}

// XPBonus is an ad-hoc XP award. Rows are immutable once inserted.
type XPBonus struct {
	ID        int64
	Source    string
	Detail    string
	Amount    int
	WeekStart *string
	CreatedAt time.Time
}

// QuestClaim records a one-time weekly quest reward. (QuestID, WeekStart)
// is unique; that index is the idempotency guard for reward granting.
type QuestClaim struct {
	ID        int64
	QuestID   string
	WeekStart string
	RewardXP  int
	ClaimedAt time.Time
}

// Habit is a recurring practice with a weekly schedule (Monday-first 1..7
// weekday codes; empty means every day) and today's fractional progress.
type Habit struct {
	ID             string
	Name           string
	ScheduleDays   []int
	Streak         int
	Progress       float64
	ReminderHour   int
	ReminderMinute int
	CreatedAt      time.Time
	ArchivedAt     *time.Time
}

// HabitCheckIn is one habit's record for one day it was acted on.
type HabitCheckIn struct {
	ID        string
	HabitID   string
	Day       string
	Progress  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Priority is one slot of a day's top-N slate.
type Priority struct {
	ID          string
	Day         string
	Title       string
	Rank        int
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// Task is a standalone todo. Weight feeds task XP (base + weight bonus).
type Task struct {
	ID          string
	GoalID      *string
	Title       string
	Weight      int
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// Goal groups milestones; both are consumed read-only by XP and quest logic.
type Goal struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

type Milestone struct {
	ID          string
	GoalID      string
	Title       string
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// FocusSession is a finished focus timer run.
type FocusSession struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	Minutes   int
}
