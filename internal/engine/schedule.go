package engine

import (
	"fmt"
	"time"

	"ember/internal/storage"
	"ember/internal/timeutil"
)

// IsHabitDueOn reports whether the habit is due on the day of now. An empty
// schedule means due every day; weekday codes are Monday-first 1..7 and do
// not depend on the configured first weekday.
func IsHabitDueOn(h *storage.Habit, now time.Time) bool {
	if len(h.ScheduleDays) == 0 {
		return true
	}
	code := timeutil.WeekdayCode(now)
	for _, d := range h.ScheduleDays {
		if d == code {
			return true
		}
	}
	return false
}

// ReminderTrigger describes one recurring weekly reminder. ID is stable per
// habit per weekday so a single trigger can be canceled or replaced without
// touching the habit's other weekdays. Dispatching is the platform's job.
type ReminderTrigger struct {
	ID      string
	HabitID string
	Weekday int
	Hour    int
	Minute  int
}

// ResolveReminders maps a habit's schedule and reminder time to one trigger
// per scheduled weekday. Empty schedules resolve to all seven days. Hour
// and minute are clamped to valid clock values.
func ResolveReminders(h *storage.Habit) []ReminderTrigger {
	hour := clampInt(h.ReminderHour, 0, 23)
	minute := clampInt(h.ReminderMinute, 0, 59)

	days := h.ScheduleDays
	if len(days) == 0 {
		days = []int{
			timeutil.WeekdayMonday, timeutil.WeekdayTuesday, timeutil.WeekdayWednesday,
			timeutil.WeekdayThursday, timeutil.WeekdayFriday, timeutil.WeekdaySaturday,
			timeutil.WeekdaySunday,
		}
	}

	var out []ReminderTrigger
	seen := map[int]bool{}
	for _, d := range days {
		if d < timeutil.WeekdayMonday || d > timeutil.WeekdaySunday || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, ReminderTrigger{
			ID:      fmt.Sprintf("%s/%d", h.ID, d),
			HabitID: h.ID,
			Weekday: d,
			Hour:    hour,
			Minute:  minute,
		})
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
