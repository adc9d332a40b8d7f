package engine

import (
	"testing"
	"time"

	"ember/internal/storage"
	"ember/internal/timeutil"
)

func TestIsHabitDueOn(t *testing.T) {
	// 2025-06-14 is a Saturday, 2025-06-15 a Sunday, 2025-06-16 a Monday.
	sat := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	sun := sat.AddDate(0, 0, 1)
	mon := sat.AddDate(0, 0, 2)

	everyDay := &storage.Habit{ID: "a"}
	for _, at := range []time.Time{sat, sun, mon} {
		if !IsHabitDueOn(everyDay, at) {
			t.Fatalf("empty schedule must be due on %s", at.Weekday())
		}
	}

	weekend := &storage.Habit{ID: "b", ScheduleDays: []int{timeutil.WeekdaySaturday, timeutil.WeekdaySunday}}
	if !IsHabitDueOn(weekend, sat) || !IsHabitDueOn(weekend, sun) {
		t.Fatalf("weekend habit should be due Sat/Sun")
	}
	if IsHabitDueOn(weekend, mon) {
		t.Fatalf("weekend habit must not be due Monday")
	}
}

func TestResolveReminders(t *testing.T) {
	h := &storage.Habit{
		ID:             "habit-1",
		ScheduleDays:   []int{timeutil.WeekdayTuesday, timeutil.WeekdayThursday, timeutil.WeekdayTuesday, 99},
		ReminderHour:   26, // clamps to 23
		ReminderMinute: -5, // clamps to 0
	}

	triggers := ResolveReminders(h)
	if len(triggers) != 2 {
		t.Fatalf("triggers=%d, want 2 (dupes and invalid codes dropped)", len(triggers))
	}
	if triggers[0].ID != "habit-1/2" || triggers[1].ID != "habit-1/4" {
		t.Fatalf("trigger ids = %q, %q", triggers[0].ID, triggers[1].ID)
	}
	for _, tr := range triggers {
		if tr.Hour != 23 || tr.Minute != 0 {
			t.Fatalf("clamped time = %d:%d", tr.Hour, tr.Minute)
		}
		if tr.HabitID != "habit-1" {
			t.Fatalf("habit id = %q", tr.HabitID)
		}
	}
}

func TestResolveRemindersEmptyScheduleCoversWeek(t *testing.T) {
	h := &storage.Habit{ID: "h", ReminderHour: 9}
	triggers := ResolveReminders(h)
	if len(triggers) != 7 {
		t.Fatalf("triggers=%d, want 7", len(triggers))
	}
}
