package engine

import (
	"time"

	"ember/internal/storage"
)

// BuildDayLog computes the full derived row for one day from its source
// records. It is a pure full recompute: calling it twice with the same
// inputs yields the same row (modulo UpdatedAt), which is what makes
// toggling completions on and off safe.
//
// slate is the day's top-N priority slate, habitTotal the active habit
// roster size, checkIns the day's habit check-ins. User-owned fields
// (protection, note, photo) are carried over from prev.
func BuildDayLog(day string, prev *storage.DailyLog, slate []storage.Priority, habitTotal int, checkIns []storage.HabitCheckIn, focusMinutes int, now time.Time) storage.DailyLog {
	l := storage.DailyLog{Day: day, UpdatedAt: now}
	if prev != nil {
		l.Protected = prev.Protected
		l.Note = prev.Note
		l.PhotoRef = prev.PhotoRef
	}

	for i := range slate {
		if slate[i].IsCompleted {
			l.CompletedPriorities++
		}
	}
	l.TotalPriorities = len(slate)

	habitScore := 0.0
	for i := range checkIns {
		p := checkIns[i].Progress
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		habitScore += p
		if p >= 1 {
			l.CompletedHabits++
		}
	}
	l.TotalHabits = habitTotal
	if l.TotalHabits < len(checkIns) {
		// Check-ins can outlive archived habits; the roster never shrinks
		// below what the day actually recorded.
		l.TotalHabits = len(checkIns)
	}

	if focusMinutes < 0 {
		focusMinutes = 0
	}
	l.FocusMinutes = focusMinutes

	denom := float64(l.TotalPriorities + l.TotalHabits)
	if denom > 0 {
		intensity := (float64(l.CompletedPriorities) + habitScore) / denom
		if intensity < 0 {
			intensity = 0
		}
		if intensity > 1 {
			intensity = 1
		}
		l.Intensity = intensity
	}

	return l
}
