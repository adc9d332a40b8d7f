package engine

import (
	"time"

	"ember/internal/storage"
	"ember/internal/timeutil"
)

// Segment is a maximal run of consecutive active days.
type Segment struct {
	Start  timeutil.DayKey
	End    timeutil.DayKey
	Length int
}

// StreakResult is the derived streak state over a log history.
type StreakResult struct {
	Current  int
	Best     int
	Segments []Segment
}

// dayActive applies the activity rule: intensity above the threshold, or
// the day explicitly protected by a freeze token.
func dayActive(l *storage.DailyLog, threshold float64) bool {
	return l.Intensity > threshold || l.Protected
}

// ComputeStreaks derives current/best streaks and segments from the log
// history. Logs must be ascending by day; days without a log row are
// inactive. Current is the run ending on today (zero when today is not
// active), where today is identified by the today key.
func ComputeStreaks(logs []storage.DailyLog, today timeutil.DayKey, threshold float64, loc *time.Location) StreakResult {
	var res StreakResult

	var runStart timeutil.DayKey
	runLen := 0
	var prevDay time.Time
	haveRun := false

	flush := func(end timeutil.DayKey) {
		if runLen == 0 {
			return
		}
		res.Segments = append(res.Segments, Segment{Start: runStart, End: end, Length: runLen})
		if runLen > res.Best {
			res.Best = runLen
		}
		if end == today {
			res.Current = runLen
		}
		runLen = 0
		haveRun = false
	}

	var lastActive timeutil.DayKey
	for i := range logs {
		l := &logs[i]
		day, err := timeutil.ParseDay(timeutil.DayKey(l.Day), loc)
		if err != nil {
			continue
		}
		if !dayActive(l, threshold) {
			flush(lastActive)
			continue
		}
		if haveRun && timeutil.DaysBetween(prevDay, day) != 1 {
			// Gap in the calendar breaks the run even with no log row between.
			flush(lastActive)
		}
		if !haveRun {
			runStart = timeutil.DayKey(l.Day)
			haveRun = true
		}
		runLen++
		prevDay = day
		lastActive = timeutil.DayKey(l.Day)
	}
	flush(lastActive)

	return res
}

// RefreshFreezeTokensIfDue tops the token budget back up to the allowance
// the first time it is touched in a new calendar month. Lazy and
// read-triggered; returns true when a reset fired.
func RefreshFreezeTokensIfDue(stats *storage.UserStats, now time.Time) bool {
	month := timeutil.MonthKey(now)
	if stats.LastFreezeResetMonth == month {
		return false
	}
	stats.LastFreezeResetMonth = month
	stats.FreezeTokens = stats.FreezeAllowance
	return true
}
