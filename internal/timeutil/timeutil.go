package timeutil

import "time"

// DayKey identifies a calendar day ("2006-01-02" in the local calendar).
// It is the canonical bucket key for daily logs and check-ins.
type DayKey string

const dayKeyLayout = "2006-01-02"

// Weekday codes are Monday-first, 1..7, independent of locale.
const (
	WeekdayMonday = 1 + iota
	WeekdayTuesday
	WeekdayWednesday
	WeekdayThursday
	WeekdayFriday
	WeekdaySaturday
	WeekdaySunday
)

// Day returns the DayKey for the calendar day containing t.
func Day(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// ParseDay parses a DayKey back to midnight in the given location.
func ParseDay(k DayKey, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, string(k), loc)
}

// DayStart truncates t to local midnight. Bucketing is by calendar date,
// not elapsed seconds, so DST transitions do not shift day membership.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayEnd returns the start of the next calendar day. Ranges over a day are
// half-open: [DayStart, DayEnd).
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// InDay reports whether instant falls within the calendar day of ref.
func InDay(instant, ref time.Time) bool {
	return Day(instant) == Day(ref)
}

// WeekdayCode maps t's weekday to the Monday-first 1..7 encoding.
func WeekdayCode(t time.Time) int {
	wd := int(t.Weekday()) // Sunday = 0
	if wd == 0 {
		return WeekdaySunday
	}
	return wd
}

// WeekStart returns midnight of the first day of the 7-day window containing
// t. firstWeekday uses the Monday-first 1..7 encoding; out-of-range values
// fall back to Monday.
func WeekStart(t time.Time, firstWeekday int) time.Time {
	if firstWeekday < WeekdayMonday || firstWeekday > WeekdaySunday {
		firstWeekday = WeekdayMonday
	}
	back := WeekdayCode(t) - firstWeekday
	if back < 0 {
		back += 7
	}
	return DayStart(t).AddDate(0, 0, -back)
}

// WeekEnd returns the end of the week window: WeekStart + 7 calendar days.
func WeekEnd(t time.Time, firstWeekday int) time.Time {
	return WeekStart(t, firstWeekday).AddDate(0, 0, 7)
}

// Week returns the DayKey of the week start, the canonical WeekKey.
func Week(t time.Time, firstWeekday int) DayKey {
	return Day(WeekStart(t, firstWeekday))
}

// MonthKey identifies a calendar month ("2006-01"), used for the lazy
// freeze-token refresh.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DaysBetween returns the number of calendar days from a to b (b after a is
// positive). Computed on dates, so it is stable across DST.
func DaysBetween(a, b time.Time) int {
	as := DayStart(a)
	bs := DayStart(b)
	days := 0
	for as.Before(bs) {
		as = as.AddDate(0, 0, 1)
		days++
	}
	for bs.Before(as) {
		bs = bs.AddDate(0, 0, 1)
		days--
	}
	return days
}
