package timeutil

import (
	"testing"
	"time"
)

func TestDayKeyRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	at := time.Date(2025, 3, 30, 23, 45, 0, 0, loc) // DST changeover day
	k := Day(at)
	if k != "2025-03-30" {
		t.Fatalf("Day=%q, want 2025-03-30", k)
	}
	back, err := ParseDay(k, loc)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if !back.Equal(DayStart(at)) {
		t.Fatalf("ParseDay=%v, want %v", back, DayStart(at))
	}
	if got := DayEnd(at).Sub(DayStart(at)); got == 24*time.Hour {
		t.Fatalf("expected a 23h day across the DST jump, got %v", got)
	}
}

func TestHalfOpenDayWindow(t *testing.T) {
	noon := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	if !InDay(DayStart(noon), noon) {
		t.Fatalf("day start should be in the day")
	}
	if InDay(DayEnd(noon), noon) {
		t.Fatalf("day end must be excluded (half-open)")
	}
}

func TestWeekStartFirstWeekday(t *testing.T) {
	// 2025-06-11 is a Wednesday.
	wed := time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		first int
		want  DayKey
	}{
		{WeekdayMonday, "2025-06-09"},
		{WeekdaySunday, "2025-06-08"},
		{WeekdaySaturday, "2025-06-07"},
		{0, "2025-06-09"}, // invalid falls back to Monday
	}
	for _, c := range cases {
		if got := Week(wed, c.first); got != c.want {
			t.Fatalf("Week(first=%d)=%q, want %q", c.first, got, c.want)
		}
	}

	// A Monday is its own Monday-first week start.
	mon := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if got := Week(mon, WeekdayMonday); got != "2025-06-09" {
		t.Fatalf("Week(monday)=%q", got)
	}
}

func TestWeekdayCode(t *testing.T) {
	// 2025-06-08 is a Sunday.
	sun := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	if got := WeekdayCode(sun); got != WeekdaySunday {
		t.Fatalf("sunday code=%d, want %d", got, WeekdaySunday)
	}
	if got := WeekdayCode(sun.AddDate(0, 0, 1)); got != WeekdayMonday {
		t.Fatalf("monday code=%d, want %d", got, WeekdayMonday)
	}
}

func TestMonthKeyAndDaysBetween(t *testing.T) {
	jan := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 1, 0, 0, 0, time.UTC)
	if MonthKey(jan) == MonthKey(feb) {
		t.Fatalf("month keys should differ across month boundary")
	}
	if got := DaysBetween(jan, feb); got != 1 {
		t.Fatalf("DaysBetween=%d, want 1", got)
	}
	if got := DaysBetween(feb, jan); got != -1 {
		t.Fatalf("DaysBetween reversed=%d, want -1", got)
	}
}
