package engine

import (
	"testing"
	"time"

	"ember/internal/storage"
	"ember/internal/timeutil"
)

func logsFromIntensities(start string, intensities []float64) []storage.DailyLog {
	day, err := timeutil.ParseDay(timeutil.DayKey(start), time.UTC)
	if err != nil {
		panic(err)
	}
	out := make([]storage.DailyLog, 0, len(intensities))
	for _, v := range intensities {
		out = append(out, storage.DailyLog{Day: string(timeutil.Day(day)), Intensity: v})
		day = day.AddDate(0, 0, 1)
	}
	return out
}

func TestComputeStreaksPattern(t *testing.T) {
	logs := logsFromIntensities("2025-06-01", []float64{0, 0.1, 0.2, 0, 0.3, 0.3})

	res := ComputeStreaks(logs, "2025-06-06", 0.05, time.UTC)
	if res.Best != 2 {
		t.Fatalf("best=%d, want 2", res.Best)
	}
	if res.Current != 2 {
		t.Fatalf("current=%d, want 2", res.Current)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("segments=%d, want 2", len(res.Segments))
	}
	if res.Segments[0].Start != "2025-06-02" || res.Segments[0].End != "2025-06-03" {
		t.Fatalf("segment 0 = %+v", res.Segments[0])
	}
}

func TestComputeStreaksCurrentZeroWhenTodayInactive(t *testing.T) {
	logs := logsFromIntensities("2025-06-01", []float64{0.5, 0.5, 0})

	res := ComputeStreaks(logs, "2025-06-03", 0.05, time.UTC)
	if res.Current != 0 {
		t.Fatalf("current=%d, want 0 (today inactive)", res.Current)
	}
	if res.Best != 2 {
		t.Fatalf("best=%d, want 2", res.Best)
	}
}

func TestComputeStreaksProtectedDayCounts(t *testing.T) {
	logs := logsFromIntensities("2025-06-01", []float64{0.4, 0, 0.4})
	logs[1].Protected = true // frozen day bridges the gap

	res := ComputeStreaks(logs, "2025-06-03", 0.05, time.UTC)
	if res.Best != 3 || res.Current != 3 {
		t.Fatalf("best=%d current=%d, want 3/3", res.Best, res.Current)
	}
}

func TestComputeStreaksMissingRowBreaksRun(t *testing.T) {
	logs := []storage.DailyLog{
		{Day: "2025-06-01", Intensity: 0.5},
		{Day: "2025-06-02", Intensity: 0.5},
		// no row at all for 06-03
		{Day: "2025-06-04", Intensity: 0.5},
	}

	res := ComputeStreaks(logs, "2025-06-04", 0.05, time.UTC)
	if res.Best != 2 {
		t.Fatalf("best=%d, want 2", res.Best)
	}
	if res.Current != 1 {
		t.Fatalf("current=%d, want 1", res.Current)
	}
}

func TestComputeStreaksThresholdIsExclusive(t *testing.T) {
	logs := logsFromIntensities("2025-06-01", []float64{0.05})
	res := ComputeStreaks(logs, "2025-06-01", 0.05, time.UTC)
	if res.Best != 0 {
		t.Fatalf("intensity equal to threshold should not be active")
	}
}

func TestRefreshFreezeTokensIfDue(t *testing.T) {
	stats := &storage.UserStats{
		FreezeTokens:         0,
		FreezeAllowance:      2,
		LastFreezeResetMonth: "2025-05",
	}

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if !RefreshFreezeTokensIfDue(stats, now) {
		t.Fatalf("expected reset on new month")
	}
	if stats.FreezeTokens != 2 || stats.LastFreezeResetMonth != "2025-06" {
		t.Fatalf("after reset: %+v", stats)
	}

	// Same month: no second reset even after spending.
	stats.FreezeTokens = 1
	if RefreshFreezeTokensIfDue(stats, now.AddDate(0, 0, 20)) {
		t.Fatalf("unexpected reset within the same month")
	}
	if stats.FreezeTokens != 1 {
		t.Fatalf("tokens=%d, want 1", stats.FreezeTokens)
	}
}
