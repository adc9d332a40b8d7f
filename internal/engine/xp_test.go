package engine

import (
	"math"
	"testing"

	"ember/internal/storage"
)

func TestXPForDay(t *testing.T) {
	if got := XPForDay(2, 3, 40); got != 175 {
		t.Fatalf("XPForDay(2,3,40)=%d, want 175", got)
	}
	// Focus caps at 120 minutes.
	if got := XPForDay(0, 0, 500); got != 120 {
		t.Fatalf("XPForDay focus cap=%d, want 120", got)
	}
	// Negative inputs clamp to zero, never panic or go negative.
	if got := XPForDay(-4, -1, -30); got != 0 {
		t.Fatalf("XPForDay negative=%d, want 0", got)
	}
}

func TestXPForTaskAndMilestone(t *testing.T) {
	if got := XPForTask(0); got != 30 {
		t.Fatalf("XPForTask(0)=%d, want 30", got)
	}
	if got := XPForTask(3); got != 60 {
		t.Fatalf("XPForTask(3)=%d, want 60", got)
	}
	if got := XPForTask(-2); got != 30 {
		t.Fatalf("XPForTask(-2)=%d, want 30", got)
	}
	if got := XPForMilestone(); got != 120 {
		t.Fatalf("XPForMilestone=%d, want 120", got)
	}
}

func TestLevelBoundaries(t *testing.T) {
	if got := LevelForXP(0); got != 1 {
		t.Fatalf("LevelForXP(0)=%d, want 1", got)
	}
	if got := LevelForXP(499); got != 1 {
		t.Fatalf("LevelForXP(499)=%d, want 1", got)
	}
	if got := LevelForXP(500); got != 2 {
		t.Fatalf("LevelForXP(500)=%d, want 2", got)
	}

	p := Progress(500)
	if p.Level != 2 || p.Current != 0 || p.Ratio != 0.0 {
		t.Fatalf("Progress(500)=%+v, want level 2 ratio 0", p)
	}
	p = Progress(999)
	if p.Level != 2 || math.Abs(p.Ratio-0.998) > 1e-9 {
		t.Fatalf("Progress(999)=%+v, want level 2 ratio 0.998", p)
	}
	if p := Progress(-10); p.Level != 1 || p.Current != 0 {
		t.Fatalf("Progress(-10)=%+v, want level 1", p)
	}
}

func TestTotalXPMonotonicUnderAdditions(t *testing.T) {
	var logs []storage.DailyLog
	var tasks []storage.Task
	var bonuses []storage.XPBonus

	prev := TotalXP(logs, tasks, nil, bonuses)
	if prev != 0 {
		t.Fatalf("empty TotalXP=%d, want 0", prev)
	}

	steps := []func(){
		func() { logs = append(logs, storage.DailyLog{Day: "2025-06-01", CompletedPriorities: 2}) },
		func() { logs = append(logs, storage.DailyLog{Day: "2025-06-02", CompletedHabits: 1, FocusMinutes: 30}) },
		func() { tasks = append(tasks, storage.Task{Weight: 2, IsCompleted: true}) },
		func() { tasks = append(tasks, storage.Task{Weight: 5, IsCompleted: false}) }, // incomplete adds nothing but never subtracts
		func() { bonuses = append(bonuses, storage.XPBonus{Amount: 150}) },
	}
	for i, step := range steps {
		step()
		got := TotalXP(logs, tasks, nil, bonuses)
		if got < prev {
			t.Fatalf("step %d: TotalXP decreased %d -> %d", i, prev, got)
		}
		prev = got
	}
}
