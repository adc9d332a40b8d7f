package engine

import "testing"

func TestEvaluateQuests(t *testing.T) {
	metrics := WeekMetrics{
		ActiveDays:          5,
		CompletedPriorities: 4,
		FocusMinutes:        320,
		CompletedTasks:      0,
		HabitCheckIns:       12,
	}
	claimed := map[string]bool{"deep_work": true}

	quests := EvaluateQuests("2025-06-09", metrics, claimed)
	if len(quests) != len(Catalog) {
		t.Fatalf("quests=%d, want %d", len(quests), len(Catalog))
	}

	byID := map[string]Quest{}
	for _, q := range quests {
		if q.WeekStart != "2025-06-09" {
			t.Fatalf("week start = %q", q.WeekStart)
		}
		byID[q.ID] = q
	}

	if q := byID["show_up"]; !q.IsComplete || q.IsClaimed || q.Progress != 5 {
		t.Fatalf("show_up = %+v", q)
	}
	if q := byID["top_three"]; q.IsComplete || q.Progress != 4 {
		t.Fatalf("top_three = %+v", q)
	}
	if q := byID["deep_work"]; !q.IsComplete || !q.IsClaimed {
		t.Fatalf("deep_work = %+v", q)
	}
	if q := byID["closer"]; q.IsComplete || q.Progress != 0 {
		t.Fatalf("closer = %+v", q)
	}
	if q := byID["ritualist"]; !q.IsComplete {
		t.Fatalf("ritualist = %+v", q)
	}
}
