package widget

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFilePublisherWritesReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.json")
	p := FilePublisher{Path: path}

	snap := Snapshot{
		Date:               "2025-06-10",
		StreakDays:         4,
		TodayProgressRatio: 0.5,
		TopPriorityTitles:  []string{"ship release", "review PRs"},
	}
	if err := p.Publish(snap); err != nil {
		t.Fatalf("publish: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Date != snap.Date || got.StreakDays != 4 || len(got.TopPriorityTitles) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Republish must replace, not append, and must not leave the temp file.
	snap.StreakDays = 5
	if err := p.Publish(snap); err != nil {
		t.Fatalf("republish: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("reread unmarshal: %v", err)
	}
	if got.StreakDays != 5 {
		t.Fatalf("expected updated snapshot, got %+v", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestDefaultSnapshotPathSitsBesideDB(t *testing.T) {
	got := DefaultSnapshotPath("/home/u/.ember.db")
	if got != "/home/u/ember-widget.json" {
		t.Fatalf("unexpected path %q", got)
	}
}
