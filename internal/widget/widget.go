package widget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot is the read-only view published for external display surfaces
// (home-screen widget, glance). Consumers never write back.
type Snapshot struct {
	Date               string   `json:"date"`
	StreakDays         int      `json:"streak_days"`
	TodayProgressRatio float64  `json:"today_progress_ratio"`
	TopPriorityTitles  []string `json:"top_priority_titles"`
}

// Publisher is the side-channel sink for snapshots. Publish failures must
// never fail the recompute that produced the snapshot.
type Publisher interface {
	Publish(s Snapshot) error
}

// FilePublisher writes the snapshot as JSON next to the database. The write
// goes through a temp file and rename so readers never see a torn file.
type FilePublisher struct {
	Path string
}

// DefaultSnapshotPath puts the snapshot beside the given database file.
func DefaultSnapshotPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "ember-widget.json")
}

func (p FilePublisher) Publish(s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp := p.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, p.Path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// Discard drops snapshots; used when no widget surface is configured.
type Discard struct{}

func (Discard) Publish(Snapshot) error { return nil }
