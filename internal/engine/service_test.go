package engine

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"ember/internal/config"
	"ember/internal/storage"
	"ember/internal/timeutil"
)

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Fixed, test-controlled clock. Tests advance it by writing through
	// the returned pointer.
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	svc := NewService(db, config.Default())
	svc.Now = func() time.Time { return now }
	return svc, &now
}

func seedDay(t *testing.T, svc *Service, ctx context.Context) {
	t.Helper()

	for i, title := range []string{"ship report", "call bank", "plan sprint"} {
		if _, err := svc.AddPriority(ctx, title, i+1); err != nil {
			t.Fatalf("add priority: %v", err)
		}
	}
	slate, err := svc.PriorityRepo().ListSlate(ctx, string(timeutil.Day(svc.Now())), 3)
	if err != nil {
		t.Fatalf("slate: %v", err)
	}
	for _, p := range slate[:2] {
		if _, err := svc.CompletePriority(ctx, p.ID); err != nil {
			t.Fatalf("complete priority: %v", err)
		}
	}

	var habits []*storage.Habit
	for _, name := range []string{"run", "read", "meditate", "stretch"} {
		h, err := svc.AddHabit(ctx, name, nil, 9, 0)
		if err != nil {
			t.Fatalf("add habit: %v", err)
		}
		habits = append(habits, h)
	}
	for _, h := range habits[:3] {
		if _, err := svc.CheckInHabit(ctx, h.ID, svc.Now(), 1.0); err != nil {
			t.Fatalf("check in: %v", err)
		}
	}
	if _, err := svc.CheckInHabit(ctx, habits[3].ID, svc.Now(), 0); err != nil {
		t.Fatalf("check in zero: %v", err)
	}

	if _, err := svc.LogFocus(ctx, 40); err != nil {
		t.Fatalf("log focus: %v", err)
	}
}

func TestUpsertTodayLogEndToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedDay(t, svc, ctx)

	log, err := svc.UpsertTodayLog(ctx)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if log.CompletedPriorities != 2 || log.TotalPriorities != 3 {
		t.Fatalf("priorities %d/%d, want 2/3", log.CompletedPriorities, log.TotalPriorities)
	}
	if log.CompletedHabits != 3 || log.TotalHabits != 4 {
		t.Fatalf("habits %d/%d, want 3/4", log.CompletedHabits, log.TotalHabits)
	}
	if log.FocusMinutes != 40 {
		t.Fatalf("focus=%d, want 40", log.FocusMinutes)
	}
	want := (2.0 + 3.0) / (3.0 + 4.0)
	if math.Abs(log.Intensity-want) > 1e-9 {
		t.Fatalf("intensity=%v, want %v", log.Intensity, want)
	}
	if got := XPForDay(log.CompletedPriorities, log.CompletedHabits, log.FocusMinutes); got != 175 {
		t.Fatalf("day xp=%d, want 175", got)
	}
}

func TestUpsertTodayLogIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedDay(t, svc, ctx)

	first, err := svc.UpsertTodayLog(ctx)
	if err != nil {
		t.Fatalf("upsert 1: %v", err)
	}
	second, err := svc.UpsertTodayLog(ctx)
	if err != nil {
		t.Fatalf("upsert 2: %v", err)
	}

	a, b := *first, *second
	a.UpdatedAt, b.UpdatedAt = time.Time{}, time.Time{}
	if a != b {
		t.Fatalf("recompute not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestToggleCompletionRecomputes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.AddPriority(ctx, "one thing", 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	log, err := svc.CompletePriority(ctx, p.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if log.CompletedPriorities != 1 || log.Intensity != 1.0 {
		t.Fatalf("after complete: %+v", log)
	}

	log, err = svc.UncompletePriority(ctx, p.ID)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if log.CompletedPriorities != 0 || log.Intensity != 0.0 {
		t.Fatalf("after uncomplete: %+v", log)
	}
}

func TestFreezeTokenBudget(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	stats, err := svc.FreezeStatus(ctx)
	if err != nil {
		t.Fatalf("freeze status: %v", err)
	}
	if stats.FreezeTokens != 2 {
		t.Fatalf("initial tokens=%d, want 2", stats.FreezeTokens)
	}

	// Two activations on two days of the same month succeed.
	if stats, err = svc.ActivateStreakProtection(ctx); err != nil {
		t.Fatalf("activate 1: %v", err)
	}
	if stats.FreezeTokens != 1 {
		t.Fatalf("tokens after 1st=%d, want 1", stats.FreezeTokens)
	}

	*now = now.AddDate(0, 0, 1)
	if stats, err = svc.ActivateStreakProtection(ctx); err != nil {
		t.Fatalf("activate 2: %v", err)
	}
	if stats.FreezeTokens != 0 {
		t.Fatalf("tokens after 2nd=%d, want 0", stats.FreezeTokens)
	}

	// Third day: budget exhausted.
	*now = now.AddDate(0, 0, 1)
	_, err = svc.ActivateStreakProtection(ctx)
	var insufficient InsufficientTokensError
	if !errors.As(err, &insufficient) {
		t.Fatalf("activate 3: err=%v, want InsufficientTokensError", err)
	}

	// Next month: lazy refresh restores the allowance on access.
	*now = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	stats, err = svc.FreezeStatus(ctx)
	if err != nil {
		t.Fatalf("freeze status july: %v", err)
	}
	if stats.FreezeTokens != 2 {
		t.Fatalf("tokens after rollover=%d, want 2", stats.FreezeTokens)
	}
}

func TestActivateProtectionIsPerDayAndNoRefund(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.ActivateStreakProtection(ctx); err != nil {
		t.Fatalf("activate: %v", err)
	}
	// Same day again: no-op, no extra token spent.
	stats, err := svc.ActivateStreakProtection(ctx)
	if err != nil {
		t.Fatalf("re-activate: %v", err)
	}
	if stats.FreezeTokens != 1 {
		t.Fatalf("tokens=%d, want 1 (no double spend)", stats.FreezeTokens)
	}

	log, err := svc.LogRepo().Get(ctx, string(timeutil.Day(svc.Now())))
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if log == nil || !log.Protected {
		t.Fatalf("today's log should carry the protection flag: %+v", log)
	}

	// Turning protection off spends nothing back.
	stats, err = svc.ToggleStreakProtection(ctx)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if stats.FreezeTokens != 1 {
		t.Fatalf("tokens after off=%d, want 1 (no refund)", stats.FreezeTokens)
	}
	log, _ = svc.LogRepo().Get(ctx, string(timeutil.Day(svc.Now())))
	if log.Protected {
		t.Fatalf("protection should be off")
	}
}

func TestProtectedDayKeepsStreakAlive(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	// Active yesterday, protected today with no activity.
	yesterday := now.AddDate(0, 0, -1)
	if err := svc.LogRepo().Upsert(ctx, &storage.DailyLog{
		Day: string(timeutil.Day(yesterday)), Intensity: 0.5, UpdatedAt: yesterday,
	}); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	if _, err := svc.ActivateStreakProtection(ctx); err != nil {
		t.Fatalf("activate: %v", err)
	}

	res, err := svc.Streaks(ctx)
	if err != nil {
		t.Fatalf("streaks: %v", err)
	}
	if res.Current != 2 {
		t.Fatalf("current=%d, want 2 (protected today extends run)", res.Current)
	}

	stats, err := svc.StatsRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.StreakDays != 2 {
		t.Fatalf("stats mirror=%d, want 2", stats.StreakDays)
	}
}

func TestClaimQuestIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Complete five tasks this week to finish the "closer" quest.
	for i := 0; i < 5; i++ {
		task, err := svc.AddTask(ctx, "task", 1, nil)
		if err != nil {
			t.Fatalf("add task: %v", err)
		}
		if err := svc.CompleteTask(ctx, task.ID); err != nil {
			t.Fatalf("complete task: %v", err)
		}
	}

	claim, bonus, err := svc.ClaimQuest(ctx, "closer")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claim.RewardXP != bonus.Amount {
		t.Fatalf("claim xp %d != bonus %d", claim.RewardXP, bonus.Amount)
	}
	if bonus.WeekStart == nil || *bonus.WeekStart != claim.WeekStart {
		t.Fatalf("bonus week tag mismatch: %+v vs %+v", bonus, claim)
	}

	_, _, err = svc.ClaimQuest(ctx, "closer")
	var already AlreadyClaimedError
	if !errors.As(err, &already) {
		t.Fatalf("second claim err=%v, want AlreadyClaimedError", err)
	}

	n, err := svc.ClaimRepo().CountAll(ctx)
	if err != nil {
		t.Fatalf("count claims: %v", err)
	}
	if n != 1 {
		t.Fatalf("claims=%d, want 1", n)
	}
	bonuses, err := svc.BonusRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list bonuses: %v", err)
	}
	if len(bonuses) != 1 {
		t.Fatalf("bonuses=%d, want 1", len(bonuses))
	}
}

func TestClaimQuestRollsBackWhenBonusWriteFails(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		task, err := svc.AddTask(ctx, "task", 0, nil)
		if err != nil {
			t.Fatalf("add task: %v", err)
		}
		if err := svc.CompleteTask(ctx, task.ID); err != nil {
			t.Fatalf("complete task: %v", err)
		}
	}

	// Make the second write of the claim transaction fail: with the bonus
	// table gone, the claim insert succeeds inside the tx and the bonus
	// insert errors, so the whole claim must roll back.
	if _, err := svc.db.ExecContext(ctx, `DROP TABLE xp_bonuses`); err != nil {
		t.Fatalf("drop bonuses: %v", err)
	}
	if _, _, err := svc.ClaimQuest(ctx, "closer"); err == nil {
		t.Fatalf("claim should fail when the bonus write fails")
	}
	n, err := svc.ClaimRepo().CountAll(ctx)
	if err != nil {
		t.Fatalf("count claims: %v", err)
	}
	if n != 0 {
		t.Fatalf("claims=%d, want 0 (no claim may survive without its bonus)", n)
	}

	// Restoring the table lets the same claim go through cleanly.
	if err := storage.Migrate(ctx, svc.db); err != nil {
		t.Fatalf("remigrate: %v", err)
	}
	claim, bonus, err := svc.ClaimQuest(ctx, "closer")
	if err != nil {
		t.Fatalf("claim after restore: %v", err)
	}
	if claim == nil || bonus == nil {
		t.Fatalf("claim after restore returned nil rows")
	}
	bonuses, err := svc.BonusRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("list bonuses: %v", err)
	}
	if len(bonuses) != 1 {
		t.Fatalf("bonuses=%d, want 1", len(bonuses))
	}
}

func TestClaimQuestNotComplete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.ClaimQuest(ctx, "deep_work")
	var notComplete NotCompleteError
	if !errors.As(err, &notComplete) {
		t.Fatalf("err=%v, want NotCompleteError", err)
	}

	n, _ := svc.ClaimRepo().CountAll(ctx)
	if n != 0 {
		t.Fatalf("failed claim must not insert rows")
	}
}

func TestQuestsResetOnNewWeek(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		task, _ := svc.AddTask(ctx, "task", 0, nil)
		if err := svc.CompleteTask(ctx, task.ID); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}
	if _, _, err := svc.ClaimQuest(ctx, "closer"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	// Next Monday: fresh unclaimed instance with zero progress.
	*now = now.AddDate(0, 0, 7)
	quests, err := svc.WeeklyQuests(ctx)
	if err != nil {
		t.Fatalf("quests: %v", err)
	}
	for _, q := range quests {
		if q.ID == "closer" {
			if q.IsClaimed || q.IsComplete || q.Progress != 0 {
				t.Fatalf("new week closer = %+v", q)
			}
		}
	}
}

func TestLogFocusAccumulates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.LogFocus(ctx, 30); err != nil {
		t.Fatalf("focus 1: %v", err)
	}
	log, err := svc.LogFocus(ctx, 20)
	if err != nil {
		t.Fatalf("focus 2: %v", err)
	}
	if log.FocusMinutes != 50 {
		t.Fatalf("focus=%d, want 50", log.FocusMinutes)
	}

	stats, _ := svc.StatsRepo().GetOrCreateMain(ctx)
	if stats.FocusMinutes != 50 {
		t.Fatalf("rolling focus=%d, want 50", stats.FocusMinutes)
	}
}

func TestTotalXPAcrossSources(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedDay(t, svc, ctx)

	task, _ := svc.AddTask(ctx, "big one", 3, nil)
	if err := svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	goal, _ := svc.AddGoal(ctx, "learn go")
	ms, _ := svc.AddMilestone(ctx, goal.ID, "finish tour")
	if err := svc.CompleteMilestone(ctx, ms.ID); err != nil {
		t.Fatalf("complete milestone: %v", err)
	}

	total, err := svc.TotalXP(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	// day 175 + task 30+3*10 + milestone 120
	if total != 175+60+120 {
		t.Fatalf("total=%d, want %d", total, 175+60+120)
	}

	p, err := svc.LevelStatus(ctx)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if p.Level != 1 || p.Current != 355 {
		t.Fatalf("progress=%+v", p)
	}
}

func TestDayRolloverResetsTodayMirrors(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	h, err := svc.AddHabit(ctx, "read", nil, 9, 0)
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}
	if _, err := svc.CheckInHabit(ctx, h.ID, *now, 1); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if _, err := svc.ActivateStreakProtection(ctx); err != nil {
		t.Fatalf("activate: %v", err)
	}
	firstDay := string(timeutil.Day(*now))

	// Next morning, before any activity: both mirrors must read fresh.
	*now = now.AddDate(0, 0, 1)
	if _, err := svc.UpsertTodayLog(ctx); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := svc.HabitRepo().Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if got.Progress != 0 {
		t.Fatalf("habit progress=%v, want 0 after rollover", got.Progress)
	}
	stats, err := svc.StatsRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.StreakProtected {
		t.Fatalf("yesterday's protection must not read as today's")
	}

	// Yesterday's rows keep their truth.
	prev, err := svc.LogRepo().Get(ctx, firstDay)
	if err != nil {
		t.Fatalf("get prev log: %v", err)
	}
	if prev == nil || !prev.Protected || prev.CompletedHabits != 1 {
		t.Fatalf("yesterday's log lost state: %+v", prev)
	}

	// Checking in again flips the mirror back on for the new day.
	if _, err := svc.CheckInHabit(ctx, h.ID, *now, 1); err != nil {
		t.Fatalf("check in day 2: %v", err)
	}
	got, err = svc.HabitRepo().Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get habit 2: %v", err)
	}
	if got.Progress != 1 {
		t.Fatalf("habit progress=%v, want 1 after new check-in", got.Progress)
	}
}

func TestHabitStreakOverDueDays(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	// Due Mon/Wed only. 2025-06-09 is a Monday.
	*now = time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)
	h, err := svc.AddHabit(ctx, "gym", []int{timeutil.WeekdayMonday, timeutil.WeekdayWednesday}, 7, 30)
	if err != nil {
		t.Fatalf("add habit: %v", err)
	}

	if _, err := svc.CheckInHabit(ctx, h.ID, *now, 1); err != nil {
		t.Fatalf("checkin mon: %v", err)
	}
	*now = now.AddDate(0, 0, 2) // Wednesday; Tuesday is not due and must not break the run
	if _, err := svc.CheckInHabit(ctx, h.ID, *now, 1); err != nil {
		t.Fatalf("checkin wed: %v", err)
	}

	got, err := svc.HabitRepo().Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get habit: %v", err)
	}
	if got.Streak != 2 {
		t.Fatalf("habit streak=%d, want 2", got.Streak)
	}
}
