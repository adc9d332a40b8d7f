package engine

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ember/internal/config"
	"ember/internal/storage"
	"ember/internal/timeutil"
	"ember/internal/widget"
)

// Service is the progress/reward engine over the store. It assumes one
// logical writer; every mutating operation ends with a full recompute of
// the affected day, so redundant calls are safe.
type Service struct {
	db         *sql.DB
	cfg        config.Config
	logs       *storage.DayLogRepo
	stats      *storage.StatsRepo
	bonuses    *storage.BonusRepo
	claims     *storage.ClaimRepo
	habits     *storage.HabitRepo
	priorities *storage.PriorityRepo
	tasks      *storage.TaskRepo
	goals      *storage.GoalRepo
	focus      *storage.FocusRepo

	// Now is the injected clock; tests point it at fixed instants to drive
	// day and month rollover deterministically.
	Now func() time.Time

	// Snapshots receives the widget view after every recompute. Failures
	// are logged and swallowed; they never roll back the recompute.
	Snapshots widget.Publisher

	Log *slog.Logger
}

func NewService(db *sql.DB, cfg config.Config) *Service {
	return &Service{
		db:         db,
		cfg:        cfg,
		logs:       storage.NewDayLogRepo(db),
		stats:      storage.NewStatsRepo(db),
		bonuses:    storage.NewBonusRepo(db),
		claims:     storage.NewClaimRepo(db),
		habits:     storage.NewHabitRepo(db),
		priorities: storage.NewPriorityRepo(db),
		tasks:      storage.NewTaskRepo(db),
		goals:      storage.NewGoalRepo(db),
		focus:      storage.NewFocusRepo(db),
		Now:        time.Now,
		Snapshots:  widget.Discard{},
		Log:        slog.Default(),
	}
}

func (s *Service) Config() config.Config               { return s.cfg }
func (s *Service) LogRepo() *storage.DayLogRepo        { return s.logs }
func (s *Service) StatsRepo() *storage.StatsRepo       { return s.stats }
func (s *Service) BonusRepo() *storage.BonusRepo       { return s.bonuses }
func (s *Service) ClaimRepo() *storage.ClaimRepo       { return s.claims }
func (s *Service) HabitRepo() *storage.HabitRepo       { return s.habits }
func (s *Service) PriorityRepo() *storage.PriorityRepo { return s.priorities }
func (s *Service) TaskRepo() *storage.TaskRepo         { return s.tasks }
func (s *Service) GoalRepo() *storage.GoalRepo         { return s.goals }
func (s *Service) FocusRepo() *storage.FocusRepo       { return s.focus }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// RecomputeDay rebuilds the derived log row for the day containing at from
// current source records and upserts it. Identical inputs produce an
// identical row, so callers may invoke it on every UI-visible change.
func (s *Service) RecomputeDay(ctx context.Context, at time.Time) (*storage.DailyLog, error) {
	day := string(timeutil.Day(at))
	dayStart := timeutil.DayStart(at)
	dayEnd := timeutil.DayEnd(at)
	nextDay := string(timeutil.Day(dayEnd))

	prev, err := s.logs.Get(ctx, day)
	if err != nil {
		return nil, err
	}
	slate, err := s.priorities.ListSlate(ctx, day, s.cfg.Slate.Size)
	if err != nil {
		return nil, err
	}
	habits, err := s.habits.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	checkIns, err := s.habits.ListCheckInsRange(ctx, day, nextDay)
	if err != nil {
		return nil, err
	}
	focusMinutes, err := s.focus.MinutesBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	log := BuildDayLog(day, prev, slate, len(habits), checkIns, focusMinutes, s.Now())
	if err := s.logs.Upsert(ctx, &log); err != nil {
		return nil, err
	}

	// The "today" mirrors on habits and user stats are derived state; when
	// today is the day being recomputed they are resynced from the day's
	// rows so a clock rollover cannot leave yesterday's values showing.
	if day == string(timeutil.Day(s.Now())) {
		if err := s.syncTodayMirrors(ctx, habits, checkIns, log.Protected); err != nil {
			return nil, err
		}
	}

	s.publishSnapshot(ctx, &log, slate)
	return &log, nil
}

// syncTodayMirrors points Habit.Progress and UserStats.StreakProtected at
// today's check-ins and log row. A habit without a check-in today reads as
// zero progress regardless of what yesterday recorded.
func (s *Service) syncTodayMirrors(ctx context.Context, habits []storage.Habit, checkIns []storage.HabitCheckIn, protected bool) error {
	byHabit := make(map[string]float64, len(checkIns))
	for i := range checkIns {
		byHabit[checkIns[i].HabitID] = checkIns[i].Progress
	}
	for i := range habits {
		h := &habits[i]
		if p := byHabit[h.ID]; h.Progress != p {
			if err := s.habits.UpdateProgress(ctx, h.ID, p); err != nil {
				return err
			}
		}
	}

	stats, err := s.stats.GetOrCreateMain(ctx)
	if err != nil {
		return err
	}
	if stats.StreakProtected != protected {
		stats.StreakProtected = protected
		stats.UpdatedAt = s.Now()
		if err := s.stats.Update(ctx, stats); err != nil {
			return err
		}
	}
	return nil
}

// UpsertTodayLog recomputes today's log. This is the entry point callers
// hit after every mutating action.
func (s *Service) UpsertTodayLog(ctx context.Context) (*storage.DailyLog, error) {
	return s.RecomputeDay(ctx, s.Now())
}

// publishSnapshot is fire-and-forget: failures are logged at warn and
// never propagate to the caller.
func (s *Service) publishSnapshot(ctx context.Context, log *storage.DailyLog, slate []storage.Priority) {
	streaks, err := s.Streaks(ctx)
	if err != nil {
		s.Log.Warn("widget snapshot skipped", "err", err)
		return
	}

	titles := make([]string, 0, len(slate))
	for i := range slate {
		titles = append(titles, slate[i].Title)
	}
	snap := widget.Snapshot{
		Date:               log.Day,
		StreakDays:         streaks.Current,
		TodayProgressRatio: log.Intensity,
		TopPriorityTitles:  titles,
	}
	if err := s.Snapshots.Publish(snap); err != nil {
		s.Log.Warn("widget snapshot publish failed", "err", err)
	}
}

// --- priorities ---

// AddPriority appends a slot to today's slate.
func (s *Service) AddPriority(ctx context.Context, title string, rank int) (*storage.Priority, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	p := storage.Priority{
		ID:        uuid.NewString(),
		Day:       string(timeutil.Day(now)),
		Title:     t,
		Rank:      rank,
		CreatedAt: now,
	}
	if err := s.priorities.Insert(ctx, p); err != nil {
		return nil, err
	}
	if _, err := s.UpsertTodayLog(ctx); err != nil {
		return nil, err
	}
	return &p, nil
}

// CompletePriority marks the slot done and recomputes its day.
func (s *Service) CompletePriority(ctx context.Context, id string) (*storage.DailyLog, error) {
	return s.setPriorityDone(ctx, id, true)
}

// UncompletePriority reverts a completion; the recompute makes the toggle
// safe.
func (s *Service) UncompletePriority(ctx context.Context, id string) (*storage.DailyLog, error) {
	return s.setPriorityDone(ctx, id, false)
}

func (s *Service) setPriorityDone(ctx context.Context, id string, done bool) (*storage.DailyLog, error) {
	p, err := s.priorities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("priority not found")
	}
	var at *time.Time
	if done {
		now := s.Now()
		at = &now
	}
	if err := s.priorities.SetCompleted(ctx, id, at); err != nil {
		return nil, err
	}
	day, err := timeutil.ParseDay(timeutil.DayKey(p.Day), s.Now().Location())
	if err != nil {
		return nil, err
	}
	return s.RecomputeDay(ctx, day)
}

// --- tasks / goals / milestones ---

func (s *Service) AddTask(ctx context.Context, title string, weight int, goalID *string) (*storage.Task, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if weight < 0 {
		weight = 0
	}
	task := storage.Task{
		ID:        uuid.NewString(),
		GoalID:    goalID,
		Title:     t,
		Weight:    weight,
		CreatedAt: s.Now(),
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Service) CompleteTask(ctx context.Context, id string) error {
	now := s.Now()
	if err := s.tasks.SetCompleted(ctx, id, &now); err != nil {
		return err
	}
	_, err := s.UpsertTodayLog(ctx)
	return err
}

func (s *Service) UncompleteTask(ctx context.Context, id string) error {
	if err := s.tasks.SetCompleted(ctx, id, nil); err != nil {
		return err
	}
	_, err := s.UpsertTodayLog(ctx)
	return err
}

// DeletePriority removes a slate slot and recomputes its day.
func (s *Service) DeletePriority(ctx context.Context, id string) error {
	p, err := s.priorities.Get(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return errors.New("priority not found")
	}
	if err := s.priorities.Delete(ctx, id); err != nil {
		return err
	}
	day, err := timeutil.ParseDay(timeutil.DayKey(p.Day), s.Now().Location())
	if err != nil {
		return err
	}
	_, err = s.RecomputeDay(ctx, day)
	return err
}

// DeleteTask removes a task; a completed task's XP goes with it.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return errors.New("task not found")
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	_, err = s.UpsertTodayLog(ctx)
	return err
}

func (s *Service) AddGoal(ctx context.Context, title string) (*storage.Goal, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	g := storage.Goal{ID: uuid.NewString(), Title: t, CreatedAt: s.Now()}
	if err := s.goals.Insert(ctx, g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Service) AddMilestone(ctx context.Context, goalID, title string) (*storage.Milestone, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	m := storage.Milestone{ID: uuid.NewString(), GoalID: goalID, Title: t, CreatedAt: s.Now()}
	if err := s.goals.InsertMilestone(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) CompleteMilestone(ctx context.Context, id string) error {
	m, err := s.goals.GetMilestone(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return errors.New("milestone not found")
	}
	now := s.Now()
	if err := s.goals.SetMilestoneCompleted(ctx, id, &now); err != nil {
		return err
	}
	_, err = s.UpsertTodayLog(ctx)
	return err
}

func (s *Service) UncompleteMilestone(ctx context.Context, id string) error {
	if err := s.goals.SetMilestoneCompleted(ctx, id, nil); err != nil {
		return err
	}
	_, err := s.UpsertTodayLog(ctx)
	return err
}

// --- habits ---

func (s *Service) AddHabit(ctx context.Context, name string, scheduleDays []int, reminderHour, reminderMinute int) (*storage.Habit, error) {
	n, err := normalizeTitle(name)
	if err != nil {
		return nil, err
	}
	days := make([]int, 0, len(scheduleDays))
	for _, d := range scheduleDays {
		if d >= timeutil.WeekdayMonday && d <= timeutil.WeekdaySunday {
			days = append(days, d)
		}
	}
	h := storage.Habit{
		ID:             uuid.NewString(),
		Name:           n,
		ScheduleDays:   days,
		ReminderHour:   clampInt(reminderHour, 0, 23),
		ReminderMinute: clampInt(reminderMinute, 0, 59),
		CreatedAt:      s.Now(),
	}
	if err := s.habits.Insert(ctx, h); err != nil {
		return nil, err
	}
	if _, err := s.UpsertTodayLog(ctx); err != nil {
		return nil, err
	}
	return &h, nil
}

// ArchiveHabit retires a habit from the active roster. Its historical
// check-ins keep counting in past days; today is recomputed so the roster
// shrink shows up immediately.
func (s *Service) ArchiveHabit(ctx context.Context, habitID string) error {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return err
	}
	if h == nil {
		return errors.New("habit not found")
	}
	if err := s.habits.Archive(ctx, habitID, s.Now()); err != nil {
		return err
	}
	_, err = s.UpsertTodayLog(ctx)
	return err
}

// CheckInHabit records a habit's progress for the day containing at.
// Progress is clamped to [0,1]; fractional values are "tiny wins". Checking
// in again the same day overwrites, so toggling 1 -> 0 reverts cleanly.
func (s *Service) CheckInHabit(ctx context.Context, habitID string, at time.Time, progress float64) (*storage.DailyLog, error) {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.New("habit not found")
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	now := s.Now()
	c := storage.HabitCheckIn{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		Day:       string(timeutil.Day(at)),
		Progress:  progress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.habits.UpsertCheckIn(ctx, c); err != nil {
		return nil, err
	}
	if err := s.recomputeHabitStreak(ctx, h, now); err != nil {
		return nil, err
	}
	return s.RecomputeDay(ctx, at)
}

// recomputeHabitStreak walks back from today over the habit's due days,
// counting consecutive ones with a positive check-in. Non-due days neither
// extend nor break the run.
func (s *Service) recomputeHabitStreak(ctx context.Context, h *storage.Habit, now time.Time) error {
	from := string(timeutil.Day(now.AddDate(0, 0, -370)))
	to := string(timeutil.Day(timeutil.DayEnd(now)))
	checkIns, err := s.habits.ListCheckInsRange(ctx, from, to)
	if err != nil {
		return err
	}
	done := map[string]bool{}
	for i := range checkIns {
		if checkIns[i].HabitID == h.ID && checkIns[i].Progress > 0 {
			done[checkIns[i].Day] = true
		}
	}

	streak := 0
	day := timeutil.DayStart(now)
	for i := 0; i < 370; i++ {
		if IsHabitDueOn(h, day) {
			if done[string(timeutil.Day(day))] {
				streak++
			} else if i > 0 {
				// A missed past due day ends the run; today being
				// unchecked just doesn't count yet.
				break
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	return s.habits.UpdateStreak(ctx, h.ID, streak)
}

// --- focus ---

// LogFocus records a finished focus session of the given length ending now.
func (s *Service) LogFocus(ctx context.Context, minutes int) (*storage.DailyLog, error) {
	if minutes < 0 {
		minutes = 0
	}
	now := s.Now()
	sess := storage.FocusSession{
		StartedAt: now.Add(-time.Duration(minutes) * time.Minute),
		EndedAt:   now,
		Minutes:   minutes,
	}
	if _, err := s.focus.Insert(ctx, sess); err != nil {
		return nil, err
	}

	stats, err := s.stats.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	stats.FocusMinutes += minutes
	stats.UpdatedAt = now
	if err := s.stats.Update(ctx, stats); err != nil {
		return nil, err
	}

	return s.UpsertTodayLog(ctx)
}

// --- notes ---

func (s *Service) SetDayNote(ctx context.Context, at time.Time, note string, photoRef *string) (*storage.DailyLog, error) {
	day := string(timeutil.Day(at))
	if err := s.logs.SetNote(ctx, day, note, photoRef); err != nil {
		return nil, err
	}
	return s.RecomputeDay(ctx, at)
}

// --- streaks & freeze tokens ---

// Streaks derives streak state from the full log history and mirrors the
// current streak onto UserStats for display consumers.
func (s *Service) Streaks(ctx context.Context) (StreakResult, error) {
	logs, err := s.logs.ListAll(ctx)
	if err != nil {
		return StreakResult{}, err
	}
	now := s.Now()
	res := ComputeStreaks(logs, timeutil.Day(now), s.cfg.Streak.ActiveThreshold, now.Location())

	stats, err := s.stats.GetOrCreateMain(ctx)
	if err != nil {
		return StreakResult{}, err
	}
	if stats.StreakDays != res.Current {
		stats.StreakDays = res.Current
		stats.UpdatedAt = now
		if err := s.stats.Update(ctx, stats); err != nil {
			return StreakResult{}, err
		}
	}
	return res, nil
}

// FreezeStatus returns the stats row after applying the lazy monthly token
// refresh.
func (s *Service) FreezeStatus(ctx context.Context) (*storage.UserStats, error) {
	stats, err := s.stats.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	dirty := false
	if stats.FreezeAllowance != s.cfg.Streak.FreezeAllowance {
		stats.FreezeAllowance = s.cfg.Streak.FreezeAllowance
		dirty = true
	}
	if RefreshFreezeTokensIfDue(stats, s.Now()) {
		dirty = true
	}
	if dirty {
		stats.UpdatedAt = s.Now()
		if err := s.stats.Update(ctx, stats); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// SetReminderPrefs updates the global reminder toggle and default time.
func (s *Service) SetReminderPrefs(ctx context.Context, enabled bool, hour, minute int) (*storage.UserStats, error) {
	stats, err := s.stats.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	stats.RemindersEnabled = enabled
	stats.ReminderHour = clampInt(hour, 0, 23)
	stats.ReminderMinute = clampInt(minute, 0, 59)
	stats.UpdatedAt = s.Now()
	if err := s.stats.Update(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ActivateStreakProtection spends a freeze token to mark today protected.
// No-op when today is already protected; InsufficientTokensError when the
// budget is empty.
func (s *Service) ActivateStreakProtection(ctx context.Context) (*storage.UserStats, error) {
	stats, err := s.FreezeStatus(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	day := string(timeutil.Day(now))

	log, err := s.logs.Get(ctx, day)
	if err != nil {
		return nil, err
	}
	if log != nil && log.Protected {
		return stats, nil
	}
	if stats.FreezeTokens <= 0 {
		return nil, InsufficientTokensError{Allowance: stats.FreezeAllowance}
	}

	if err := s.logs.SetProtected(ctx, day, true); err != nil {
		return nil, err
	}
	stats.FreezeTokens--
	stats.StreakProtected = true
	stats.UpdatedAt = now
	if err := s.stats.Update(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ToggleStreakProtection flips today's protection. Turning it off does not
// refund the token; only the monthly reset restores the budget.
func (s *Service) ToggleStreakProtection(ctx context.Context) (*storage.UserStats, error) {
	now := s.Now()
	day := string(timeutil.Day(now))
	log, err := s.logs.Get(ctx, day)
	if err != nil {
		return nil, err
	}
	if log == nil || !log.Protected {
		return s.ActivateStreakProtection(ctx)
	}

	if err := s.logs.SetProtected(ctx, day, false); err != nil {
		return nil, err
	}
	stats, err := s.stats.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	stats.StreakProtected = false
	stats.UpdatedAt = now
	if err := s.stats.Update(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// --- weekly quests ---

// Quest weeks are canonical Monday-start regardless of the display
// first-weekday setting, so claims stay unique across config changes.
func (s *Service) questWeek(now time.Time) (start, end time.Time) {
	return timeutil.WeekStart(now, timeutil.WeekdayMonday), timeutil.WeekEnd(now, timeutil.WeekdayMonday)
}

func (s *Service) weekMetrics(ctx context.Context, start, end time.Time) (WeekMetrics, error) {
	var m WeekMetrics
	startKey := string(timeutil.Day(start))
	endKey := string(timeutil.Day(end))

	logs, err := s.logs.ListRange(ctx, startKey, endKey)
	if err != nil {
		return m, err
	}
	for i := range logs {
		if dayActive(&logs[i], s.cfg.Streak.ActiveThreshold) {
			m.ActiveDays++
		}
	}

	if m.CompletedPriorities, err = s.priorities.CountCompletedRange(ctx, startKey, endKey); err != nil {
		return m, err
	}
	if m.FocusMinutes, err = s.focus.MinutesBetween(ctx, start, end); err != nil {
		return m, err
	}
	tasks, err := s.tasks.ListCompletedBetween(ctx, start, end)
	if err != nil {
		return m, err
	}
	m.CompletedTasks = len(tasks)
	if m.HabitCheckIns, err = s.habits.CountCheckInsRange(ctx, startKey, endKey); err != nil {
		return m, err
	}
	return m, nil
}

// WeeklyQuests evaluates the catalog against the current week.
func (s *Service) WeeklyQuests(ctx context.Context) ([]Quest, error) {
	start, end := s.questWeek(s.Now())
	metrics, err := s.weekMetrics(ctx, start, end)
	if err != nil {
		return nil, err
	}

	weekStart := string(timeutil.Day(start))
	claims, err := s.claims.ListByWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	claimed := make(map[string]bool, len(claims))
	for _, c := range claims {
		claimed[c.QuestID] = true
	}
	return EvaluateQuests(weekStart, metrics, claimed), nil
}

// ClaimQuest grants a quest's reward exactly once per week. The claim row
// and the XP bonus are written in one transaction; a crash between them
// cannot grant XP without a surviving claim record.
func (s *Service) ClaimQuest(ctx context.Context, questID string) (*storage.QuestClaim, *storage.XPBonus, error) {
	quests, err := s.WeeklyQuests(ctx)
	if err != nil {
		return nil, nil, err
	}
	var q *Quest
	for i := range quests {
		if quests[i].ID == questID {
			q = &quests[i]
			break
		}
	}
	if q == nil {
		return nil, nil, errors.New("unknown quest: " + questID)
	}
	if q.IsClaimed {
		return nil, nil, AlreadyClaimedError{QuestID: q.ID, WeekStart: q.WeekStart}
	}
	if !q.IsComplete {
		return nil, nil, NotCompleteError{QuestID: q.ID, Progress: q.Progress, Target: q.Target}
	}

	now := s.Now()
	week := q.WeekStart
	claim := storage.QuestClaim{
		QuestID:   q.ID,
		WeekStart: week,
		RewardXP:  q.RewardXP,
		ClaimedAt: now,
	}
	bonus := storage.XPBonus{
		Source:    "quest",
		Detail:    q.Title,
		Amount:    q.RewardXP,
		WeekStart: &week,
		CreatedAt: now,
	}

	err = storage.WithTx(ctx, s.db, "quest claim", func(tx *sql.Tx) error {
		id, err := storage.InsertClaimTx(ctx, tx, claim)
		if err != nil {
			return err
		}
		claim.ID = id
		bid, err := storage.InsertBonusTx(ctx, tx, bonus)
		if err != nil {
			return err
		}
		bonus.ID = bid
		return nil
	})
	if err != nil {
		// A concurrent or retried claim races into the unique index; report
		// it as the recoverable conflict it is.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, nil, AlreadyClaimedError{QuestID: q.ID, WeekStart: q.WeekStart}
		}
		return nil, nil, err
	}
	return &claim, &bonus, nil
}

// --- XP & leveling ---

// TotalXP sums XP across the whole history: day logs, completed tasks and
// milestones, and bonuses.
func (s *Service) TotalXP(ctx context.Context) (int, error) {
	logs, err := s.logs.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	milestones, err := s.goals.ListAllMilestones(ctx)
	if err != nil {
		return 0, err
	}
	bonuses, err := s.bonuses.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return TotalXP(logs, tasks, milestones, bonuses), nil
}

// LevelStatus returns the level derived from total XP.
func (s *Service) LevelStatus(ctx context.Context) (LevelProgress, error) {
	total, err := s.TotalXP(ctx)
	if err != nil {
		return LevelProgress{}, err
	}
	return Progress(total), nil
}

// History returns the trailing display window of day logs, oldest first.
func (s *Service) History(ctx context.Context) ([]storage.DailyLog, error) {
	now := s.Now()
	from := string(timeutil.Day(now.AddDate(0, 0, -7*s.cfg.Streak.DisplayWeeks)))
	to := string(timeutil.Day(timeutil.DayEnd(now)))
	return s.logs.ListRange(ctx, from, to)
}
