package engine

// QuestMetric names the week-scoped measurement a quest tracks.
type QuestMetric string

const (
	MetricActiveDays    QuestMetric = "active_days"
	MetricPriorities    QuestMetric = "priorities"
	MetricFocusMinutes  QuestMetric = "focus_minutes"
	MetricTasks         QuestMetric = "tasks"
	MetricHabitCheckIns QuestMetric = "habit_checkins"
)

// QuestDef is a static catalog entry. Quests reset implicitly: a new week
// start yields fresh unclaimed instances of the same definitions.
type QuestDef struct {
	ID       string
	Title    string
	Metric   QuestMetric
	Target   int
	RewardXP int
}

// Catalog is the fixed weekly quest set.
var Catalog = []QuestDef{
	{ID: "show_up", Title: "Show Up", Metric: MetricActiveDays, Target: 5, RewardXP: 150},
	{ID: "top_three", Title: "Top Three", Metric: MetricPriorities, Target: 10, RewardXP: 200},
	{ID: "deep_work", Title: "Deep Work", Metric: MetricFocusMinutes, Target: 300, RewardXP: 250},
	{ID: "closer", Title: "Closer", Metric: MetricTasks, Target: 5, RewardXP: 200},
	{ID: "ritualist", Title: "Ritualist", Metric: MetricHabitCheckIns, Target: 12, RewardXP: 150},
}

// WeekMetrics carries the measured values for one week window
// [weekStart, weekStart+7d).
type WeekMetrics struct {
	ActiveDays          int
	CompletedPriorities int
	FocusMinutes        int
	CompletedTasks      int
	HabitCheckIns       int
}

func (m WeekMetrics) value(metric QuestMetric) int {
	switch metric {
	case MetricActiveDays:
		return m.ActiveDays
	case MetricPriorities:
		return m.CompletedPriorities
	case MetricFocusMinutes:
		return m.FocusMinutes
	case MetricTasks:
		return m.CompletedTasks
	case MetricHabitCheckIns:
		return m.HabitCheckIns
	default:
		return 0
	}
}

// Quest is a catalog entry evaluated against one week.
type Quest struct {
	QuestDef
	WeekStart  string
	Progress   int
	IsComplete bool
	IsClaimed  bool
}

// EvaluateQuests computes the week's quest states from measured metrics and
// the set of quest IDs already claimed for that week. Pure; storage access
// happens in the service.
func EvaluateQuests(weekStart string, metrics WeekMetrics, claimed map[string]bool) []Quest {
	out := make([]Quest, 0, len(Catalog))
	for _, def := range Catalog {
		progress := metrics.value(def.Metric)
		if progress < 0 {
			progress = 0
		}
		out = append(out, Quest{
			QuestDef:   def,
			WeekStart:  weekStart,
			Progress:   progress,
			IsComplete: progress >= def.Target,
			IsClaimed:  claimed[def.ID],
		})
	}
	return out
}
