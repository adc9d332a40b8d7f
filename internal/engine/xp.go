package engine

import "ember/internal/storage"

// XP constants. Values are part of the product's balance and are fixed;
// tuning lives in config only for calendar/ledger behavior.
const (
	// PriorityXP is awarded per completed slate priority.
	PriorityXP = 30

	// HabitXP is awarded per habit checked in on a day.
	HabitXP = 25

	// FocusXPPerMinute converts focus minutes to XP, capped at FocusCapMinutes.
	FocusXPPerMinute = 1
	FocusCapMinutes  = 120

	// TaskBaseXP plus TaskWeightXP per weight point, on the completion day.
	TaskBaseXP   = 30
	TaskWeightXP = 10

	// MilestoneXP is flat per completed milestone.
	MilestoneXP = 120

	// LevelStep is the XP span of every level.
	LevelStep = 500
)

// XPForDay computes a day's XP from its completion counts. Negative inputs
// are clamped to zero; focus minutes cap at FocusCapMinutes.
func XPForDay(completedPriorities, completedHabits, focusMinutes int) int {
	if completedPriorities < 0 {
		completedPriorities = 0
	}
	if completedHabits < 0 {
		completedHabits = 0
	}
	if focusMinutes < 0 {
		focusMinutes = 0
	}
	if focusMinutes > FocusCapMinutes {
		focusMinutes = FocusCapMinutes
	}
	return focusMinutes*FocusXPPerMinute + completedPriorities*PriorityXP + completedHabits*HabitXP
}

// XPForTask values a completed task by its weight.
func XPForTask(weight int) int {
	if weight < 0 {
		weight = 0
	}
	return TaskBaseXP + weight*TaskWeightXP
}

// XPForMilestone is flat regardless of the milestone.
func XPForMilestone() int {
	return MilestoneXP
}

// TotalXP sums day XP over all logs, task and milestone XP for completed
// items, and every bonus amount. It never decreases under purely additive
// event histories.
func TotalXP(logs []storage.DailyLog, tasks []storage.Task, milestones []storage.Milestone, bonuses []storage.XPBonus) int {
	total := 0
	for i := range logs {
		total += XPForDay(logs[i].CompletedPriorities, logs[i].CompletedHabits, logs[i].FocusMinutes)
	}
	for i := range tasks {
		if tasks[i].IsCompleted {
			total += XPForTask(tasks[i].Weight)
		}
	}
	for i := range milestones {
		if milestones[i].IsCompleted {
			total += XPForMilestone()
		}
	}
	for i := range bonuses {
		total += bonuses[i].Amount
	}
	return total
}

// LevelForXP maps cumulative XP to a level, starting at 1.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/LevelStep + 1
}

// LevelProgress describes position within the current level.
type LevelProgress struct {
	Level   int
	Current int
	Needed  int
	Ratio   float64
}

// Progress returns the level and progress toward the next one.
func Progress(totalXP int) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := LevelForXP(totalXP)
	into := totalXP - (level-1)*LevelStep
	return LevelProgress{
		Level:   level,
		Current: into,
		Needed:  LevelStep,
		Ratio:   float64(into) / float64(LevelStep),
	}
}
