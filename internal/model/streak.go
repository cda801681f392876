package model

import (
	"math"
	"sort"
	"time"
)

// CalculateStreak derives the count of immediately-preceding consecutive
// calendar days, including today when applicable, on which the task was
// completed. Non-recurring tasks always score 0. A task whose history is
// still empty scores 1 when currently completed (bootstrap, right after
// creation) and 0 otherwise. In the general case the walk starts at today
// and stops at the first day with no recorded completion; a task completed
// today counts today exactly once. Pure function of the inputs and now.
func CalculateStreak(task Task, history []time.Time, now time.Time) int {
	if !task.IsRecurring() {
		return 0
	}
	if len(history) == 0 {
		if task.Completed {
			return 1
		}
		return 0
	}

	sorted := append([]time.Time(nil), history...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	today := DayOf(now)
	streak := 0
	for i, day := range sorted {
		expected := today.AddDate(0, 0, -i)
		if !SameCalendarDay(day, expected) {
			break
		}
		streak++
	}
	return streak
}

type StreakTier string

const (
	TierNone      StreakTier = "none"
	TierStart     StreakTier = "start"
	TierGood      StreakTier = "good"
	TierGreat     StreakTier = "great"
	TierAmazing   StreakTier = "amazing"
	TierLegendary StreakTier = "legendary"
)

type StatusInfo struct {
	Tier    StreakTier
	Message string
	Flames  int
}

// StreakStatus maps a streak length to its qualitative tier.
func StreakStatus(streak int) StatusInfo {
	switch {
	case streak <= 0:
		return StatusInfo{Tier: TierNone, Message: "Start one today!", Flames: 1}
	case streak < 3:
		return StatusInfo{Tier: TierStart, Message: "Good start!", Flames: 1}
	case streak < 7:
		return StatusInfo{Tier: TierGood, Message: "Going strong!", Flames: 2}
	case streak < 30:
		return StatusInfo{Tier: TierGreat, Message: "Excellent!", Flames: 3}
	case streak < 100:
		return StatusInfo{Tier: TierAmazing, Message: "Phenomenal!", Flames: 4}
	default:
		return StatusInfo{Tier: TierLegendary, Message: "Legendary!", Flames: 5}
	}
}

var milestones = []int{3, 7, 14, 30, 60, 100, 365}

type MilestoneInfo struct {
	DaysLeft int
	Value    int
	Max      bool
}

// NextMilestone returns the first milestone strictly greater than streak
// and the days remaining to reach it. Past the last milestone it returns
// the terminal sentinel with zero days left.
func NextMilestone(streak int) MilestoneInfo {
	for _, m := range milestones {
		if m > streak {
			return MilestoneInfo{DaysLeft: m - streak, Value: m}
		}
	}
	return MilestoneInfo{Max: true}
}

type StreakStats struct {
	TotalRecurring int
	ActiveStreaks  int
	LongestStreak  int
	AverageStreak  int
}

// ComputeStreakStats summarizes streaks across all recurring tasks. The
// average is the rounded mean over tasks with an active streak only; tasks
// at zero do not dilute it.
func ComputeStreakStats(tasks []Task, now time.Time) StreakStats {
	var stats StreakStats
	totalDays := 0
	for _, t := range tasks {
		if !t.IsRecurring() {
			continue
		}
		stats.TotalRecurring++
		streak := CalculateStreak(t, t.CompletionHistory, now)
		if streak > 0 {
			stats.ActiveStreaks++
			totalDays += streak
			if streak > stats.LongestStreak {
				stats.LongestStreak = streak
			}
		}
	}
	if stats.ActiveStreaks > 0 {
		stats.AverageStreak = int(math.Round(float64(totalDays) / float64(stats.ActiveStreaks)))
	}
	return stats
}
