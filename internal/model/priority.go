package model

import "time"

type Priority string

const (
	PriorityOverdue  Priority = "overdue"
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityNormal   Priority = "normal"
)

// DuePriority classifies a task by how close its due date is: overdue,
// under an hour, under a day, under three days, otherwise normal. Tasks
// without a deadline are always normal.
func DuePriority(task Task, now time.Time) Priority {
	if task.DueDate == nil {
		return PriorityNormal
	}
	remaining := task.DueDate.Sub(now)
	switch {
	case remaining < 0:
		return PriorityOverdue
	case remaining < time.Hour:
		return PriorityCritical
	case remaining < 24*time.Hour:
		return PriorityHigh
	case remaining < 72*time.Hour:
		return PriorityMedium
	default:
		return PriorityNormal
	}
}

// OverdueTasks returns the incomplete tasks whose due date has passed.
func OverdueTasks(tasks []Task, now time.Time) []Task {
	out := make([]Task, 0)
	for _, t := range tasks {
		if t.DueDate == nil || t.Completed {
			continue
		}
		if t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	return out
}

// UrgentTasks returns the incomplete tasks due within the next 24 hours.
func UrgentTasks(tasks []Task, now time.Time) []Task {
	cutoff := now.Add(24 * time.Hour)
	out := make([]Task, 0)
	for _, t := range tasks {
		if t.DueDate == nil || t.Completed {
			continue
		}
		if t.DueDate.After(now) && !t.DueDate.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}
