package model

import (
	"time"

	"github.com/google/uuid"
)

// NextDueDate computes the due date one period after current. It returns
// nil when current is nil or repeat is RepeatNone; otherwise the result is
// strictly after the input. Monthly advancement follows the calendar's
// day-overflow normalization, so Jan 31 + 1 month lands in early March;
// callers must not assume the day-of-month is preserved.
func NextDueDate(current *time.Time, repeat Repeat) *time.Time {
	if current == nil {
		return nil
	}
	var next time.Time
	switch repeat {
	case RepeatDaily:
		next = current.AddDate(0, 0, 1)
	case RepeatWeekly:
		next = current.AddDate(0, 0, 7)
	case RepeatMonthly:
		next = current.AddDate(0, 1, 0)
	default:
		return nil
	}
	return &next
}

// SpawnNext materializes the next instance of a completed recurring task:
// same text and repeat kind, fresh id, due one period later, not completed,
// and an empty completion history. Streak continuity is reconstructed from
// each instance's own history, so history never carries across instances.
// Returns nil for non-recurring tasks. SpawnNext performs no I/O; the
// caller registers reminders for the spawned task's due date.
func SpawnNext(completed Task, now time.Time) *Task {
	if !completed.IsRecurring() {
		return nil
	}
	next := Task{
		ID:        uuid.NewString(),
		Text:      completed.Text,
		Repeat:    completed.Repeat,
		CreatedAt: now,
		DueDate:   NextDueDate(completed.DueDate, completed.Repeat),
	}
	return &next
}
