package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRepeat = errors.New("model: invalid repeat kind")

type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

func (r Repeat) IsValid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	default:
		return false
	}
}

// Task is the central entity. CompletionHistory holds the calendar days a
// recurring task was marked complete; it is only meaningful when Repeat is
// not RepeatNone and never contains two entries for the same day.
type Task struct {
	ID                string
	Text              string
	Completed         bool
	CreatedAt         time.Time
	DueDate           *time.Time
	Repeat            Repeat
	CompletionHistory []time.Time
}

// NewSimpleTask creates a task with no deadline and no recurrence.
func NewSimpleTask(text string, now time.Time) Task {
	return Task{
		ID:        uuid.NewString(),
		Text:      text,
		Repeat:    RepeatNone,
		CreatedAt: now,
	}
}

// NewScheduledTask creates a task with an optional due date and a repeat
// kind. A nil dueDate means "no deadline".
func NewScheduledTask(text string, dueDate *time.Time, repeat Repeat, now time.Time) Task {
	return Task{
		ID:        uuid.NewString(),
		Text:      text,
		Repeat:    repeat,
		DueDate:   dueDate,
		CreatedAt: now,
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if !t.Repeat.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRepeat, t.Repeat)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		return errors.New("model: task due_date must be a valid timestamp when set")
	}
	seen := make(map[string]bool, len(t.CompletionHistory))
	for _, day := range t.CompletionHistory {
		key := day.Format("2006-01-02")
		if seen[key] {
			return fmt.Errorf("model: duplicate completion day %s", key)
		}
		seen[key] = true
	}
	return nil
}

// IsRecurring reports whether the task spawns new instances on completion.
func (t Task) IsRecurring() bool {
	return t.Repeat != RepeatNone && t.Repeat.IsValid()
}
