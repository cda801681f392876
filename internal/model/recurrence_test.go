package model

import (
	"testing"
	"time"
)

func TestNextDueDateDaily(t *testing.T) {
	due := time.Date(2026, 8, 31, 18, 30, 0, 0, time.UTC)
	next := NextDueDate(&due, RepeatDaily)
	if next == nil {
		t.Fatal("expected next due date, got nil")
	}
	if !next.Equal(time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected daily next due: %s", next.Format(time.RFC3339))
	}
}

func TestNextDueDateWeekly(t *testing.T) {
	due := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	next := NextDueDate(&due, RepeatWeekly)
	if next == nil {
		t.Fatal("expected next due date, got nil")
	}
	if !next.Equal(time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected weekly next due: %s", next.Format(time.RFC3339))
	}
}

func TestNextDueDateMonthlyOverflowNormalizes(t *testing.T) {
	// Jan 31 + 1 month rolls over per the calendar, it does not clamp.
	due := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	next := NextDueDate(&due, RepeatMonthly)
	if next == nil {
		t.Fatal("expected next due date, got nil")
	}
	if !next.Equal(time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected monthly next due: %s", next.Format(time.RFC3339))
	}
}

func TestNextDueDateAlwaysStrictlyLater(t *testing.T) {
	due := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	for _, repeat := range []Repeat{RepeatDaily, RepeatWeekly, RepeatMonthly} {
		next := NextDueDate(&due, repeat)
		if next == nil {
			t.Fatalf("repeat %s: expected next due date, got nil", repeat)
		}
		if !next.After(due) {
			t.Fatalf("repeat %s: next due %s is not after %s", repeat, next, due)
		}
	}
}

func TestNextDueDateAbsentInputs(t *testing.T) {
	due := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	if got := NextDueDate(nil, RepeatDaily); got != nil {
		t.Fatalf("expected nil for nil due date, got %v", got)
	}
	if got := NextDueDate(&due, RepeatNone); got != nil {
		t.Fatalf("expected nil for repeat none, got %v", got)
	}
}

func TestSpawnNextCopiesTextAndResetsState(t *testing.T) {
	due := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 31, 16, 0, 0, 0, time.UTC)
	src := NewScheduledTask("Water the plants", &due, RepeatDaily, now.Add(-48*time.Hour))
	src.Completed = true
	src.CompletionHistory = []time.Time{DayOf(now)}

	next := SpawnNext(src, now)
	if next == nil {
		t.Fatal("expected spawned task, got nil")
	}
	if next.ID == src.ID {
		t.Fatal("spawned task must get a fresh id")
	}
	if next.Text != src.Text || next.Repeat != src.Repeat {
		t.Fatalf("spawned task must keep text and repeat: %#v", next)
	}
	if next.Completed {
		t.Fatal("spawned task must start incomplete")
	}
	if len(next.CompletionHistory) != 0 {
		t.Fatalf("spawned task must start with empty history, got %d entries", len(next.CompletionHistory))
	}
	if next.DueDate == nil || !next.DueDate.After(due) {
		t.Fatalf("spawned due date must be strictly later: %v", next.DueDate)
	}
	if !next.CreatedAt.Equal(now) {
		t.Fatalf("spawned created_at should be now, got %s", next.CreatedAt)
	}
}

func TestSpawnNextNonRecurring(t *testing.T) {
	now := time.Date(2026, 8, 31, 16, 0, 0, 0, time.UTC)
	src := NewSimpleTask("One-off errand", now)
	src.Completed = true
	if got := SpawnNext(src, now); got != nil {
		t.Fatalf("expected nil for repeat none, got %#v", got)
	}
}
