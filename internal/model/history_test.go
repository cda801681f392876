package model

import (
	"testing"
	"time"
)

func TestRecordCompletionAppendsOnce(t *testing.T) {
	today := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	history := RecordCompletion(nil, true, today)
	if len(history) != 1 || !SameCalendarDay(history[0], today) {
		t.Fatalf("unexpected history after first completion: %v", history)
	}

	again := RecordCompletion(history, true, today)
	if len(again) != 1 {
		t.Fatalf("completing twice in one day must be idempotent, got %v", again)
	}
}

func TestRecordCompletionRemovesOnlyToday(t *testing.T) {
	today := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	history := []time.Time{DayOf(yesterday), DayOf(today)}

	undone := RecordCompletion(history, false, today)
	if len(undone) != 1 || !SameCalendarDay(undone[0], yesterday) {
		t.Fatalf("undo must remove today's entry only, got %v", undone)
	}
}

func TestRecordCompletionUndoRedoRoundTrip(t *testing.T) {
	today := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	history := RecordCompletion(nil, true, today)
	undone := RecordCompletion(history, false, today)
	redone := RecordCompletion(undone, true, today)
	if len(redone) != 1 || !SameCalendarDay(redone[0], today) {
		t.Fatalf("undo/redo should restore today's entry, got %v", redone)
	}
}

func TestRecordCompletionDoesNotMutateInput(t *testing.T) {
	today := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	history := []time.Time{DayOf(today.AddDate(0, 0, -1))}
	_ = RecordCompletion(history, true, today)
	if len(history) != 1 {
		t.Fatalf("input history mutated: %v", history)
	}
}
