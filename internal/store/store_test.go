package store

import (
	"context"
	"testing"
	"time"

	"tsuzuku/internal/model"
	"tsuzuku/internal/storage"
)

type fakeRepo struct {
	tasks       map[string]storage.Task
	completions map[string][]time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tasks:       make(map[string]storage.Task),
		completions: make(map[string][]time.Time),
	}
}

func (f *fakeRepo) CreateTask(_ context.Context, in storage.Task) error {
	f.tasks[in.ID] = in
	return nil
}

func (f *fakeRepo) GetTask(_ context.Context, id string) (storage.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return storage.Task{}, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeRepo) UpdateTask(_ context.Context, in storage.Task) error {
	if _, ok := f.tasks[in.ID]; !ok {
		return storage.ErrNotFound
	}
	f.tasks[in.ID] = in
	return nil
}

func (f *fakeRepo) DeleteTask(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.tasks, id)
	delete(f.completions, id)
	return nil
}

func (f *fakeRepo) ListTasks(_ context.Context, _ storage.TaskListFilter) ([]storage.Task, error) {
	out := make([]storage.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepo) ListCompletions(_ context.Context, taskID string) ([]time.Time, error) {
	return append([]time.Time(nil), f.completions[taskID]...), nil
}

func (f *fakeRepo) ReplaceCompletions(_ context.Context, taskID string, days []time.Time) error {
	f.completions[taskID] = append([]time.Time(nil), days...)
	return nil
}

type spyScheduler struct {
	scheduled []string
	cancelled []string
	cleared   int
}

func (s *spyScheduler) Schedule(task model.Task) error {
	s.scheduled = append(s.scheduled, task.ID)
	return nil
}

func (s *spyScheduler) Cancel(taskID string) {
	s.cancelled = append(s.cancelled, taskID)
}

func (s *spyScheduler) CancelAll() {
	s.cleared++
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 31, 16, 0, 0, 0, time.UTC)
}

func newTestStore() (*Store, *fakeRepo, *spyScheduler) {
	repo := newFakeRepo()
	spy := &spyScheduler{}
	return NewWithClock(repo, spy, fixedNow), repo, spy
}

func TestToggleCompletesDailyTaskEndToEnd(t *testing.T) {
	// Create a daily task due in two hours, complete it, and expect: a
	// sibling due one day later with empty history, and the original's
	// history holding today with a bootstrap streak of 1.
	s, repo, spy := newTestStore()
	ctx := context.Background()

	due := fixedNow().Add(2 * time.Hour)
	task, err := s.AddScheduled(ctx, "Water the plants", &due, model.RepeatDaily)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	spawned, err := s.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if spawned == nil {
		t.Fatal("expected spawned sibling task")
	}
	if spawned.DueDate == nil || !spawned.DueDate.Equal(due.AddDate(0, 0, 1)) {
		t.Fatalf("spawned due = %v, want original + 1 day", spawned.DueDate)
	}
	if len(spawned.CompletionHistory) != 0 {
		t.Fatalf("spawned history must be empty, got %v", spawned.CompletionHistory)
	}

	original, ok := s.Get(task.ID)
	if !ok {
		t.Fatal("original task missing")
	}
	if !original.Completed {
		t.Fatal("original task should be completed")
	}
	if len(original.CompletionHistory) != 1 || !model.SameCalendarDay(original.CompletionHistory[0], fixedNow()) {
		t.Fatalf("original history should hold today, got %v", original.CompletionHistory)
	}
	if got := s.StreakFor(task.ID); got != 1 {
		t.Fatalf("streak = %d, want 1", got)
	}

	if len(repo.tasks) != 2 {
		t.Fatalf("expected 2 persisted tasks, got %d", len(repo.tasks))
	}
	// Reminders: one registration at add, a re-registration on toggle,
	// and one for the spawned sibling.
	if len(spy.scheduled) != 3 {
		t.Fatalf("unexpected reminder registrations: %v", spy.scheduled)
	}
	if spy.scheduled[2] != spawned.ID {
		t.Fatalf("spawned task should get reminders last, got %v", spy.scheduled)
	}
}

func TestToggleNonRecurringSpawnsNothing(t *testing.T) {
	s, repo, _ := newTestStore()
	ctx := context.Background()

	task, err := s.AddSimple(ctx, "One-off errand")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	spawned, err := s.Toggle(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if spawned != nil {
		t.Fatalf("repeat none must not spawn, got %#v", spawned)
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("expected 1 persisted task, got %d", len(repo.tasks))
	}
	got, _ := s.Get(task.ID)
	if len(got.CompletionHistory) != 0 {
		t.Fatalf("non-recurring task must not track history, got %v", got.CompletionHistory)
	}
}

func TestToggleUndoRemovesTodayOnly(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	due := fixedNow().Add(2 * time.Hour)
	task, err := s.AddScheduled(ctx, "Morning run", &due, model.RepeatDaily)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := s.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("undo: %v", err)
	}

	got, _ := s.Get(task.ID)
	if got.Completed {
		t.Fatal("task should be incomplete after undo")
	}
	if len(got.CompletionHistory) != 0 {
		t.Fatalf("today's entry should be removed, got %v", got.CompletionHistory)
	}
}

func TestDeleteCancelsReminders(t *testing.T) {
	s, _, spy := newTestStore()
	ctx := context.Background()

	due := fixedNow().Add(2 * time.Hour)
	task, err := s.AddScheduled(ctx, "Dentist", &due, model.RepeatNone)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(spy.cancelled) != 1 || spy.cancelled[0] != task.ID {
		t.Fatalf("expected reminder cancellation for %s, got %v", task.ID, spy.cancelled)
	}
	if _, ok := s.Get(task.ID); ok {
		t.Fatal("task should be gone")
	}
}

func TestEditChangesTextOnly(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	due := fixedNow().Add(2 * time.Hour)
	task, err := s.AddScheduled(ctx, "Draft mail", &due, model.RepeatWeekly)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Edit(ctx, task.ID, "Draft quarterly mail"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	got, _ := s.Get(task.ID)
	if got.Text != "Draft quarterly mail" {
		t.Fatalf("text = %q", got.Text)
	}
	if got.Repeat != model.RepeatWeekly || got.DueDate == nil {
		t.Fatalf("edit must not touch schedule: %#v", got)
	}

	if err := s.Edit(ctx, "missing", "x"); err != ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestLoadRestoresHistoryAndReschedules(t *testing.T) {
	repo := newFakeRepo()
	spy := &spyScheduler{}
	seedStore := NewWithClock(repo, nil, fixedNow)
	ctx := context.Background()

	due := fixedNow().Add(2 * time.Hour)
	task, err := seedStore.AddScheduled(ctx, "Journal", &due, model.RepeatDaily)
	if err != nil {
		t.Fatalf("seed add: %v", err)
	}
	if _, err := seedStore.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("seed toggle: %v", err)
	}

	s := NewWithClock(repo, spy, fixedNow)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := s.Get(task.ID)
	if !ok {
		t.Fatal("task missing after load")
	}
	if len(got.CompletionHistory) != 1 {
		t.Fatalf("history not restored: %v", got.CompletionHistory)
	}
	if spy.cleared != 1 {
		t.Fatalf("load should clear stale timers once, got %d", spy.cleared)
	}
	if len(spy.scheduled) != len(s.Tasks()) {
		t.Fatalf("load should re-register reminders for each task: %v", spy.scheduled)
	}
}

func TestVisibleProjection(t *testing.T) {
	repo := newFakeRepo()
	s := NewWithClock(repo, nil, fixedNow)
	ctx := context.Background()

	early := fixedNow().Add(-2 * time.Hour)
	late := fixedNow().Add(-1 * time.Hour)
	s.now = func() time.Time { return early }
	a, _ := s.AddSimple(ctx, "Buy milk")
	s.now = func() time.Time { return late }
	b, _ := s.AddSimple(ctx, "Call bank")
	s.now = fixedNow
	if _, err := s.Toggle(ctx, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	active := s.Visible("", FilterActive, SortNewestFirst)
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("unexpected active projection: %#v", active)
	}

	completed := s.Visible("", FilterCompleted, SortNewestFirst)
	if len(completed) != 1 || completed[0].ID != a.ID {
		t.Fatalf("unexpected completed projection: %#v", completed)
	}

	found := s.Visible("MILK", FilterAll, SortNewestFirst)
	if len(found) != 1 || found[0].ID != a.ID {
		t.Fatalf("search should be case-insensitive: %#v", found)
	}

	oldest := s.Visible("", FilterAll, SortOldestFirst)
	if len(oldest) != 2 || oldest[0].ID != a.ID {
		t.Fatalf("unexpected oldest-first order: %#v", oldest)
	}
	newest := s.Visible("", FilterAll, SortNewestFirst)
	if newest[0].ID != b.ID {
		t.Fatalf("unexpected newest-first order: %#v", newest)
	}
}
