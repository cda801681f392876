package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tsuzuku/internal/model"
	"tsuzuku/internal/storage"
)

var ErrTaskNotFound = errors.New("store: task not found")

// ReminderScheduler is the notification collaborator. The store is its
// only caller: it re-registers a task's reminders whenever the task is
// created or its due date or completed state changes. Scheduling failures
// are swallowed by callers of the store; a missing reminder never blocks
// a task mutation.
type ReminderScheduler interface {
	Schedule(task model.Task) error
	Cancel(taskID string)
	CancelAll()
}

// Store owns the task list. All mutations run on the caller's goroutine;
// the store has no internal locking because the TUI update loop serializes
// access.
type Store struct {
	tasks     []model.Task
	repo      storage.Repository
	reminders ReminderScheduler
	now       func() time.Time
}

func New(repo storage.Repository, reminders ReminderScheduler) *Store {
	return &Store{repo: repo, reminders: reminders, now: time.Now}
}

// NewWithClock is for tests that need a fixed notion of now.
func NewWithClock(repo storage.Repository, reminders ReminderScheduler, now func() time.Time) *Store {
	return &Store{repo: repo, reminders: reminders, now: now}
}

// Load reads the full task list and each recurring task's completion
// ledger, then registers reminders for every pending deadline.
func (s *Store) Load(ctx context.Context) error {
	rows, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return fmt.Errorf("store: load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		task := fromStorage(row)
		if task.IsRecurring() {
			history, err := s.repo.ListCompletions(ctx, task.ID)
			if err != nil {
				return fmt.Errorf("store: load completions for %s: %w", task.ID, err)
			}
			task.CompletionHistory = history
		}
		tasks = append(tasks, task)
	}
	s.tasks = tasks

	if s.reminders != nil {
		s.reminders.CancelAll()
		for _, t := range s.tasks {
			_ = s.reminders.Schedule(t)
		}
	}
	return nil
}

// AddSimple creates a task with no deadline and no recurrence.
func (s *Store) AddSimple(ctx context.Context, text string) (model.Task, error) {
	return s.add(ctx, model.NewSimpleTask(text, s.now()))
}

// AddScheduled creates a task with an optional due date and repeat kind.
func (s *Store) AddScheduled(ctx context.Context, text string, dueDate *time.Time, repeat model.Repeat) (model.Task, error) {
	return s.add(ctx, model.NewScheduledTask(text, dueDate, repeat, s.now()))
}

func (s *Store) add(ctx context.Context, task model.Task) (model.Task, error) {
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, toStorage(task)); err != nil {
		return model.Task{}, fmt.Errorf("store: create task: %w", err)
	}
	s.tasks = append(s.tasks, task)
	if s.reminders != nil {
		_ = s.reminders.Schedule(task)
	}
	return task, nil
}

// Toggle flips a task's completed state, records the change in its
// completion ledger, and, when a recurring task is completed, spawns its
// next instance. The spawned task (nil otherwise) is returned so the UI
// can surface it. Reminders for the toggled task are re-registered and
// the spawned task gets its own.
func (s *Store) Toggle(ctx context.Context, id string) (*model.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}
	now := s.now()
	task := s.tasks[idx]
	task.Completed = !task.Completed

	if task.IsRecurring() {
		task.CompletionHistory = model.RecordCompletion(task.CompletionHistory, task.Completed, now)
		if err := s.repo.ReplaceCompletions(ctx, task.ID, task.CompletionHistory); err != nil {
			return nil, fmt.Errorf("store: record completion: %w", err)
		}
	}
	if err := s.repo.UpdateTask(ctx, toStorage(task)); err != nil {
		return nil, fmt.Errorf("store: update task: %w", err)
	}
	s.tasks[idx] = task
	if s.reminders != nil {
		_ = s.reminders.Schedule(task)
	}

	if !task.Completed {
		return nil, nil
	}
	spawned := model.SpawnNext(task, now)
	if spawned == nil {
		return nil, nil
	}
	if err := s.repo.CreateTask(ctx, toStorage(*spawned)); err != nil {
		return nil, fmt.Errorf("store: create spawned task: %w", err)
	}
	s.tasks = append(s.tasks, *spawned)
	if s.reminders != nil {
		_ = s.reminders.Schedule(*spawned)
	}
	return spawned, nil
}

// Edit changes a task's text only.
func (s *Store) Edit(ctx context.Context, id, text string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	task := s.tasks[idx]
	task.Text = text
	if err := task.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateTask(ctx, toStorage(task)); err != nil {
		return fmt.Errorf("store: edit task: %w", err)
	}
	s.tasks[idx] = task
	return nil
}

// Delete removes the task and cancels its reminders.
func (s *Store) Delete(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrTaskNotFound
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("store: delete task: %w", err)
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if s.reminders != nil {
		s.reminders.Cancel(id)
	}
	return nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// Now reads the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Tasks returns a copy of the full task list.
func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

// StreakFor derives the current streak of the task with the given id.
func (s *Store) StreakFor(id string) int {
	task, ok := s.Get(id)
	if !ok {
		return 0
	}
	return model.CalculateStreak(task, task.CompletionHistory, s.now())
}

// Stats summarizes streaks across all recurring tasks.
func (s *Store) Stats() model.StreakStats {
	return model.ComputeStreakStats(s.tasks, s.now())
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func toStorage(t model.Task) storage.Task {
	return storage.Task{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Repeat:    string(t.Repeat),
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
	}
}

func fromStorage(t storage.Task) model.Task {
	return model.Task{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Repeat:    model.Repeat(t.Repeat),
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
	}
}
