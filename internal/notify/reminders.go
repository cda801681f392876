package notify

import (
	"fmt"
	"time"

	"tsuzuku/internal/model"
	"tsuzuku/internal/scheduler"
)

const (
	LabelOneHour    = "1h"
	LabelFifteenMin = "15m"
	LabelDue        = "due"
)

// Manager registers due-date reminders with the scheduler engine. Each
// task gets up to three timers: one hour before, fifteen minutes before,
// and at the due time; thresholds already in the past are skipped. All
// timers for a task share its id, so a due-date or completion change
// cancels and re-registers them as a unit.
type Manager struct {
	engine *scheduler.Engine
	now    func() time.Time
}

func NewManager(engine *scheduler.Engine) *Manager {
	return &Manager{engine: engine, now: time.Now}
}

// NewManagerWithClock is for tests that need a fixed notion of now.
func NewManagerWithClock(engine *scheduler.Engine, now func() time.Time) *Manager {
	return &Manager{engine: engine, now: now}
}

// Schedule clears any timers owned by the task, then registers the
// thresholds still ahead of its due date. Completed tasks and tasks
// without a deadline register nothing.
func (m *Manager) Schedule(task model.Task) error {
	m.engine.CancelTask(task.ID)
	if task.DueDate == nil || task.Completed {
		return nil
	}
	now := m.now()
	due := *task.DueDate
	if !due.After(now) {
		return nil
	}

	thresholds := []struct {
		label string
		at    time.Time
		title string
		body  string
	}{
		{LabelOneHour, due.Add(-time.Hour), "Task reminder", fmt.Sprintf("%q is due in one hour", task.Text)},
		{LabelFifteenMin, due.Add(-15 * time.Minute), "Task reminder", fmt.Sprintf("%q is due in 15 minutes", task.Text)},
		{LabelDue, due, "Task overdue", fmt.Sprintf("%q is now overdue", task.Text)},
	}
	for _, th := range thresholds {
		if !th.at.After(now) {
			continue
		}
		ev := scheduler.ReminderEvent{
			ID:        task.ID + "_" + th.label,
			TaskID:    task.ID,
			Label:     th.label,
			Title:     th.title,
			Body:      th.body,
			TriggerAt: th.at,
		}
		if err := m.engine.Schedule(ev); err != nil {
			return fmt.Errorf("notify: schedule %s reminder: %w", th.label, err)
		}
	}
	return nil
}

// Cancel clears every pending timer for the task.
func (m *Manager) Cancel(taskID string) {
	m.engine.CancelTask(taskID)
}

// CancelAll clears every pending timer.
func (m *Manager) CancelAll() {
	m.engine.CancelAll()
}
