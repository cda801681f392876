package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"tsuzuku/internal/model"
	"tsuzuku/internal/views"
)

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", m.Keys.Up:
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelectedToCursor()
	case "down", m.Keys.Down:
		if m.Cursor < len(m.visibleTasks())-1 {
			m.Cursor++
		}
		m.syncSelectedToCursor()
	case "enter", m.Keys.Toggle:
		m.toggleAtCursor()
	case m.Keys.Delete:
		m.deleteAtCursor()
	}
	return m
}

func (m Model) visibleTasks() []model.Task {
	if m.Store == nil {
		return nil
	}
	return m.Store.Visible(m.Query, m.Filter, m.Sort)
}

func (m *Model) syncSelectedToCursor() {
	rows := m.visibleTasks()
	if len(rows) == 0 {
		m.SelectedTaskID = ""
		return
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(rows) {
		m.Cursor = len(rows) - 1
	}
	m.SelectedTaskID = rows[m.Cursor].ID
}

func (m *Model) toggleAtCursor() {
	rows := m.visibleTasks()
	if len(rows) == 0 || m.Cursor >= len(rows) {
		return
	}
	m.applyToggle(rows[m.Cursor].ID)
}

func (m *Model) applyToggle(id string) {
	spawned, err := m.Store.Toggle(context.Background(), id)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		return
	}
	task, _ := m.Store.Get(id)
	if !task.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Text), IsError: false}
		m.syncSelectedToCursor()
		return
	}

	streak := m.Store.StreakFor(id)
	text := fmt.Sprintf("completed: %s", task.Text)
	if task.IsRecurring() {
		text = fmt.Sprintf("completed: %s (streak %d)", task.Text, streak)
		if isMilestone(streak) {
			m.notify("Streak milestone", fmt.Sprintf("%q reached a %d day streak", task.Text, streak), "info")
		}
	}
	if spawned != nil && spawned.DueDate != nil {
		text += fmt.Sprintf(", next due %s", spawned.DueDate.Format("2006-01-02 15:04"))
	}
	m.Status = StatusBar{Text: text, IsError: false}
	m.syncSelectedToCursor()
}

func (m *Model) deleteAtCursor() {
	rows := m.visibleTasks()
	if len(rows) == 0 || m.Cursor >= len(rows) {
		return
	}
	task := rows[m.Cursor]
	if err := m.Store.Delete(context.Background(), task.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Text), IsError: false}
	m.syncSelectedToCursor()
}

// resolveTarget accepts a 1-based position in the visible list or a task
// id prefix.
func (m Model) resolveTarget(target string) (model.Task, error) {
	rows := m.visibleTasks()
	trimmed := strings.TrimSpace(target)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n < 1 || n > len(rows) {
			return model.Task{}, fmt.Errorf("no task at position %d", n)
		}
		return rows[n-1], nil
	}
	for _, t := range rows {
		if strings.HasPrefix(t.ID, trimmed) {
			return t, nil
		}
	}
	return model.Task{}, fmt.Errorf("no task matching %q", trimmed)
}

func (m Model) renderTaskListView() string {
	rows := m.visibleTasks()
	now := m.Store.Now()
	viewRows := make([]views.TaskRowData, 0, len(rows))
	for _, t := range rows {
		row := views.TaskRowData{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Repeat:    string(t.Repeat),
			Priority:  string(model.DuePriority(t, now)),
		}
		if t.DueDate != nil {
			row.Due = t.DueDate.Format("2006-01-02 15:04")
		}
		if t.IsRecurring() {
			row.Streak = model.CalculateStreak(t, t.CompletionHistory, now)
			row.Flames = model.StreakStatus(row.Streak).Flames
		}
		viewRows = append(viewRows, row)
	}

	inputLabel := ""
	switch m.Mode {
	case ModeAdd:
		inputLabel = "add>"
	case ModeEdit:
		inputLabel = "edit>"
	}

	return views.RenderTaskList(views.TaskListData{
		Rows:       viewRows,
		SelectedID: m.SelectedTaskID,
		Filter:     string(m.Filter),
		Sort:       string(m.Sort),
		Query:      m.Query,
		InputView:  m.taskInput.View(),
		InputLabel: inputLabel,
		ListView:   m.taskList.View(),
	})
}

func taskListItems(rows []model.Task) []list.Item {
	items := make([]list.Item, 0, len(rows))
	for _, t := range rows {
		desc := string(t.Repeat)
		if t.DueDate != nil {
			desc = t.DueDate.Format("2006-01-02 15:04") + " " + desc
		}
		items = append(items, listItem{title: t.Text, description: strings.TrimSpace(desc)})
	}
	return items
}

func (m Model) statsRows() []table.Row {
	if m.Store == nil {
		return nil
	}
	now := m.Store.Now()
	rows := make([]table.Row, 0)
	for _, t := range m.Store.Tasks() {
		if !t.IsRecurring() {
			continue
		}
		streak := model.CalculateStreak(t, t.CompletionHistory, now)
		status := model.StreakStatus(streak)
		next := "max"
		if ms := model.NextMilestone(streak); !ms.Max {
			next = fmt.Sprintf("%dd to %d", ms.DaysLeft, ms.Value)
		}
		rows = append(rows, table.Row{t.Text, strconv.Itoa(streak), string(status.Tier), next})
	}
	return rows
}

// isMilestone reports whether streak lands exactly on a milestone value.
func isMilestone(streak int) bool {
	if streak <= 0 {
		return false
	}
	ms := model.NextMilestone(streak - 1)
	return !ms.Max && ms.Value == streak
}
