package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tsuzuku/internal/commands"
	"tsuzuku/internal/model"
)

func (m *Model) beginAdd() {
	m.Mode = ModeAdd
	m.taskInput.SetValue("")
	m.taskInput.Focus()
	m.Status = StatusBar{Text: "add task (text [due:2026-09-01T09:00] [repeat:daily])", IsError: false}
}

func (m *Model) beginEdit() {
	task, ok := m.Store.Get(m.SelectedTaskID)
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return
	}
	m.Mode = ModeEdit
	m.EditTaskID = task.ID
	m.taskInput.SetValue(task.Text)
	m.taskInput.Focus()
	m.Status = StatusBar{Text: "edit task text", IsError: false}
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case m.Keys.Cancel:
		m.Mode = ModeList
		m.EditTaskID = ""
		m.taskInput.SetValue("")
		m.taskInput.Blur()
		m.Status = StatusBar{Text: "cancelled", IsError: false}
		return m
	case m.Keys.Confirm:
		value := m.taskInput.Value()
		if m.Mode == ModeEdit {
			m.submitEdit(value)
		} else {
			m.submitAdd(value)
		}
		m.Mode = ModeList
		m.EditTaskID = ""
		m.taskInput.SetValue("")
		m.taskInput.Blur()
		return m
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	_ = cmd
	return m
}

// submitAdd reuses the palette grammar so the inline form and the /add
// command accept identical input.
func (m *Model) submitAdd(value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		m.Status = StatusBar{Text: "task text is empty", IsError: true}
		return
	}
	cmd, err := commands.Parse("add " + trimmed)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.applyAdd(*cmd.Add)
}

func (m *Model) applyAdd(args commands.AddArgs) {
	repeat := model.RepeatNone
	if args.Repeat != "" {
		repeat = model.Repeat(strings.ToLower(args.Repeat))
		if !repeat.IsValid() {
			m.Status = StatusBar{Text: fmt.Sprintf("unknown repeat: %s", args.Repeat), IsError: true}
			return
		}
	}

	var task model.Task
	var err error
	if args.Due == "" && repeat == model.RepeatNone {
		task, err = m.Store.AddSimple(context.Background(), args.Text)
	} else {
		due, parseErr := parseDueDate(args.Due, m.Store.Now())
		if parseErr != nil {
			m.Status = StatusBar{Text: parseErr.Error(), IsError: true}
			return
		}
		task, err = m.Store.AddScheduled(context.Background(), args.Text, due, repeat)
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		return
	}

	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text), IsError: false}
	m.Cursor = 0
	m.syncSelectedToCursor()
	m.SelectedTaskID = task.ID
}

func (m *Model) submitEdit(value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		m.Status = StatusBar{Text: "task text is empty", IsError: true}
		return
	}
	if err := m.Store.Edit(context.Background(), m.EditTaskID, trimmed); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("edited: %s", trimmed), IsError: false}
}
