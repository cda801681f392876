package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tsuzuku/internal/scheduler"
	"tsuzuku/internal/store"
	"tsuzuku/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForReminderCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next.synced(), cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			next := m.handlePaletteKey(typed)
			return next, nil
		}
		if m.Mode == ModeAdd || m.Mode == ModeEdit {
			next := m.handleFormKey(typed)
			return next, nil
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Add:
			m.beginAdd()
			return m, nil
		case m.Keys.Edit:
			m.beginEdit()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Stats:
			m.StatsVisible = !m.StatsVisible
			return m, nil
		case m.Keys.Filter:
			m.cycleFilter()
			return m, nil
		case m.Keys.Sort:
			m.toggleSort()
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case SetFilterMsg:
		m.Filter = typed.Filter
		m.Cursor = 0
		m.syncSelectedToCursor()
		return m, nil
	case SetSortMsg:
		m.Sort = typed.Order
		m.Cursor = 0
		m.syncSelectedToCursor()
		return m, nil
	case SetSearchMsg:
		m.Query = typed.Query
		m.Cursor = 0
		m.syncSelectedToCursor()
		return m, nil
	case ReminderDueMsg:
		m.ReminderLog = append(m.ReminderLog, typed.Event)
		if len(m.ReminderLog) > 20 {
			m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("reminder fired: %s", typed.Event.Body), IsError: typed.Event.Label == "due"}
		m.notify(typed.Event.Title, typed.Event.Body, levelFromError(m.Status.IsError))
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	sidePane := ""
	if m.StatsVisible {
		sidePane = m.renderStatsPanel()
	} else {
		sidePane = m.renderStreakPanel()
	}
	if palette := views.RenderCommandPalette(m.Palette.Active, m.Palette.Input); palette != "" {
		sidePane += "\n" + palette
	}
	if m.HelpVisible {
		sidePane += "\n" + m.renderHelpView()
	}

	notification := ""
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		notification = fmt.Sprintf("last-reminder: %s @ %s", last.ID, last.TriggerAt.Format("15:04:05"))
	}
	if n := m.renderNotificationsView(); n != "" {
		if notification != "" {
			notification += "\n"
		}
		notification += n
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("tsuzuku | filter: %s | selected: %s", m.Filter, m.SelectedTaskID),
		ListPane:     m.renderTaskListView(),
		SidePane:     sidePane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s add | space toggle | %s edit | %s del | %s filter | %s sort | %s stats | %s cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Edit, m.Keys.Delete, m.Keys.Filter, m.Keys.Sort, m.Keys.Stats, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

// synced refreshes the bubble components on the outgoing model. Update
// has a value receiver, so the refresh must happen on the copy that is
// actually handed back to the program.
func (m Model) synced() Model {
	m.syncBubbleData()
	return m
}

func (m *Model) syncBubbleData() {
	rows := m.visibleTasks()
	m.taskList.SetItems(taskListItems(rows))
	if len(rows) > 0 && m.Cursor < len(rows) {
		m.taskList.Select(m.Cursor)
	}

	m.statsTable.SetRows(m.statsRows())

	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.Mode == ModeAdd || m.Mode == ModeEdit {
		m.taskInput.Focus()
	}
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func (m *Model) cycleFilter() {
	switch m.Filter {
	case store.FilterAll:
		m.Filter = store.FilterActive
	case store.FilterActive:
		m.Filter = store.FilterCompleted
	default:
		m.Filter = store.FilterAll
	}
	m.Cursor = 0
	m.syncSelectedToCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Filter), IsError: false}
}

func (m *Model) toggleSort() {
	if m.Sort == store.SortNewestFirst {
		m.Sort = store.SortOldestFirst
	} else {
		m.Sort = store.SortNewestFirst
	}
	m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", m.Sort), IsError: false}
}
