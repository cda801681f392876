package update

import (
	"strings"
	"time"

	"tsuzuku/internal/model"
	"tsuzuku/internal/views"
)

func (m Model) renderStreakPanel() string {
	task, ok := m.Store.Get(m.SelectedTaskID)
	if !ok || !task.IsRecurring() {
		return views.RenderStreakPanel(views.StreakPanelData{})
	}
	now := m.Store.Now()
	streak := model.CalculateStreak(task, task.CompletionHistory, now)
	status := model.StreakStatus(streak)
	milestone := model.NextMilestone(streak)
	return views.RenderStreakPanel(views.StreakPanelData{
		TaskText:          task.Text,
		Streak:            streak,
		Message:           status.Message,
		Flames:            status.Flames,
		MilestoneValue:    milestone.Value,
		MilestoneDaysLeft: milestone.DaysLeft,
		MilestoneMax:      milestone.Max,
	})
}

func (m Model) renderStatsPanel() string {
	stats := m.Store.Stats()
	return views.RenderStatsPanel(views.StatsPanelData{
		TotalRecurring: stats.TotalRecurring,
		ActiveStreaks:  stats.ActiveStreaks,
		LongestStreak:  stats.LongestStreak,
		AverageStreak:  stats.AverageStreak,
		TableView:      m.statsTable.View(),
	})
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n.Title, n.Body)
	}
}
