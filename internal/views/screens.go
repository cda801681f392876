package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	ID        string
	Text      string
	Completed bool
	Due       string
	Repeat    string
	Priority  string
	Streak    int
	Flames    int
}

type TaskListData struct {
	Rows       []TaskRowData
	SelectedID string
	Filter     string
	Sort       string
	Query      string
	InputView  string
	InputLabel string
	ListView   string
}

type StreakPanelData struct {
	TaskText          string
	Streak            int
	Message           string
	Flames            int
	MilestoneValue    int
	MilestoneDaysLeft int
	MilestoneMax      bool
}

type StatsPanelData struct {
	TotalRecurring int
	ActiveStreaks  int
	LongestStreak  int
	AverageStreak  int
	TableView      string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("filter: %s | sort: %s", data.Filter, data.Sort))
	if data.Query != "" {
		b.WriteString(fmt.Sprintf(" | search: %q", data.Query))
	}
	b.WriteString("\n")
	if data.InputLabel != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", data.InputLabel, data.InputView))
	}
	b.WriteString(data.ListView + "\n")

	if len(data.Rows) == 0 {
		b.WriteString("(no tasks)")
		return strings.TrimSpace(b.String())
	}
	for i, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		if row.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %2d %s %s %s", cursor, i+1, check, priorityBadge(row.Priority), row.Text))
		if row.Due != "" {
			b.WriteString(" due:" + row.Due)
		}
		if row.Repeat != "" && row.Repeat != "none" {
			b.WriteString(" @" + row.Repeat)
			if row.Streak > 0 {
				b.WriteString(fmt.Sprintf(" %s%d", strings.Repeat("🔥", row.Flames), row.Streak))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderStreakPanel(data StreakPanelData) string {
	if data.TaskText == "" {
		return "streak:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("streak:\n")
	b.WriteString(fmt.Sprintf("task: %s\n", data.TaskText))
	b.WriteString(fmt.Sprintf("current: %d day(s) %s\n", data.Streak, strings.Repeat("🔥", data.Flames)))
	b.WriteString(fmt.Sprintf("status: %s\n", data.Message))
	if data.MilestoneMax {
		b.WriteString("milestone: max reached")
	} else {
		b.WriteString(fmt.Sprintf("milestone: %d day(s) to %d", data.MilestoneDaysLeft, data.MilestoneValue))
	}
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("recurring: %d | active: %d\n", data.TotalRecurring, data.ActiveStreaks))
	b.WriteString(fmt.Sprintf("longest: %d | average: %d\n", data.LongestStreak, data.AverageStreak))
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func priorityBadge(priority string) string {
	switch priority {
	case "overdue":
		return "[RED]"
	case "critical", "high":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}
