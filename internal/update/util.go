package update

import (
	"fmt"
	"strings"
	"time"

	"tsuzuku/internal/model"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

// parseDueDate accepts "2006-01-02T15:04", a bare date (due end of that
// day), or the keywords today and tomorrow (due 09:00). Empty input means
// no deadline.
func parseDueDate(raw string, now time.Time) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	switch strings.ToLower(trimmed) {
	case "today":
		due := model.DayOf(now).Add(9 * time.Hour)
		return &due, nil
	case "tomorrow":
		due := model.DayOf(now).AddDate(0, 0, 1).Add(9 * time.Hour)
		return &due, nil
	}
	if due, err := time.ParseInLocation("2006-01-02T15:04", trimmed, now.Location()); err == nil {
		return &due, nil
	}
	if day, err := time.ParseInLocation("2006-01-02", trimmed, now.Location()); err == nil {
		due := day.Add(23*time.Hour + 59*time.Minute)
		return &due, nil
	}
	return nil, fmt.Errorf("cannot parse due date %q", trimmed)
}
