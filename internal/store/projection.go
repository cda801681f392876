package store

import (
	"sort"
	"strings"

	"tsuzuku/internal/model"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

type SortOrder string

const (
	SortNewestFirst SortOrder = "newest"
	SortOldestFirst SortOrder = "oldest"
)

func ParseFilter(raw string) (Filter, bool) {
	switch Filter(strings.ToLower(strings.TrimSpace(raw))) {
	case FilterAll:
		return FilterAll, true
	case FilterActive:
		return FilterActive, true
	case FilterCompleted:
		return FilterCompleted, true
	default:
		return "", false
	}
}

func ParseSortOrder(raw string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(raw))) {
	case SortNewestFirst:
		return SortNewestFirst, true
	case SortOldestFirst:
		return SortOldestFirst, true
	default:
		return "", false
	}
}

// Visible projects the task list through search, completion filter, and
// sort order. It never mutates the underlying list.
func (s *Store) Visible(query string, filter Filter, order SortOrder) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if needle != "" && !strings.Contains(strings.ToLower(t.Text), needle) {
			continue
		}
		switch filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortOldestFirst {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
