package storage

import "time"

type Task struct {
	ID        string
	Text      string
	Completed bool
	Repeat    string
	DueDate   *time.Time
	CreatedAt time.Time
}

type TaskListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}
