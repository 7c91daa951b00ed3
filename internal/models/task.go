package models

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// Valid reports whether s is one of the three known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a single task owned by one user and filed under one tag.
type Task struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    string     `json:"user_id"`
	TagID     int        `json:"tag_id"`
}

// TaskRow is a task joined with its tag name, as returned by the task listing.
type TaskRow struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	TagName   string     `json:"tag_name"`
}

// Tag is a label tasks are filed under.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
