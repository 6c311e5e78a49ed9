package model

import (
	"time"
)

// Task represents a single unit of work inside a project
type Task struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Notes     *string    `json:"notes"`
	DueDate   *time.Time `json:"dueDate"`
	Status    Status     `json:"status"`
	IsDeleted bool       `json:"isDeleted"`
	Timestamps
	ProjectID int64 `json:"projectId"`
}

// NewTask creates a new task with defaults
func NewTask(projectID int64, title string) Task {
	return Task{
		ProjectID: projectID,
		Title:     title,
		Status:    StatusTodo,
	}
}
