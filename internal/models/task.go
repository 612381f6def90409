package models

import "time"

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Department  string    `json:"department"` // "ALL" or a specific department
	DueDate     *string   `json:"due_date"`   // "2006-01-02"
	IsActive    bool      `json:"is_active"`
	ModuleType  string    `json:"module_type,omitempty"`
	ContentID   int64     `json:"content_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskFilter struct {
	Department string // matches the department itself or "ALL"
	ActiveOnly bool
}
