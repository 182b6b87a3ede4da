// Package task defines the task entity, its validation rules, and the
// filtering logic applied to task snapshots.
package task

import "time"

// Status is the workflow state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the enumerated status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the enumerated priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a task record as confirmed by the store.
// ID, Owner, CreatedAt and UpdatedAt are store-owned and never written
// by callers.
type Task struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Owner       string    `gorm:"index;not null;type:text" json:"owner"`
	Title       string    `gorm:"not null;type:text" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Status      Status    `gorm:"not null;type:text" json:"status"`
	Priority    Priority  `gorm:"not null;type:text" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
