package model

import "time"

// Default values for new tasks.
const (
	DefaultStatus   = "Open"
	DefaultPriority = 3
)

// Task is a unit of work inside a project. Status is free-form text; it is
// normalized only when tasks are grouped or aggregated.
type Task struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ProjectID      uint       `gorm:"index;not null" json:"projectId"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `json:"description,omitempty"`
	AssignedUserID *uint      `gorm:"index" json:"assignedUserId,omitempty"`
	Status         string     `gorm:"default:Open" json:"status"`
	Priority       int        `gorm:"default:3" json:"priority"`
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
}
