package model

import "time"

// Project groups tasks and the members allowed to work on them.
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Users       []User     `gorm:"many2many:project_users;" json:"users,omitempty"`
	Tasks       []Task     `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}
