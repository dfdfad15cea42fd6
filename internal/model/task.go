package model

import (
	"time"

	"github.com/google/uuid"
)

// Task priorities. An empty Priority means "not set".
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is a known priority or unset.
func ValidPriority(p string) bool {
	return p == "" || p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Priority    string
	DueDate     *time.Time
	AssigneeID  *uuid.UUID `gorm:"type:uuid"`
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null"`
	Position    int        `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Column   Column  `gorm:"foreignKey:ColumnID"`
	Assignee *User   `gorm:"foreignKey:AssigneeID"`
	Creator  User    `gorm:"foreignKey:CreatedByID"`
	Labels   []Label `gorm:"many2many:task_labels"`
}
