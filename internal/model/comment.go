package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment has no position: comments are ordered by creation time.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	Task   Task `gorm:"foreignKey:TaskID"`
	Author User `gorm:"foreignKey:AuthorID"`
}
