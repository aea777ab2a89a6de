package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel mirrors the 'tasks' table. Timestamps are stored as UTC without a zone.
type TaskModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description *string    `gorm:"type:varchar(1000)"`
	Status      string     `gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt   time.Time  `gorm:"type:timestamp;not null;index"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
