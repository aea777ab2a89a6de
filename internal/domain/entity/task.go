package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	// TaskStatusPending is the default status of a new task.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusInProgress marks a task that has been started.
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusDone marks a finished task.
	TaskStatusDone TaskStatus = "done"
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid checks if the TaskStatus is a valid value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Task is a single to-do item owned by one user.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description *string // nil when the task has no description.
	Status      TaskStatus
	CreatedAt   time.Time  // Assigned once at creation, never updated.
	UserID      *uuid.UUID // Nullable in storage, always set for tasks created by the service.
}

// DayGroup is a named rolling window used to filter tasks by creation date.
type DayGroup string

const (
	DayGroupToday     DayGroup = "today"
	DayGroupYesterday DayGroup = "yesterday"
	DayGroupWeek      DayGroup = "week"
	DayGroupMonth     DayGroup = "month"
)

// IsValid checks if the DayGroup is a known window name.
func (g DayGroup) IsValid() bool {
	switch g {
	case DayGroupToday, DayGroupYesterday, DayGroupWeek, DayGroupMonth:
		return true
	default:
		return false
	}
}
