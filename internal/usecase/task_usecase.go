package usecase

import (
	"context"

	"todo/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTaskInput holds the fields accepted when creating a task. Status defaults to pending.
type CreateTaskInput struct {
	Title       string             `validate:"required,min=1,max=200"`
	Description *string            `validate:"omitempty,max=1000"`
	Status      *entity.TaskStatus `validate:"omitempty,oneof=pending in_progress done"`
}

// UpdateTaskInput holds a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string            `validate:"omitempty,min=1,max=200"`
	Description *string            `validate:"omitempty,max=1000"`
	Status      *entity.TaskStatus `validate:"omitempty,oneof=pending in_progress done"`
}

// ListTasksInput carries the raw query filters. Empty strings mean "not supplied".
// Malformed values are ignored rather than rejected.
type ListTasksInput struct {
	Status   string
	Date     string
	DayGroup string
	Month    string
	Skip     *int
	Limit    *int
}

// ListTasksOutput is one page of tasks plus the number of matching tasks before paging.
type ListTasksOutput struct {
	Tasks []*entity.Task
	Total int64
}

// TaskUsecase defines the per-user task operations. Tasks of other users are never visible.
type TaskUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*entity.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error)
	List(ctx context.Context, userID uuid.UUID, input ListTasksInput) (*ListTasksOutput, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, input UpdateTaskInput) (*entity.Task, error)
	// Delete reports false when no task of userID has taskID.
	Delete(ctx context.Context, userID, taskID uuid.UUID) (bool, error)
	AvailableDates(ctx context.Context, userID uuid.UUID) ([]string, error)
	AvailableMonths(ctx context.Context, userID uuid.UUID) ([]string, error)
}
