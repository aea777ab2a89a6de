package repository

import (
	"context"
	"time"

	"todo/internal/domain/entity"
	"todo/internal/errors"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when no task matches both id and owner.
var ErrTaskNotFound = errors.New("task not found")

// TaskFilter narrows a task listing. CreatedFrom is inclusive and CreatedTo exclusive.
type TaskFilter struct {
	UserID      uuid.UUID
	Status      *entity.TaskStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Offset      int
	Limit       int
}

// TaskRepository persists tasks. Every lookup is scoped to the owning user.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error

	// FindByIDAndUser returns ErrTaskNotFound when the task is missing or owned by someone else.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error)

	// List returns one page ordered by created_at descending plus the unpaginated total.
	List(ctx context.Context, filter TaskFilter) ([]*entity.Task, int64, error)

	Update(ctx context.Context, task *entity.Task) error

	// DeleteByIDAndUser reports whether a row was removed.
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (bool, error)

	// AvailableDates lists distinct YYYY-MM-DD creation days, newest first.
	AvailableDates(ctx context.Context, userID uuid.UUID) ([]string, error)

	// AvailableMonths lists distinct YYYY-MM creation months, newest first.
	AvailableMonths(ctx context.Context, userID uuid.UUID) ([]string, error)
}
