package impl

import (
	"context"
	"log/slog"
	"time"

	"todo/config"
	deliverycontext "todo/internal/delivery/context"
	"todo/internal/domain/entity"
	domainerrors "todo/internal/domain/errors"
	"todo/internal/domain/repository"
	"todo/internal/errors"
	"todo/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	fallbackPageSize    = 100
	fallbackMaxPageSize = 1000
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	txManager       repository.TransactionManager
	location        *time.Location
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
	logger          *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Config    *config.Config
	Logger    *slog.Logger
}

// NewTaskService is the constructor for taskService. It fails on an unknown timezone name.
func NewTaskService(params TaskServiceParams) (usecase.TaskUsecase, error) {
	srv := &taskService{
		txManager:       params.TxManager,
		location:        time.UTC,
		defaultPageSize: fallbackPageSize,
		maxPageSize:     fallbackMaxPageSize,
		now:             time.Now,
		logger:          params.Logger,
	}

	if params.Config == nil || params.Config.Tasks == nil {
		return srv, nil
	}

	tasksCfg := params.Config.Tasks
	if tasksCfg.Timezone != "" {
		loc, err := time.LoadLocation(tasksCfg.Timezone)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid tasks timezone %q", tasksCfg.Timezone)
		}
		srv.location = loc
	}
	if tasksCfg.MaxPageSize > 0 {
		srv.maxPageSize = tasksCfg.MaxPageSize
	}
	if tasksCfg.DefaultPageSize > 0 {
		srv.defaultPageSize = min(tasksCfg.DefaultPageSize, srv.maxPageSize)
	}

	return srv, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *taskService) Create(ctx context.Context, userID uuid.UUID, input usecase.CreateTaskInput) (*entity.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	owner := userID
	task := &entity.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      entity.TaskStatusPending,
		UserID:      &owner,
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewTaskRepository().Create(ctx, task)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Debug("Task created", slog.String("taskID", task.ID.String()), slog.String("userID", userID.String()))

	return task, nil
}

func (srv *taskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*entity.Task, error) {
	var task *entity.Task
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewTaskRepository().FindByIDAndUser(ctx, taskID, userID)
		if err != nil {
			return mapTaskError(err)
		}
		task = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (srv *taskService) List(ctx context.Context, userID uuid.UUID, input usecase.ListTasksInput) (*usecase.ListTasksOutput, error) {
	status, ok := parseStatus(input.Status)
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WithDetails("status must be one of: pending in_progress done")
	}

	offset, limit := pageBounds(input.Skip, input.Limit, srv.defaultPageSize, srv.maxPageSize)
	window := resolveDateRange(input, srv.now(), srv.location)

	filter := repository.TaskFilter{
		UserID:      userID,
		Status:      status,
		CreatedFrom: window.From,
		CreatedTo:   window.To,
		Offset:      offset,
		Limit:       limit,
	}

	output := &usecase.ListTasksOutput{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tasks, total, err := repoFactory.NewTaskRepository().List(ctx, filter)
		if err != nil {
			return err
		}
		output.Tasks = tasks
		output.Total = total

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return output, nil
}

// Update overwrites only the supplied fields of a task owned by userID.
func (srv *taskService) Update(ctx context.Context, userID, taskID uuid.UUID, input usecase.UpdateTaskInput) (*entity.Task, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var task *entity.Task
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.NewTaskRepository()

		found, err := taskRepo.FindByIDAndUser(ctx, taskID, userID)
		if err != nil {
			return mapTaskError(err)
		}

		if input.Title != nil {
			found.Title = *input.Title
		}
		if input.Description != nil {
			found.Description = input.Description
		}
		if input.Status != nil {
			found.Status = *input.Status
		}

		if err := taskRepo.Update(ctx, found); err != nil {
			return mapTaskError(err)
		}
		task = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (srv *taskService) Delete(ctx context.Context, userID, taskID uuid.UUID) (bool, error) {
	var deleted bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		deleted, err = repoFactory.NewTaskRepository().DeleteByIDAndUser(ctx, taskID, userID)

		return err
	})
	if err != nil {
		return false, errors.Wrap(err, "failed to delete task")
	}

	if deleted {
		srv.log(ctx).Debug("Task deleted", slog.String("taskID", taskID.String()), slog.String("userID", userID.String()))
	}

	return deleted, nil
}

func (srv *taskService) AvailableDates(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var dates []string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		dates, err = repoFactory.NewTaskRepository().AvailableDates(ctx, userID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available dates")
	}

	return dates, nil
}

func (srv *taskService) AvailableMonths(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var months []string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		months, err = repoFactory.NewTaskRepository().AvailableMonths(ctx, userID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list available months")
	}

	return dedupe(months), nil
}

// mapTaskError converts the repository miss into the HTTP-facing not-found error.
func mapTaskError(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return domainerrors.ErrTaskNotFound
	}

	return err
}

// dedupe drops repeated values and keeps the first occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
