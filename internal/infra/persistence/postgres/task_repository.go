package postgres

import (
	"context"
	"time"

	"todo/internal/domain/entity"
	"todo/internal/domain/repository"
	"todo/internal/errors"
	"todo/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultTaskTimezone = "UTC"

// taskRepository implements repository.TaskRepository. Every statement carries the owner predicate.
type taskRepository struct {
	db       *gorm.DB
	timezone string
	now      func() time.Time
}

// NewTaskRepository is the constructor for taskRepository.
// timezone is the IANA name used to bucket creation times into days and months.
func NewTaskRepository(db *gorm.DB, timezone string) repository.TaskRepository {
	if timezone == "" {
		timezone = defaultTaskTimezone
	}

	return &taskRepository{db: db, timezone: timezone, now: time.Now}
}

func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)
	if taskM.ID == uuid.Nil {
		taskM.ID = uuid.New()
	}
	if taskM.Status == "" {
		taskM.Status = entity.TaskStatusPending.String()
	}
	taskM.CreatedAt = repo.now().UTC()

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		return translateError(err, "failed to create task")
	}

	*task = *toTaskDomain(taskM)

	return nil
}

func (repo *taskRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&taskM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, translateError(err, "failed to find task")
	}

	return toTaskDomain(&taskM), nil
}

func (repo *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*entity.Task, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.TaskModel{}).Where("user_id = ?", filter.UserID)
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at < ?", filter.CreatedTo.UTC())
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "failed to count tasks")
	}

	var taskModels []model.TaskModel
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&taskModels).Error
	if err != nil {
		return nil, 0, translateError(err, "failed to list tasks")
	}

	tasks := make([]*entity.Task, 0, len(taskModels))
	for i := range taskModels {
		tasks = append(tasks, toTaskDomain(&taskModels[i]))
	}

	return tasks, total, nil
}

// Update writes title, description and status of a task owned by task.UserID.
func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	if task.UserID == nil {
		return repository.ErrTaskNotFound
	}

	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ? AND user_id = ?", task.ID, *task.UserID).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status.String(),
		})
	if result.Error != nil {
		return translateError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

func (repo *taskRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.TaskModel{})
	if result.Error != nil {
		return false, translateError(result.Error, "failed to delete task")
	}

	return result.RowsAffected > 0, nil
}

func (repo *taskRepository) AvailableDates(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return repo.distinctBuckets(ctx, userID, "YYYY-MM-DD")
}

func (repo *taskRepository) AvailableMonths(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return repo.distinctBuckets(ctx, userID, "YYYY-MM")
}

// distinctBuckets formats created_at in the repository timezone and returns distinct values, newest first.
func (repo *taskRepository) distinctBuckets(ctx context.Context, userID uuid.UUID, layout string) ([]string, error) {
	buckets := make([]string, 0)
	err := repo.db.WithContext(ctx).
		Raw(`SELECT DISTINCT to_char((created_at AT TIME ZONE 'UTC') AT TIME ZONE ?, ?) AS bucket
			FROM tasks WHERE user_id = ? ORDER BY bucket DESC`, repo.timezone, layout, userID).
		Scan(&buckets).Error
	if err != nil {
		return nil, translateError(err, "failed to list task "+layout+" buckets")
	}

	return buckets, nil
}

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Status:      entity.TaskStatus(data.Status),
		CreatedAt:   data.CreatedAt.UTC(),
		UserID:      data.UserID,
	}
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Status:      data.Status.String(),
		CreatedAt:   data.CreatedAt,
		UserID:      data.UserID,
	}
}
