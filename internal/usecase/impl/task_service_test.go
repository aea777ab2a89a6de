package impl

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"todo/internal/domain/entity"
	domainerrors "todo/internal/domain/errors"
	"todo/internal/domain/repository"
	"todo/internal/errors"
	mockRepo "todo/internal/mocks/repository"
	"todo/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryTaskStore is an in-memory TaskRepository with the same owner scoping as the SQL one.
type memoryTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]entity.Task
	now   func() time.Time
}

func newMemoryTaskStore(now func() time.Time) *memoryTaskStore {
	return &memoryTaskStore{tasks: make(map[uuid.UUID]entity.Task), now: now}
}

func (s *memoryTaskStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *memoryTaskStore) NewUserRepository() repository.UserRepository { return nil }

func (s *memoryTaskStore) NewTaskRepository() repository.TaskRepository { return s }

func (s *memoryTaskStore) Create(_ context.Context, task *entity.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = uuid.New()
	task.CreatedAt = s.now().UTC()
	s.tasks[task.ID] = *task

	return nil
}

func (s *memoryTaskStore) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID == nil || *task.UserID != userID {
		return nil, repository.ErrTaskNotFound
	}

	return &task, nil
}

func (s *memoryTaskStore) List(_ context.Context, filter repository.TaskFilter) ([]*entity.Task, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*entity.Task
	for _, task := range s.tasks {
		if task.UserID == nil || *task.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.CreatedFrom != nil && task.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !task.CreatedAt.Before(*filter.CreatedTo) {
			continue
		}
		matched = append(matched, &task)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := min(filter.Offset, len(matched))
	end := min(start+filter.Limit, len(matched))

	return matched[start:end], total, nil
}

func (s *memoryTaskStore) Update(_ context.Context, task *entity.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[task.ID]
	if !ok || stored.UserID == nil || task.UserID == nil || *stored.UserID != *task.UserID {
		return repository.ErrTaskNotFound
	}
	s.tasks[task.ID] = *task

	return nil
}

func (s *memoryTaskStore) DeleteByIDAndUser(_ context.Context, id, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID == nil || *task.UserID != userID {
		return false, nil
	}
	delete(s.tasks, id)

	return true, nil
}

func (s *memoryTaskStore) AvailableDates(context.Context, uuid.UUID) ([]string, error) {
	return nil, nil
}

func (s *memoryTaskStore) AvailableMonths(context.Context, uuid.UUID) ([]string, error) {
	return nil, nil
}

type clock struct {
	current time.Time
}

func (c *clock) Now() time.Time {
	return c.current
}

func newTaskServiceWithStore(t *testing.T) (*taskService, *memoryTaskStore, *clock) {
	t.Helper()

	clk := &clock{current: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	store := newMemoryTaskStore(clk.Now)

	uc, err := NewTaskService(TaskServiceParams{TxManager: store, Config: newTestConfig(), Logger: newDiscardLogger()})
	require.NoError(t, err)

	srv := uc.(*taskService)
	srv.now = clk.Now

	return srv, store, clk
}

func createTestTaskServiceWithMocks(t *testing.T) (*taskService, *mockRepo.MockTransactionManager, *mockRepo.MockTaskRepository) {
	t.Helper()

	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	taskRepo := mockRepo.NewMockTaskRepository(t)

	uc, err := NewTaskService(TaskServiceParams{TxManager: txManager, Config: newTestConfig(), Logger: newDiscardLogger()})
	require.NoError(t, err)

	expectTransaction(txManager, factory)
	factory.EXPECT().NewTaskRepository().Return(taskRepo).Maybe()

	return uc.(*taskService), txManager, taskRepo
}

func TestNewTaskService_Config(t *testing.T) {
	cfg := newTestConfig()
	cfg.Tasks.Timezone = "Not/AZone"

	_, err := NewTaskService(TaskServiceParams{Config: cfg, Logger: newDiscardLogger()})
	assert.Error(t, err)

	cfg = newTestConfig()
	cfg.Tasks.DefaultPageSize = 5000
	cfg.Tasks.MaxPageSize = 500

	uc, err := NewTaskService(TaskServiceParams{Config: cfg, Logger: newDiscardLogger()})
	require.NoError(t, err)
	srv := uc.(*taskService)
	assert.Equal(t, 500, srv.defaultPageSize)
	assert.Equal(t, 500, srv.maxPageSize)
}

func TestTaskService_Create(t *testing.T) {
	srv, _, clk := newTaskServiceWithStore(t)
	ctx := context.Background()
	userID := uuid.New()

	task, err := srv.Create(ctx, userID, usecase.CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, entity.TaskStatusPending, task.Status)
	assert.Nil(t, task.Description)
	assert.Equal(t, clk.current, task.CreatedAt)
	require.NotNil(t, task.UserID)
	assert.Equal(t, userID, *task.UserID)

	status := entity.TaskStatusInProgress
	task, err = srv.Create(ctx, userID, usecase.CreateTaskInput{Title: "Write report", Description: strPtr("Q1"), Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusInProgress, task.Status)
	assert.Equal(t, "Q1", *task.Description)
}

func TestTaskService_Create_Validation(t *testing.T) {
	bogus := entity.TaskStatus("archived")

	tests := []struct {
		name  string
		input usecase.CreateTaskInput
	}{
		{name: "empty title", input: usecase.CreateTaskInput{}},
		{name: "title too long", input: usecase.CreateTaskInput{Title: strings.Repeat("t", 201)}},
		{name: "description too long", input: usecase.CreateTaskInput{Title: "ok", Description: strPtr(strings.Repeat("d", 1001))}},
		{name: "unknown status", input: usecase.CreateTaskInput{Title: "ok", Status: &bogus}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store, _ := newTaskServiceWithStore(t)

			_, err := srv.Create(context.Background(), uuid.New(), tt.input)

			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			assert.Empty(t, store.tasks)
		})
	}
}

func TestTaskService_CrossUserIsolation(t *testing.T) {
	srv, _, _ := newTaskServiceWithStore(t)
	ctx := context.Background()
	owner, intruder := uuid.New(), uuid.New()

	task, err := srv.Create(ctx, owner, usecase.CreateTaskInput{Title: "private"})
	require.NoError(t, err)

	_, err = srv.Get(ctx, intruder, task.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))

	_, err = srv.Update(ctx, intruder, task.ID, usecase.UpdateTaskInput{Title: strPtr("hijacked")})
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))

	deleted, err := srv.Delete(ctx, intruder, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	list, err := srv.List(ctx, intruder, usecase.ListTasksInput{})
	require.NoError(t, err)
	assert.Empty(t, list.Tasks)
	assert.Zero(t, list.Total)

	got, err := srv.Get(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestTaskService_CreateUpdateDeleteGet(t *testing.T) {
	srv, _, _ := newTaskServiceWithStore(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := srv.Create(ctx, userID, usecase.CreateTaskInput{Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusPending, created.Status)

	done := entity.TaskStatusDone
	updated, err := srv.Update(ctx, userID, created.ID, usecase.UpdateTaskInput{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusDone, updated.Status)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	deleted, err := srv.Delete(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = srv.Get(ctx, userID, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))

	deleted, err = srv.Delete(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTaskService_Update_OnlySuppliedFields(t *testing.T) {
	srv, _, _ := newTaskServiceWithStore(t)
	ctx := context.Background()
	userID := uuid.New()
	status := entity.TaskStatusInProgress

	created, err := srv.Create(ctx, userID, usecase.CreateTaskInput{Title: "old", Description: strPtr("keep me"), Status: &status})
	require.NoError(t, err)

	updated, err := srv.Update(ctx, userID, created.ID, usecase.UpdateTaskInput{Title: strPtr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "keep me", *updated.Description)
	assert.Equal(t, entity.TaskStatusInProgress, updated.Status)

	_, err = srv.Update(ctx, userID, created.ID, usecase.UpdateTaskInput{Title: strPtr("")})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestTaskService_List_FiltersAndPaging(t *testing.T) {
	srv, _, clk := newTaskServiceWithStore(t)
	ctx := context.Background()
	userID := uuid.New()
	done := entity.TaskStatusDone

	create := func(at time.Time, title string, status *entity.TaskStatus) {
		clk.current = at
		_, err := srv.Create(ctx, userID, usecase.CreateTaskInput{Title: title, Status: status})
		require.NoError(t, err)
	}
	create(time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC), "february", nil)
	create(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), "tenth morning", &done)
	create(time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC), "tenth night", nil)
	create(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), "today", nil)
	clk.current = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	titles := func(out *usecase.ListTasksOutput) []string {
		result := make([]string, 0, len(out.Tasks))
		for _, task := range out.Tasks {
			result = append(result, task.Title)
		}

		return result
	}

	all, err := srv.List(ctx, userID, usecase.ListTasksInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"today", "tenth night", "tenth morning", "february"}, titles(all))
	assert.EqualValues(t, 4, all.Total)

	byDate, err := srv.List(ctx, userID, usecase.ListTasksInput{Date: "2024-03-10", Month: "2024-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenth night", "tenth morning"}, titles(byDate))

	byStatus, err := srv.List(ctx, userID, usecase.ListTasksInput{Date: "2024-03-10", Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenth morning"}, titles(byStatus))

	byMonth, err := srv.List(ctx, userID, usecase.ListTasksInput{Month: "2024-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"february"}, titles(byMonth))

	today, err := srv.List(ctx, userID, usecase.ListTasksInput{DayGroup: "today"})
	require.NoError(t, err)
	assert.Equal(t, []string{"today"}, titles(today))

	week, err := srv.List(ctx, userID, usecase.ListTasksInput{DayGroup: "week"})
	require.NoError(t, err)
	assert.Equal(t, []string{"today", "tenth night", "tenth morning"}, titles(week))

	page, err := srv.List(ctx, userID, usecase.ListTasksInput{Skip: intPtr(1), Limit: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenth night", "tenth morning"}, titles(page))
	assert.EqualValues(t, 4, page.Total)

	ignored, err := srv.List(ctx, userID, usecase.ListTasksInput{Month: "garbage"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, ignored.Total)
}

func TestTaskService_List_UnknownStatus(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	uc, err := NewTaskService(TaskServiceParams{TxManager: txManager, Config: newTestConfig(), Logger: newDiscardLogger()})
	require.NoError(t, err)

	for _, status := range []string{"bogus", "DONE", "archived"} {
		t.Run(status, func(t *testing.T) {
			output, err := uc.List(context.Background(), uuid.New(), usecase.ListTasksInput{Status: status})

			assert.Nil(t, output)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
	txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestTaskService_List_BuildsOwnerScopedFilter(t *testing.T) {
	srv, _, taskRepo := createTestTaskServiceWithMocks(t)
	ctx := context.Background()
	userID := uuid.New()
	srv.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	taskRepo.EXPECT().
		List(ctx, mock.AnythingOfType("repository.TaskFilter")).
		Run(func(_ context.Context, filter repository.TaskFilter) {
			assert.Equal(t, userID, filter.UserID)
			assert.Equal(t, 0, filter.Offset)
			assert.Equal(t, 1000, filter.Limit)
			require.NotNil(t, filter.Status)
			assert.Equal(t, entity.TaskStatusPending, *filter.Status)
			require.NotNil(t, filter.CreatedFrom)
			assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), *filter.CreatedFrom)
			require.NotNil(t, filter.CreatedTo)
			assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *filter.CreatedTo)
		}).
		Return([]*entity.Task{}, int64(0), nil)

	_, err := srv.List(ctx, userID, usecase.ListTasksInput{
		Status:   "pending",
		DayGroup: "yesterday",
		Skip:     intPtr(-3),
		Limit:    intPtr(99999),
	})
	require.NoError(t, err)
}

func TestTaskService_AvailableMonthsDeduplicates(t *testing.T) {
	srv, _, taskRepo := createTestTaskServiceWithMocks(t)
	ctx := context.Background()
	userID := uuid.New()

	taskRepo.EXPECT().AvailableMonths(ctx, userID).Return([]string{"2024-03", "2024-03", "2024-01"}, nil)

	months, err := srv.AvailableMonths(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03", "2024-01"}, months)
}

func TestTaskService_AvailableDates(t *testing.T) {
	srv, _, taskRepo := createTestTaskServiceWithMocks(t)
	ctx := context.Background()
	userID := uuid.New()

	taskRepo.EXPECT().AvailableDates(ctx, userID).Return([]string{"2024-03-15", "2024-03-10"}, nil)

	dates, err := srv.AvailableDates(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15", "2024-03-10"}, dates)
}

func TestTaskService_StoreErrorsPropagate(t *testing.T) {
	srv, _, taskRepo := createTestTaskServiceWithMocks(t)
	ctx := context.Background()
	userID, taskID := uuid.New(), uuid.New()

	dbErr := domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "failed to delete task")
	taskRepo.EXPECT().DeleteByIDAndUser(ctx, taskID, userID).Return(false, dbErr)

	deleted, err := srv.Delete(ctx, userID, taskID)
	assert.False(t, deleted)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}
