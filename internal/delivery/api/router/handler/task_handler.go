package handler

import (
	"net/http"
	"strconv"
	"time"

	"todo/internal/delivery/api/middleware"
	"todo/internal/delivery/api/response"
	"todo/internal/domain/entity"
	domainerrors "todo/internal/domain/errors"
	"todo/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
}

// TaskHandler serves the /tasks routes. Every route runs behind AuthMiddleware.Authenticate.
type TaskHandler struct {
	taskUC usecase.TaskUsecase
}

// NewTaskHandler is the constructor for TaskHandler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
	}
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. Omitted fields keep their value.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
}

// TaskResponse is the JSON view of a task.
type TaskResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      entity.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UserID      *uuid.UUID        `json:"userId"`
}

// TaskListResponse is one page of tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int64          `json:"total"`
}

// List handles GET /tasks.
func (h *TaskHandler) List(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	output, err := h.taskUC.List(c.Request().Context(), userID, usecase.ListTasksInput{
		Status:   c.QueryParam("status"),
		Date:     c.QueryParam("date"),
		DayGroup: c.QueryParam("day_group"),
		Month:    c.QueryParam("month"),
		Skip:     queryInt(c, "skip"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	tasks := make([]TaskResponse, 0, len(output.Tasks))
	for _, task := range output.Tasks {
		tasks = append(tasks, toTaskResponse(task))
	}

	return response.Success(c, http.StatusOK, TaskListResponse{Tasks: tasks, Total: output.Total})
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var req CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskUC.Create(c.Request().Context(), userID, usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      toStatus(req.Status),
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toTaskResponse(task))
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	userID, taskID, err := taskScope(c)
	if err != nil {
		return err
	}

	task, err := h.taskUC.Get(c.Request().Context(), userID, taskID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /tasks/:id.
func (h *TaskHandler) Update(c echo.Context) error {
	userID, taskID, err := taskScope(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskUC.Update(c.Request().Context(), userID, taskID, usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      toStatus(req.Status),
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, taskID, err := taskScope(c)
	if err != nil {
		return err
	}

	deleted, err := h.taskUC.Delete(c.Request().Context(), userID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return domainerrors.ErrTaskNotFound
	}

	return response.NoContent(c)
}

// AvailableDates handles GET /tasks/dates.
func (h *TaskHandler) AvailableDates(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	dates, err := h.taskUC.AvailableDates(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string][]string{"dates": nonNil(dates)})
}

// AvailableMonths handles GET /tasks/months.
func (h *TaskHandler) AvailableMonths(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	months, err := h.taskUC.AvailableMonths(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string][]string{"months": nonNil(months)})
}

// taskScope resolves the caller and the :id path parameter. A malformed id cannot match any task.
func taskScope(c echo.Context) (userID, taskID uuid.UUID, err error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, domainerrors.ErrUnauthorized
	}

	taskID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domainerrors.ErrTaskNotFound
	}

	return userID, taskID, nil
}

// queryInt returns nil when the parameter is absent or not an integer.
func queryInt(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}

	return &v
}

func toStatus(raw *string) *entity.TaskStatus {
	if raw == nil {
		return nil
	}
	status := entity.TaskStatus(*raw)

	return &status
}

func toTaskResponse(task *entity.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UserID:      task.UserID,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
