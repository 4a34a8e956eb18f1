package api

import (
	"errors"

	taskdomain "github.com/example/task-service/domain/task"
	"github.com/example/task-service/modules/cache"
	taskmod "github.com/example/task-service/modules/task"
	"github.com/gofiber/fiber/v2"
)

const defaultListLimit = 100

// Handlers contains the HTTP handlers for the task API.
type Handlers struct {
	service *taskmod.Service
	cache   *cache.Cache
}

// NewHandlers creates a new Handlers instance. The cache may be nil, in
// which case the cache stats endpoints report it as disabled.
func NewHandlers(service *taskmod.Service, c *cache.Cache) *Handlers {
	return &Handlers{
		service: service,
		cache:   c,
	}
}

// CreateTask handles POST /tasks/. The body must be a task that passes
// every validation rule; all violations are reported together. A taken
// task_id yields 409.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var t taskdomain.Task
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := t.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	rec, err := h.service.Create(c.UserContext(), &t)
	if err != nil {
		if errors.Is(err, taskdomain.ErrDuplicateID) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Error:   "duplicate_id",
				Message: "Task id already exists",
			})
		}
		return err
	}

	return c.JSON(taskmod.NewTaskResponse(rec))
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return invalidTaskID(c)
	}

	rec, err := h.service.GetByID(c.UserContext(), uint(id))
	if err != nil {
		return err
	}
	if rec == nil {
		return taskNotFound(c)
	}

	return c.JSON(taskmod.NewTaskResponse(rec))
}

// ListTasks handles GET /tasks/ with skip and limit pagination.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", defaultListLimit)

	if skip < 0 || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "skip and limit must not be negative",
		})
	}

	recs, err := h.service.List(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}

	return c.JSON(taskmod.NewListTasksResponse(recs))
}

// UpdateTask handles PUT /tasks/:id. The body replaces every mutable field
// of the stored record; created_at and task_id are preserved.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return invalidTaskID(c)
	}

	var t taskdomain.Task
	if err := c.BodyParser(&t); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	if err := t.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	rec, err := h.service.Update(c.UserContext(), uint(id), &t)
	if err != nil {
		return err
	}
	if rec == nil {
		return taskNotFound(c)
	}

	return c.JSON(taskmod.NewTaskResponse(rec))
}

// DeleteTask handles DELETE /tasks/:id, returning the deleted record's
// last state.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return invalidTaskID(c)
	}

	rec, err := h.service.Delete(c.UserContext(), uint(id))
	if err != nil {
		return err
	}
	if rec == nil {
		return taskNotFound(c)
	}

	return c.JSON(taskmod.NewTaskResponse(rec))
}

// GetCacheStats handles GET /cache/stats.
func (h *Handlers) GetCacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"enabled": false})
	}
	return c.JSON(fiber.Map{
		"enabled": true,
		"stats":   h.cache.Stats(),
	})
}

// ResetCacheStats handles POST /cache/stats/reset.
func (h *Handlers) ResetCacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"enabled": false})
	}
	h.cache.ResetStats()
	return c.JSON(fiber.Map{"message": "Cache statistics reset"})
}

func invalidTaskID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid task id",
	})
}

func taskNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: "Task not found",
	})
}
