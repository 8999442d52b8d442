// ================== internal/features/tasks/handler.go ==================
package tasks

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/xyz-asif/gotasks/internal/pkg/pagination"
	"github.com/xyz-asif/gotasks/internal/pkg/response"
	apperrors "github.com/xyz-asif/gotasks/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List tasks
// @Description Paginated list of the authenticated user's tasks with filtering and search
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param completed query bool false "Filter by completion status"
// @Param created_at query string false "Filter by creation date (YYYY-MM-DD)"
// @Param due_date_before query string false "Due date upper bound (YYYY-MM-DD)"
// @Param due_date_after query string false "Due date lower bound (YYYY-MM-DD)"
// @Param priority query string false "Filter by priority" Enums(low, medium, high)
// @Param search query string false "Case-insensitive search over title and description"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} pagination.Page
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.DetailResponse
// @Router /tasks/ [get]
func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	filter := FilterFromQuery(c.Request.URL.Query())
	params := pagination.FromRequest(c.Query("page"), c.Query("page_size"))

	taskList, total, err := h.service.List(
		c.Request.Context(), userID, filter,
		int64(params.Offset()), int64(params.PageSize),
	)
	if err != nil {
		response.InternalServerError(c, "Failed to get tasks")
		return
	}

	if !params.Valid(total) {
		c.JSON(http.StatusNotFound, response.DetailResponse{Detail: "Invalid page."})
		return
	}

	page := pagination.NewPage(requestURL(c), params, total, ToResponses(taskList))
	c.JSON(http.StatusOK, page)
}

// MyTasks godoc
// @Summary List all own tasks
// @Description Unpaginated list of the authenticated user's tasks with the same filters as the paginated list
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TaskResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /tasks/my-tasks/ [get]
func (h *Handler) MyTasks(c *gin.Context) {
	userID := c.GetString("userID")

	filter := FilterFromQuery(c.Request.URL.Query())

	taskList, err := h.service.ListAll(c.Request.Context(), userID, filter)
	if err != nil {
		response.InternalServerError(c, "Failed to get tasks")
		return
	}

	c.JSON(http.StatusOK, ToResponses(taskList))
}

// Create godoc
// @Summary Create a task
// @Description Create a new task owned by the authenticated user
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task creation data"
// @Success 201 {object} TaskResponse
// @Failure 400 {object} response.FieldErrors
// @Failure 401 {object} response.ErrorResponse
// @Router /tasks/ [post]
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if errs := ValidateCreateTask(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	task := &Task{
		UserID:   userID,
		Title:    req.Title,
		Priority: req.Priority,
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, _ := time.Parse(DateFormat, *req.DueDate)
		task.DueDate = &due
	}

	if err := h.service.Create(c.Request.Context(), task, req.Category); err != nil {
		if errors.Is(err, ErrUnknownCategory) {
			response.ValidationFailed(c, categoryFieldError(req.Category))
			return
		}
		response.InternalServerError(c, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task.ToResponse())
}

// Get godoc
// @Summary Get a task
// @Description Get one of the authenticated user's tasks by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id}/ [get]
func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.service.Get(c.Request.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Task not found")
			return
		}
		response.InternalServerError(c, "Failed to get task")
		return
	}

	c.JSON(http.StatusOK, task.ToResponse())
}

// Update godoc
// @Summary Update a task
// @Description Partially update one of the authenticated user's tasks. Ownership, completion state and timestamps are immutable.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} response.FieldErrors
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id}/ [patch]
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if errs := ValidateUpdateTask(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	// Only client-writable fields enter the update document
	update := bson.M{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Priority != nil {
		update["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update["dueDate"] = nil
		} else {
			due, _ := time.Parse(DateFormat, *req.DueDate)
			update["dueDate"] = due
		}
	}

	task, err := h.service.Update(c.Request.Context(), taskID, userID, update, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownCategory):
			response.ValidationFailed(c, categoryFieldError(req.Category))
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Task not found")
		default:
			response.InternalServerError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, task.ToResponse())
}

// Delete godoc
// @Summary Delete a task
// @Description Permanently delete one of the authenticated user's tasks
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id}/ [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), taskID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Task not found")
			return
		}
		response.InternalServerError(c, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleComplete godoc
// @Summary Toggle completion
// @Description Flip a task between pending and completed, stamping completed_at
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} ToggleResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id}/toggle-complete/ [post]
func (h *Handler) ToggleComplete(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	task, err := h.service.ToggleComplete(c.Request.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Task not found")
			return
		}
		response.InternalServerError(c, "Failed to toggle task")
		return
	}

	state := "pending"
	if task.Completed {
		state = "completed"
	}

	c.JSON(http.StatusOK, ToggleResponse{
		Status:    "success",
		Completed: task.Completed,
		Message:   fmt.Sprintf("Task marked as %s", state),
	})
}

func categoryFieldError(ref *string) response.FieldErrors {
	id := ""
	if ref != nil {
		id = *ref
	}
	return response.FieldErrors{
		"category": {fmt.Sprintf("Invalid pk %q - object does not exist.", id)},
	}
}

// requestURL rebuilds the absolute request URL for pagination links
func requestURL(c *gin.Context) *url.URL {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: c.Request.URL.RawQuery,
	}
}
