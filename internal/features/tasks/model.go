// ================== internal/features/tasks/model.go ==================
package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority levels for a task
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Wire formats for timestamps and dates
const (
	TimestampFormat = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
)

// Task represents one to-do item owned by exactly one user. The category
// name is denormalized next to the id; categories cannot be renamed, so the
// copy can only go stale by deletion, which unsets both fields.
type Task struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	UserID       string              `bson:"userId"`
	Title        string              `bson:"title"`
	Description  string              `bson:"description"`
	Completed    bool                `bson:"completed"`
	Priority     string              `bson:"priority"`
	DueDate      *time.Time          `bson:"dueDate,omitempty"`
	CompletedAt  *time.Time          `bson:"completedAt,omitempty"`
	CategoryID   *primitive.ObjectID `bson:"categoryId,omitempty"`
	CategoryName string              `bson:"category,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt"`
}

// TaskResponse is the JSON representation of a task
type TaskResponse struct {
	ID          string  `json:"id" example:"507f1f77bcf86cd799439011"`
	Title       string  `json:"title" example:"Buy groceries"`
	Description string  `json:"description" example:"Get milk, bread, and eggs"`
	Completed   bool    `json:"completed" example:"false"`
	CreatedAt   string  `json:"created_at" example:"2023-01-01 00:00:00"`
	User        string  `json:"user" example:"507f1f77bcf86cd799439011"`
	Category    *string `json:"category"`
	Priority    string  `json:"priority" example:"medium" enums:"low,medium,high"`
	DueDate     *string `json:"due_date" example:"2023-12-31"`
	CompletedAt *string `json:"completed_at,omitempty" example:"2023-01-02 10:30:00"`
}

// ToResponse converts a task to its wire representation
func (t *Task) ToResponse() TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(TimestampFormat),
		User:        t.UserID,
		Priority:    t.Priority,
	}

	if t.CategoryID != nil {
		name := t.CategoryName
		resp.Category = &name
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(DateFormat)
		resp.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := t.CompletedAt.Format(TimestampFormat)
		resp.CompletedAt = &done
	}

	return resp
}

// ToResponses converts a slice of tasks, never returning nil so empty
// lists serialize as [] rather than null.
func ToResponses(tasks []Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, tasks[i].ToResponse())
	}
	return responses
}

// CreateTaskRequest represents task creation data. Description is a pointer
// so a provided-but-blank value can be rejected while an omitted one passes.
type CreateTaskRequest struct {
	Title       string  `json:"title" example:"Buy groceries"`
	Description *string `json:"description" example:"Get milk, bread, and eggs"`
	Priority    string  `json:"priority" example:"medium" enums:"low,medium,high"`
	DueDate     *string `json:"due_date" example:"2023-12-31"`
	Category    *string `json:"category" example:"507f1f77bcf86cd799439011"`
}

// UpdateTaskRequest represents a partial update. Only set fields are applied;
// ownership, completion state and timestamps are not client-writable.
type UpdateTaskRequest struct {
	Title       *string `json:"title" example:"Buy groceries"`
	Description *string `json:"description" example:"Get milk, bread, and eggs"`
	Priority    *string `json:"priority" example:"high" enums:"low,medium,high"`
	DueDate     *string `json:"due_date" example:"2023-12-31"`
	Category    *string `json:"category" example:"507f1f77bcf86cd799439011"`
}

// ToggleResponse is returned by the toggle-complete action
type ToggleResponse struct {
	Status    string `json:"status" example:"success"`
	Completed bool   `json:"completed"`
	Message   string `json:"message" example:"Task marked as completed"`
}
