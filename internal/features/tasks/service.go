package tasks

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/gotasks/internal/pkg/logger"
	apperrors "github.com/xyz-asif/gotasks/pkg/errors"
)

// ErrUnknownCategory is returned when a client references a category id
// that does not exist.
var ErrUnknownCategory = errors.New("category does not exist")

// Store is the task persistence surface the service needs
type Store interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id, userID string) (*Task, error)
	Update(ctx context.Context, id, userID string, update bson.M) error
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, query bson.M, skip, limit int64) ([]Task, error)
	Count(ctx context.Context, query bson.M) (int64, error)
	SetCompletion(ctx context.Context, id, userID string, completed bool, completedAt *time.Time) error
}

// CategoryRef identifies a resolved category
type CategoryRef struct {
	ID   primitive.ObjectID
	Name string
}

// CategoryResolver looks up a category by id. Not found is nil, nil.
type CategoryResolver interface {
	ResolveCategory(ctx context.Context, id string) (*CategoryRef, error)
}

// Service enforces ownership scoping and performs the log-then-mutate
// sequence around every write.
type Service struct {
	store      Store
	categories CategoryResolver
	log        *logger.Logger
}

func NewService(store Store, categories CategoryResolver, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		categories: categories,
		log:        log,
	}
}

// List returns one page of the requester's tasks plus the filtered total
func (s *Service) List(ctx context.Context, userID string, filter Filter, skip, limit int64) ([]Task, int64, error) {
	query := BuildQuery(userID, filter.Clauses())

	total, err := s.store.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	tasks, err := s.store.List(ctx, query, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	s.log.Info("TASKS_FETCHED: Count=%d | User=%s", total, userID)
	return tasks, total, nil
}

// ListAll returns the requester's full filtered result set, unpaginated
func (s *Service) ListAll(ctx context.Context, userID string, filter Filter) ([]Task, error) {
	query := BuildQuery(userID, filter.Clauses())

	tasks, err := s.store.List(ctx, query, 0, 0)
	if err != nil {
		return nil, err
	}

	s.log.Info("MY_TASKS: Count=%d | User=%s", len(tasks), userID)
	return tasks, nil
}

// Get fetches one task scoped to its owner. ErrNotFound covers both a
// missing task and someone else's task.
func (s *Service) Get(ctx context.Context, id, userID string) (*Task, error) {
	task, err := s.store.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.ErrNotFound
	}
	return task, nil
}

// Create persists a new task for its owner. categoryRef, when non-nil,
// must resolve to an existing category.
func (s *Service) Create(ctx context.Context, task *Task, categoryRef *string) error {
	if categoryRef != nil && *categoryRef != "" {
		ref, err := s.categories.ResolveCategory(ctx, *categoryRef)
		if err != nil {
			return err
		}
		if ref == nil {
			return ErrUnknownCategory
		}
		task.CategoryID = &ref.ID
		task.CategoryName = ref.Name
	}

	s.log.Info("TASK CREATED: '%s' by user %s", task.Title, task.UserID)
	return s.store.Create(ctx, task)
}

// Update applies a partial update and returns the updated task.
// A categoryRef of empty string clears the category.
func (s *Service) Update(ctx context.Context, id, userID string, update bson.M, categoryRef *string) (*Task, error) {
	if categoryRef != nil {
		if *categoryRef == "" {
			update["categoryId"] = nil
			update["category"] = nil
		} else {
			ref, err := s.categories.ResolveCategory(ctx, *categoryRef)
			if err != nil {
				return nil, err
			}
			if ref == nil {
				return nil, ErrUnknownCategory
			}
			update["categoryId"] = ref.ID
			update["category"] = ref.Name
		}
	}

	if len(update) == 0 {
		return s.Get(ctx, id, userID)
	}

	s.log.Info("TASK UPDATED: ID=%s | User=%s", id, userID)
	if err := s.store.Update(ctx, id, userID, update); err != nil {
		return nil, err
	}

	return s.Get(ctx, id, userID)
}

// Delete removes a task permanently after writing the audit line
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	task, err := s.store.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if task == nil {
		return apperrors.ErrNotFound
	}

	s.log.Warn("TASK DELETED: ID=%s | Title='%s' | User=%s", id, task.Title, userID)
	return s.store.Delete(ctx, id, userID)
}

// ToggleComplete flips the completion state, stamping completedAt on the
// way in and clearing it on the way out. Only those two fields are written.
func (s *Service) ToggleComplete(ctx context.Context, id, userID string) (*Task, error) {
	task, err := s.store.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.ErrNotFound
	}

	previous := task.Completed
	task.Completed = !task.Completed
	if task.Completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	s.log.Info("TOGGLE COMPLETE: Task ID=%s | From %t to %t", id, previous, task.Completed)
	if err := s.store.SetCompletion(ctx, id, userID, task.Completed, task.CompletedAt); err != nil {
		return nil, err
	}

	return task, nil
}
