package categories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/gotasks/internal/pkg/logger"
	apperrors "github.com/xyz-asif/gotasks/pkg/errors"
)

// Store is the category persistence surface the service needs
type Store interface {
	Create(ctx context.Context, category *Category) error
	ListAll(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TaskUnlinker nulls the category reference on every task pointing at the
// given category. Owned by the tasks feature, injected as an adapter.
type TaskUnlinker interface {
	UnlinkCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

type Service struct {
	store Store
	tasks TaskUnlinker
	log   *logger.Logger
}

func NewService(store Store, tasks TaskUnlinker, log *logger.Logger) *Service {
	return &Service{
		store: store,
		tasks: tasks,
		log:   log,
	}
}

// Create persists a new category
func (s *Service) Create(ctx context.Context, category *Category) error {
	s.log.Info("CATEGORY CREATED: '%s'", category.Name)
	return s.store.Create(ctx, category)
}

// List returns every category in insertion order
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.store.ListAll(ctx)
}

// Delete unlinks every referencing task, then removes the category.
// Tasks themselves are never deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	category, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperrors.ErrNotFound
	}

	s.log.Warn("CATEGORY DELETED: ID=%s | Name='%s'", category.ID.Hex(), category.Name)

	unlinked, err := s.tasks.UnlinkCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if unlinked > 0 {
		s.log.Info("CATEGORY UNLINKED: %d tasks released from '%s'", unlinked, category.Name)
	}

	return s.store.Delete(ctx, category.ID)
}

// isDuplicate reports whether err is a unique-name violation
func isDuplicate(err error) bool {
	return errors.Is(err, apperrors.ErrDuplicate)
}
