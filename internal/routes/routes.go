package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/features/auth"
	"github.com/xyz-asif/gotasks/internal/features/categories"
	"github.com/xyz-asif/gotasks/internal/features/tasks"
	"github.com/xyz-asif/gotasks/internal/pkg/logger"
)

// taskCategoryResolverAdapter adapts categories.Repository to tasks.CategoryResolver
type taskCategoryResolverAdapter struct {
	repo *categories.Repository
}

func (a *taskCategoryResolverAdapter) ResolveCategory(ctx context.Context, id string) (*tasks.CategoryRef, error) {
	category, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return &tasks.CategoryRef{ID: category.ID, Name: category.Name}, nil
}

// categoryTaskUnlinkerAdapter adapts tasks.Repository to categories.TaskUnlinker
type categoryTaskUnlinkerAdapter struct {
	repo *tasks.Repository
}

func (a *categoryTaskUnlinkerAdapter) UnlinkCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return a.repo.UnlinkCategory(ctx, categoryID)
}

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	api := router.Group("/api")

	level := logger.INFO
	if cfg.AppEnv == "development" {
		level = logger.DEBUG
	}
	log := logger.New(level)

	// Repositories shared through cross-feature adapters
	categoriesRepo := categories.NewRepository(db)
	tasksRepo := tasks.NewRepository(db)

	categoryResolver := &taskCategoryResolverAdapter{repo: categoriesRepo}
	taskUnlinker := &categoryTaskUnlinkerAdapter{repo: tasksRepo}

	// Register feature routes
	auth.RegisterRoutes(api, db, cfg, log)
	tasks.RegisterRoutes(api, db, cfg, log, categoryResolver)
	categories.RegisterRoutes(api, db, cfg, log, taskUnlinker)
}
