// ================== internal/features/tasks/routes.go ==================
package tasks

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/middleware"
	"github.com/xyz-asif/gotasks/internal/pkg/logger"
)

// RegisterRoutes mounts the task endpoints under /tasks. categories resolves
// category references owned by the categories feature.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, log *logger.Logger, categories CategoryResolver) {
	repo := NewRepository(db)
	service := NewService(repo, categories, log.Named("tasks"))
	handler := NewHandler(service)

	group := router.Group("/tasks")
	group.Use(middleware.Auth(cfg))
	{
		group.POST("/", handler.Create)
		group.GET("/", handler.List)
		group.GET("/my-tasks/", handler.MyTasks)
		group.GET("/:id/", handler.Get)
		group.PATCH("/:id/", handler.Update)
		group.PUT("/:id/", handler.Update)
		group.DELETE("/:id/", handler.Delete)
		group.POST("/:id/toggle-complete/", handler.ToggleComplete)
	}
}
