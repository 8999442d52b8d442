// ================== internal/features/categories/routes.go ==================
package categories

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/middleware"
	"github.com/xyz-asif/gotasks/internal/pkg/logger"
)

// RegisterRoutes mounts the category endpoints under /categories. tasks is
// the adapter that unlinks deleted categories from referencing tasks.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, log *logger.Logger, tasks TaskUnlinker) {
	repo := NewRepository(db)
	service := NewService(repo, tasks, log.Named("categories"))
	handler := NewHandler(service)

	group := router.Group("/categories")
	group.Use(middleware.Auth(cfg))
	{
		group.POST("/", handler.Create)
		group.GET("/", handler.List)
		group.GET("/all/", handler.List)
		group.DELETE("/:id/", handler.Delete)
		group.DELETE("/:id/delete/", handler.Delete)
	}
}
