// ================== internal/features/auth/routes.go ==================
package auth

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/xyz-asif/gotasks/internal/config"
	"github.com/xyz-asif/gotasks/internal/middleware"
	"github.com/xyz-asif/gotasks/internal/pkg/logger"
	"github.com/xyz-asif/gotasks/internal/pkg/token"
)

// RegisterRoutes registers the auth endpoints directly under the API group,
// mirroring the accounts URL layout of the frontend contract.
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, log *logger.Logger) {
	users := NewRepository(db)
	blacklist := NewBlacklistRepository(db)
	tokens := token.NewConfig(cfg.JWTSecret, cfg.JWTAccessExpireHours, cfg.JWTRefreshExpireDays)

	handler := NewHandler(users, blacklist, tokens, log.Named("auth"))

	router.POST("/register/", handler.Register)
	router.POST("/login/", handler.Login)
	router.POST("/refresh/", handler.Refresh)
	router.GET("/check-auth/", middleware.Auth(cfg), handler.CheckAuth)
	router.POST("/logout/", middleware.Auth(cfg), handler.Logout)
}
