package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/config"
	authControllers "github.com/kmart-dev/kmart-api/controllers/auth"
	"github.com/kmart-dev/kmart-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", authControllers.Register(db, cfg.JWTSecret, cfg.JWTRefreshSecret))
		auth.POST("/login", authControllers.Login(db, cfg.JWTSecret, cfg.JWTRefreshSecret))
		auth.POST("/social-login", authControllers.SocialLogin(db, cfg.JWTSecret, cfg.JWTRefreshSecret))
		auth.POST("/forgot-password", authControllers.ForgotPassword(db))
		auth.POST("/reset-password", authControllers.ResetPassword(db))
		auth.POST("/verify-email", authControllers.VerifyEmail(db))

		auth.GET("/profile", middleware.ValidateToken(cfg.JWTSecret), authControllers.GetProfile(db))
	}
}
