package routes

import (
	"gigbud/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes mounts the /api/auth aliases onto the same unified
// controllers that serve /api/users; there is a single auth implementation.
func RegisterAuthRoutes(router *gin.Engine, userController *controllers.UserController, oauthController *controllers.OauthController, auth gin.HandlerFunc) {
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", userController.Register)
		authRoutes.POST("/login", userController.Login)
		authRoutes.POST("/google-login", oauthController.GoogleAuth)
	}
	authRoutesPrivate := router.Group("/api/auth")
	authRoutesPrivate.Use(auth)
	{
		authRoutesPrivate.GET("/verify", userController.Verify)
	}
}
