package routes

import (
	"gigbud/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController, auth gin.HandlerFunc) {
	userRoutesPublic := router.Group("/api/users")
	{
		userRoutesPublic.POST("/register", userController.Register)
		userRoutesPublic.POST("/login", userController.Login)
		userRoutesPublic.POST("/login/request", userController.RequestLoginOTP)
		userRoutesPublic.POST("/login/verify", userController.VerifyLoginOTP)
		userRoutesPublic.POST("/refresh-token", userController.RefreshToken)
		userRoutesPublic.POST("/logout", userController.Logout)
		userRoutesPublic.POST("/verify-email", userController.VerifyEmail)
		userRoutesPublic.POST("/verify-phone", userController.VerifyPhone)
	}
	userRoutesPrivate := router.Group("/api/users")
	userRoutesPrivate.Use(auth)
	{
		userRoutesPrivate.GET("/me", userController.GetCurrentUser)
		userRoutesPrivate.PUT("/me", userController.UpdateCurrentUser)
		userRoutesPrivate.GET("/profile/:id", userController.GetProfile)
	}
}
