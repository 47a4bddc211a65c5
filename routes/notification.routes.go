package routes

import (
	"gigbud/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterNotificationRoutes(router *gin.Engine, notificationController *controllers.NotificationController, auth gin.HandlerFunc) {
	notificationRoutes := router.Group("/api/notifications")
	notificationRoutes.Use(auth)
	{
		notificationRoutes.POST("/notify/user", notificationController.NotifyUser)
		notificationRoutes.GET("/notifications", notificationController.ListNotifications)
	}
}
