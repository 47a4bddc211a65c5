package routes

import (
	"gigbud/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(router *gin.Engine, taskController *controllers.TaskController, auth gin.HandlerFunc) {
	taskRoutes := router.Group("/api/tasks")
	taskRoutes.Use(auth)
	{
		taskRoutes.POST("/task/create", taskController.CreateTask)
		taskRoutes.GET("/task/list", taskController.ListOwnTasks)
		taskRoutes.GET("/task/available", taskController.AvailableTasks)
		taskRoutes.GET("/task/provider", taskController.ProviderTasks)
		taskRoutes.GET("/task/applied", taskController.AppliedTasks)
		taskRoutes.GET("/task/saved", taskController.SavedTasks)
		taskRoutes.GET("/task/ongoing", taskController.OngoingTasks)
		taskRoutes.GET("/task/completed", taskController.CompletedTasks)
		taskRoutes.GET("/task/:id", taskController.GetTask)
		taskRoutes.POST("/task/apply/:id", taskController.ApplyForTask)
		taskRoutes.POST("/task/save/:id", taskController.SaveTask)
		taskRoutes.POST("/task/accept/:id", taskController.AcceptTask)
		taskRoutes.POST("/task/ongoing/:id", taskController.MarkOngoing)
		taskRoutes.POST("/task/complete/:id", taskController.CompleteTask)
		taskRoutes.DELETE("/task/delete/:id", taskController.DeleteTask)
	}
}
