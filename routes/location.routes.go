package routes

import (
	"gigbud/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterLocationRoutes(router *gin.Engine, locationController *controllers.LocationController, auth gin.HandlerFunc) {
	locationRoutes := router.Group("/api/locations")
	locationRoutes.Use(auth)
	{
		locationRoutes.GET("/tasks/nearby", locationController.NearbyTasks)
		locationRoutes.POST("/location/update", locationController.UpdateLocation)
		locationRoutes.GET("/search", locationController.Search)
	}
}
