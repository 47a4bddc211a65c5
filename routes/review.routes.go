package routes

import (
	"gigbud/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterReviewRoutes(router *gin.Engine, reviewController *controllers.ReviewController, auth gin.HandlerFunc) {
	reviewRoutes := router.Group("/api/reviews")
	reviewRoutes.Use(auth)
	{
		reviewRoutes.POST("/review/:userId", reviewController.SubmitReview)
		reviewRoutes.GET("/reviews/:userId", reviewController.ListReviews)
	}
}
