package controllers

import (
	"net/http"
	"strconv"

	"gigbud/internal/models"
	"gigbud/internal/repository"
	"gigbud/internal/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

func NewReviewController(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) *ReviewController {
	return &ReviewController{reviewRepo: reviewRepo, userRepo: userRepo}
}

type submitReviewRequest struct {
	Rating      int    `json:"rating" binding:"required"`
	Description string `json:"description"`
}

// SubmitReview godoc
// @Summary Review a user
// @Tags reviews
// @Accept json
// @Produce json
// @Param userId path int true "Subject user ID"
// @Param review body submitReviewRequest true "Review details"
// @Success 201 {object} map[string]interface{} "Review created"
// @Failure 400 {object} map[string]interface{} "Rating out of range"
// @Router /api/reviews/review/{userId} [post]
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	subjectID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		respondError(c, services.NewValidationError([]string{"userId must be a valid positive integer"}))
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(c, services.NewValidationError([]string{"rating must be between 1 and 5"}))
		return
	}

	if _, err := rc.userRepo.FindByID(uint(subjectID)); err != nil {
		respondError(c, services.ErrNotFound)
		return
	}

	review := &models.Review{
		UserID:      uint(subjectID),
		ReviewerID:  callerID(c),
		Rating:      req.Rating,
		Description: req.Description,
	}
	if err := rc.reviewRepo.Create(review); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Review submitted successfully", review)
}

// ListReviews returns the reviews about a user, newest first.
func (rc *ReviewController) ListReviews(c *gin.Context) {
	subjectID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		respondError(c, services.NewValidationError([]string{"userId must be a valid positive integer"}))
		return
	}

	reviews, err := rc.reviewRepo.FindBySubject(uint(subjectID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}
