package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gigbud/internal/controllers"
	"gigbud/internal/mocks"
	"gigbud/internal/models"
	"gigbud/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupReviewController() (*controllers.ReviewController, *mocks.MockReviewRepository, *mocks.MockUserRepository) {
	reviewRepo := new(mocks.MockReviewRepository)
	userRepo := new(mocks.MockUserRepository)
	return controllers.NewReviewController(reviewRepo, userRepo), reviewRepo, userRepo
}

func TestSubmitReview(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMocks     func(*mocks.MockReviewRepository, *mocks.MockUserRepository)
		expectedStatus int
	}{
		{
			name: "valid review records the caller as reviewer",
			requestBody: map[string]interface{}{
				"rating":      4,
				"description": "Quick and tidy work",
			},
			setupMocks: func(reviewRepo *mocks.MockReviewRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByID", uint(2)).Return(&models.User{ID: 2}, nil)
				reviewRepo.On("Create", mock.AnythingOfType("*models.Review")).
					Run(func(args mock.Arguments) {
						review := args.Get(0).(*models.Review)
						assert.Equal(t, uint(2), review.UserID)
						assert.Equal(t, uint(7), review.ReviewerID)
						assert.Equal(t, 4, review.Rating)
					}).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rating zero is out of range",
			requestBody:    map[string]interface{}{"rating": 0},
			setupMocks:     func(reviewRepo *mocks.MockReviewRepository, userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rating six is out of range",
			requestBody:    map[string]interface{}{"rating": 6},
			setupMocks:     func(reviewRepo *mocks.MockReviewRepository, userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "unknown subject is 404",
			requestBody: map[string]interface{}{"rating": 5},
			setupMocks: func(reviewRepo *mocks.MockReviewRepository, userRepo *mocks.MockUserRepository) {
				userRepo.On("FindByID", uint(2)).Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, reviewRepo, userRepo := setupReviewController()
			tt.setupMocks(reviewRepo, userRepo)

			router := setupUserTestRouter()
			router.POST("/api/reviews/review/:userId", addAuthContext(7), controller.SubmitReview)

			w, env := doJSON(t, router, http.MethodPost, "/api/reviews/review/2", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedStatus == http.StatusCreated, env.Success)
			if tt.expectedStatus != http.StatusCreated {
				reviewRepo.AssertNotCalled(t, "Create", mock.Anything)
			}
			reviewRepo.AssertExpectations(t)
		})
	}
}

func TestListReviews(t *testing.T) {
	t.Run("returns the subject's reviews", func(t *testing.T) {
		controller, reviewRepo, _ := setupReviewController()
		reviewRepo.On("FindBySubject", uint(2)).
			Return([]models.Review{{ID: 1, UserID: 2, ReviewerID: 7, Rating: 5, Description: "Great"}}, nil)

		router := setupUserTestRouter()
		router.GET("/api/reviews/reviews/:userId", addAuthContext(7), controller.ListReviews)

		req := httptest.NewRequest(http.MethodGet, "/api/reviews/reviews/2", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Great")
	})

	t.Run("non-numeric subject id", func(t *testing.T) {
		controller, _, _ := setupReviewController()

		router := setupUserTestRouter()
		router.GET("/api/reviews/reviews/:userId", addAuthContext(7), controller.ListReviews)

		req := httptest.NewRequest(http.MethodGet, "/api/reviews/reviews/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
