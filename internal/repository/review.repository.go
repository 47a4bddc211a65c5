package repository

import (
	"gigbud/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindBySubject(userID uint) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (rr *reviewRepository) Create(review *models.Review) error {
	return translate(rr.db.Create(review).Error)
}

func (rr *reviewRepository) FindBySubject(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := rr.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, translate(err)
}
