package repository

import (
	"gigbud/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByUser(userID uint) ([]models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (nr *notificationRepository) Create(notification *models.Notification) error {
	return translate(nr.db.Create(notification).Error)
}

func (nr *notificationRepository) FindByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := nr.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, translate(err)
}
