package controllers

import (
	"errors"
	"net/http"

	"gigbud/internal/repository"
	"gigbud/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	publisher        services.NotificationPublisher
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationController(
	publisher services.NotificationPublisher,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *NotificationController {
	return &NotificationController{
		publisher:        publisher,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

type notifyRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// NotifyUser publishes an email notification for asynchronous delivery. The
// worker sends the mail and appends the audit row.
func (nc *NotificationController) NotifyUser(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	recipient, err := nc.userRepo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, services.ErrNotFound)
			return
		}
		respondError(c, err)
		return
	}

	msg := services.NotificationMessage{
		UserID:  recipient.ID,
		Email:   recipient.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := nc.publisher.Publish(msg); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Notification queued successfully", nil)
}

// ListNotifications returns the caller's notification audit trail.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	notifications, err := nc.notificationRepo.FindByUser(callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Notifications retrieved successfully", notifications)
}
