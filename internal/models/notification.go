package models

import "time"

// Notification is an audit row appended by the notification worker after an
// email has been dispatched. The task lifecycle never reads it; only the
// per-user listing endpoint does.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
