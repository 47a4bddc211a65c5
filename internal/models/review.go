package models

import (
	"time"

	"gorm.io/gorm"
)

// @description Review left by one user about another
type Review struct {
	ID          uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID      uint           `gorm:"index" json:"user_id"`
	ReviewerID  uint           `gorm:"index" json:"reviewer_id"`
	Rating      int            `json:"rating" example:"5"`
	Description string         `json:"description"`
}
