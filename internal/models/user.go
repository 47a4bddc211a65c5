package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values a user account can carry.
const (
	RoleBuyer    = "buyer"
	RoleProvider = "provider"
	RoleUser     = "user"
)

// @description User account with profile, location and transient OTP state
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	Name          string         `json:"name" example:"John Doe"`
	Email         string         `gorm:"uniqueIndex" json:"email" example:"john@example.com"`
	Password      string         `json:"-"`
	Role          string         `gorm:"default:user" json:"role" example:"user"`
	Latitude      float64        `gorm:"default:0" json:"latitude"`
	Longitude     float64        `gorm:"default:0" json:"longitude"`
	OTP           string         `json:"-"`
	OTPExpiresAt  *time.Time     `json:"-"`
	Avatar        string         `json:"avatar"`
	Age           int            `json:"age"`
	Profession    string         `json:"profession"`
	Phone         string         `json:"phone"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	PhoneVerified bool           `gorm:"default:false" json:"phone_verified"`
	IsGoogleUser  bool           `gorm:"default:false" json:"is_google_user"`
}
