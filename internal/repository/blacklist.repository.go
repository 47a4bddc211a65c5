package repository

import (
	"time"

	"gigbud/internal/models"

	"gorm.io/gorm"
)

// BlacklistRepository holds revoked tokens until their natural expiry.
type BlacklistRepository interface {
	Add(token string, userID uint, expiresAt time.Time) error
	IsBlacklisted(token string, now time.Time) (bool, error)
}

type blacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &blacklistRepository{db: db}
}

func (br *blacklistRepository) Add(token string, userID uint, expiresAt time.Time) error {
	entry := models.BlacklistedToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	err := translate(br.db.Create(&entry).Error)
	if err == ErrDuplicate {
		// Logging out twice with the same token is harmless.
		return nil
	}
	return err
}

func (br *blacklistRepository) IsBlacklisted(token string, now time.Time) (bool, error) {
	var count int64
	err := br.db.Model(&models.BlacklistedToken{}).
		Where("token = ? AND expires_at > ?", token, now).
		Count(&count).Error
	return count > 0, translate(err)
}
