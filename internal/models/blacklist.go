package models

import "time"

// BlacklistedToken is a revoked JWT. A row whose expires_at is still in the
// future vetoes the token regardless of its cryptographic validity. Expired
// rows are dead weight until an external cleanup removes them.
type BlacklistedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex" json:"-"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
