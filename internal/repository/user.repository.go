package repository

import (
	"time"

	"gigbud/internal/models"

	"gorm.io/gorm"
)

// UserRepository persists user accounts. OTP mutation is a single guarded
// UPDATE so a validated code can never be consumed twice.
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
	Patch(id uint, data map[string]interface{}) error
	SetOTP(email, code string, expiresAt time.Time) error
	ConsumeOTP(email, code string, now time.Time) (bool, error)
	UpdateLocation(id uint, lat, lng float64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (ur *userRepository) Create(user *models.User) error {
	return translate(ur.db.Create(user).Error)
}

func (ur *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := ur.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := ur.db.First(&user, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (ur *userRepository) Update(user *models.User) error {
	return translate(ur.db.Save(user).Error)
}

func (ur *userRepository) Patch(id uint, data map[string]interface{}) error {
	result := ur.db.Model(&models.User{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOTP overwrites any unconsumed code for the address; there is no queue
// of pending codes.
func (ur *userRepository) SetOTP(email, code string, expiresAt time.Time) error {
	result := ur.db.Model(&models.User{}).Where("email = ?", email).Updates(map[string]interface{}{
		"otp":            code,
		"otp_expires_at": expiresAt,
	})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeOTP clears the stored code only where it matches and has not
// expired, in one statement. Returns false when nothing matched, which
// covers wrong code, expired code and already-consumed code alike.
func (ur *userRepository) ConsumeOTP(email, code string, now time.Time) (bool, error) {
	result := ur.db.Model(&models.User{}).
		Where("email = ? AND otp = ? AND otp <> '' AND otp_expires_at > ?", email, code, now).
		Updates(map[string]interface{}{
			"otp":            "",
			"otp_expires_at": nil,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (ur *userRepository) UpdateLocation(id uint, lat, lng float64) error {
	result := ur.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"latitude":  lat,
		"longitude": lng,
	})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
