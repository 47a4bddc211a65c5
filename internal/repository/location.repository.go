package repository

import (
	"gigbud/internal/models"

	"gorm.io/gorm"
)

// LocationRepository reads the seeded city/college reference table.
type LocationRepository interface {
	Create(location *models.Location) error
	SearchByPrefix(prefix string, limit int) ([]models.Location, error)
	Count() (int64, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (lr *locationRepository) Create(location *models.Location) error {
	return translate(lr.db.Create(location).Error)
}

func (lr *locationRepository) SearchByPrefix(prefix string, limit int) ([]models.Location, error) {
	var locations []models.Location
	err := lr.db.Where("name ILIKE ?", prefix+"%").
		Order("name ASC").
		Limit(limit).
		Find(&locations).Error
	return locations, translate(err)
}

func (lr *locationRepository) Count() (int64, error) {
	var count int64
	err := lr.db.Model(&models.Location{}).Count(&count).Error
	return count, translate(err)
}
