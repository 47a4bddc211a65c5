package models

// Location reference entry types.
const (
	LocationTypeCity    = "city"
	LocationTypeCollege = "college"
)

// Location is read-only reference data (cities and colleges) used by the
// prefix search endpoint. Seeded once by cmd/seed.
type Location struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"index" json:"name" example:"Delhi"`
	Type string `json:"type" example:"city"`
}
