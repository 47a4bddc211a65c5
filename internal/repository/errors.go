package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Storage-level sentinel errors. GORM implementations translate driver
// errors into these so the service layer never depends on ORM error types.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
