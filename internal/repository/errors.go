package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the referenced entity is absent
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a guarded stock decrement
	// matches no row, i.e. the requested quantity exceeds current stock
	ErrInsufficientStock = errors.New("insufficient stock")
)

// translate maps gorm errors to repository sentinels
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
