package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrCategoryHasProducts = errors.New("category has products")
	ErrCategoryMissing     = errors.New("category does not exist")
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
