package repository

import (
	"errors"

	"gorm.io/gorm"
)

// translate maps GORM's record-not-found error onto the entity's sentinel.
func translate(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
