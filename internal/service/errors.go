package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means a referenced entity ID does not exist. Single-entity
	// reads surface it; batch operations skip and continue.
	ErrNotFound = errors.New("record not found")

	// ErrValidation means caller-supplied values violate a precondition and
	// nothing was persisted.
	ErrValidation = errors.New("validation failed")

	// ErrDataIntegrity means a join target is missing where the relational
	// model assumes it must exist.
	ErrDataIntegrity = errors.New("data integrity fault")
)

// wrapNotFound translates gorm's record-not-found into the service taxonomy.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
