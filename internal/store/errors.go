package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a write violates a unique index,
// e.g. registering an email that is already in use.
var ErrDuplicate = errors.New("already exists")

// mapWriteError folds Mongo duplicate-key failures into ErrDuplicate.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
