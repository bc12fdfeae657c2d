package database

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrUserNotFound  error = &storeError{kind: ErrNotFound, msg: "User not found."}
	ErrPostNotFound  error = &storeError{kind: ErrNotFound, msg: "Post not found."}
	ErrEmailTaken    error = &storeError{kind: ErrConflict, msg: "Email already registered."}
	ErrDuplicatePost error = &storeError{kind: ErrConflict, msg: "Post already exists."}
)

// storeError is a user-facing message classified as ErrNotFound or ErrConflict.
type storeError struct {
	kind error
	msg  string
}

func (e *storeError) Error() string { return e.msg }

func (e *storeError) Unwrap() error { return e.kind }

// translateError maps gorm's translated driver errors onto the store's taxonomy.
// A foreign key violation can only mean the referenced author is gone.
func translateError(err, notFound, conflict error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrUserNotFound
	}
	return err
}
