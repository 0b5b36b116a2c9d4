// Package apperrors defines the error taxonomy shared by services and
// handlers. Services wrap these sentinels with context via fmt.Errorf and
// %w; handlers map them to HTTP status codes with errors.Is.
package apperrors

import "errors"

var (
	// ErrUnauthorized means no actor was supplied where one is required.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden means the actor is present but lacks permission.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound means the resource ID or slug does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint was violated
	// (duplicate email, tag name, or slug).
	ErrConflict = errors.New("already exists")

	// ErrValidation means a required field is missing or a value is
	// outside its allowed set.
	ErrValidation = errors.New("validation failed")

	// ErrSelfDeletion means an actor attempted to delete their own
	// account. Denied regardless of role.
	ErrSelfDeletion = errors.New("cannot delete own account")
)
