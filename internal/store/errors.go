package store

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a store, and by the services built on
// top of them, matches exactly one of these through errors.Is.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store or is not visible to the caller (for example soft-deleted).
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when an operation would violate a uniqueness
	// constraint: duplicate user name, duplicate view, duplicate like.
	ErrConflict = errors.New("entity already exists")

	// ErrInvalidArgument is returned when the caller supplied an empty or
	// invalid input, such as an update with no fields.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized is returned when credentials or tokens fail verification.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrWriteFailed is matched by any other persistence failure. These errors
	// are opaque and are never retried by the store.
	ErrWriteFailed = errors.New("write failed")
)

// Entity-specific errors. Each wraps one kind.
var (
	// ErrUserNotFound indicates that the requested user does not exist or was deleted.
	ErrUserNotFound = NewKindError(ErrNotFound, "User not found")

	// ErrPostNotFound indicates that the requested post does not exist or was deleted.
	ErrPostNotFound = NewKindError(ErrNotFound, "Post not found")

	// ErrPostNotDeleted is returned by post deletion when no live post with the
	// given id is owned by the caller.
	ErrPostNotDeleted = NewKindError(ErrNotFound, "Post not found or already deleted")

	// ErrLikeNotFound indicates that the user had not liked the post.
	ErrLikeNotFound = NewKindError(ErrNotFound, "Like not found")

	// ErrUserExists indicates that the user name is already taken.
	ErrUserExists = NewKindError(ErrConflict, "User already exists")

	// ErrAlreadyViewed indicates that the user has already viewed the post.
	ErrAlreadyViewed = NewKindError(ErrConflict, "Post already viewed")

	// ErrAlreadyLiked indicates that the user has already liked the post.
	ErrAlreadyLiked = NewKindError(ErrConflict, "Post already liked")

	// ErrNoFieldsToUpdate is returned when a user update sets no fields.
	ErrNoFieldsToUpdate = NewKindError(ErrInvalidArgument, "No fields to update")
)

// kindError pairs a kind with a human-readable reason. Error() renders both,
// Reason() only the reason.
type kindError struct {
	kind   error
	reason string
}

// NewKindError returns an error that matches kind through errors.Is and
// carries reason for display.
func NewKindError(kind error, reason string) error {
	return &kindError{kind: kind, reason: reason}
}

func (e *kindError) Error() string { return e.kind.Error() + ": " + e.reason }
func (e *kindError) Unwrap() error { return e.kind }
func (e *kindError) Reason() string { return e.reason }

// Reason returns the human-readable reason of the first error in err's chain
// created by NewKindError, such as "User already exists". Errors without one
// yield err.Error(); a nil error yields "".
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var r interface{ Reason() string }
	if errors.As(err, &r) {
		return r.Reason()
	}
	return err.Error()
}

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflictError checks if the error is any kind of uniqueness conflict.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// KindOf returns the kind sentinel matched by err, or nil if err matches none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidArgument,
		ErrUnauthorized,
		ErrWriteFailed,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// StoreError is the WriteFailed error returned for unclassified persistence
// failures. It keeps the driver error reachable through errors.As/Unwrap.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "post")
	Operation string // The operation that failed (e.g., "create", "like")
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed", e.Operation, e.Entity)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is reports StoreError as ErrWriteFailed.
func (e *StoreError) Is(target error) bool {
	return target == ErrWriteFailed
}

// NewStoreError creates a new StoreError with the given entity, operation and wrapped error.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}
