package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityErrorsMatchTheirKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"user not found", ErrUserNotFound, ErrNotFound},
		{"post not found", ErrPostNotFound, ErrNotFound},
		{"post not deleted", ErrPostNotDeleted, ErrNotFound},
		{"like not found", ErrLikeNotFound, ErrNotFound},
		{"user exists", ErrUserExists, ErrConflict},
		{"already viewed", ErrAlreadyViewed, ErrConflict},
		{"already liked", ErrAlreadyLiked, ErrConflict},
		{"no fields", ErrNoFieldsToUpdate, ErrInvalidArgument},
		{"store error", NewStoreError("post", "like", errors.New("boom")), ErrWriteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.kind, KindOf(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Nil(t, KindOf(nil))
	assert.Nil(t, KindOf(errors.New("some error")))
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, ErrUserExists.Error(), "User already exists")
	assert.Contains(t, ErrAlreadyViewed.Error(), "Post already viewed")
	assert.Contains(t, ErrAlreadyLiked.Error(), "Post already liked")
	assert.Contains(t, ErrPostNotDeleted.Error(), "Post not found or already deleted")
	assert.Contains(t, ErrNoFieldsToUpdate.Error(), "No fields to update")
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrUserNotFound", fmt.Errorf("failed to get user: %w", ErrUserNotFound), true},
		{"conflict", ErrAlreadyLiked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsConflictError(t *testing.T) {
	assert.True(t, IsConflictError(ErrAlreadyViewed))
	assert.True(t, IsConflictError(fmt.Errorf("register: %w", ErrUserExists)))
	assert.False(t, IsConflictError(ErrPostNotFound))
	assert.False(t, IsConflictError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("post", "view", cause)

	assert.Equal(t, "view operation on post failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.NotErrorIs(t, err, ErrNotFound)

	var target *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &target))
	assert.Equal(t, "post", target.Entity)
	assert.Equal(t, "view", target.Operation)

	assert.Equal(t, "list operation on user failed", NewStoreError("user", "list", nil).Error())
}

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"sentinel", ErrUserExists, "User already exists"},
		{"wrapped sentinel", fmt.Errorf("failed to update user: %w", ErrUserExists), "User already exists"},
		{"invalid argument", ErrNoFieldsToUpdate, "No fields to update"},
		{"no reason", errors.New("boom"), "boom"},
		{"store error", NewStoreError("post", "view", errors.New("reset")), "view operation on post failed: reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reason(tt.err))
		})
	}

	assert.Equal(t, "entity already exists: User already exists", ErrUserExists.Error())
	custom := NewKindError(ErrUnauthorized, "Forbidden")
	assert.ErrorIs(t, custom, ErrUnauthorized)
	assert.Equal(t, ErrUnauthorized, KindOf(custom))
}
