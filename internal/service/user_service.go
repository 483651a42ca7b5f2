package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/feed-api/internal/domain"
	"github.com/phrazzld/feed-api/internal/service/auth"
	"github.com/phrazzld/feed-api/internal/store"
)

// UserService provides user management operations.
type UserService interface {
	// ListUsers returns a page of live users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// GetUser retrieves a live user by ID.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// UpdateUser applies a partial update. A non-empty Password is hashed
	// before it reaches the store; one over 72 bytes yields
	// auth.ErrPasswordTooLong.
	UpdateUser(ctx context.Context, userID int64, update domain.UserUpdate) (*domain.User, error)

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// If logger is nil, a default logger will be used.
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// ListUsers returns a page of live users.
func (s *UserServiceImpl) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userStore.List(ctx, limit, offset)
	if err != nil {
		logStoreError(ctx, s.logger, "failed to list users", err,
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a live user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		logStoreError(ctx, s.logger, "failed to retrieve user", err, slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update to a user.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	userID int64,
	update domain.UserUpdate,
) (*domain.User, error) {
	patch := domain.UserPatch{
		UserName:  update.UserName,
		FirstName: update.FirstName,
		LastName:  update.LastName,
	}

	if update.Password != nil && *update.Password != "" {
		hash, err := auth.HashPassword(s.hasher, *update.Password)
		if err != nil {
			logStoreError(ctx, s.logger, "failed to hash password", err, slog.Int64("user_id", userID))
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	user, err := s.userStore.Update(ctx, userID, patch)
	if err != nil {
		logStoreError(ctx, s.logger, "failed to update user", err, slog.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", slog.Int64("user_id", userID))
	return user, nil
}

// DeleteUser soft-deletes a user.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		logStoreError(ctx, s.logger, "failed to delete user", err, slog.Int64("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", slog.Int64("user_id", userID))
	return nil
}
