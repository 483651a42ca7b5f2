package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/feed-api/internal/domain"
	"github.com/phrazzld/feed-api/internal/redact"
	"github.com/phrazzld/feed-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Service implements login, registration and token refresh on top of a
// UserStore, a TokenService and a PasswordHasher.
type Service struct {
	users  store.UserStore
	db     *sql.DB
	tokens TokenService
	hasher PasswordHasher
	logger *slog.Logger
}

// NewService creates an auth Service. db is used to run registration in a
// transaction. If logger is nil, a default logger will be used.
func NewService(
	users store.UserStore,
	db *sql.DB,
	tokens TokenService,
	hasher PasswordHasher,
	logger *slog.Logger,
) (*Service, error) {
	if users == nil {
		return nil, errors.New("users store cannot be nil")
	}
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("token service cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		users:  users,
		db:     db,
		tokens: tokens,
		hasher: hasher,
		logger: logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Login verifies credentials and issues a token pair for the user.
// An unknown or deleted user name yields store.ErrUserNotFound; a wrong
// password yields ErrWrongPassword. An unusable stored hash is a WriteFailed
// store error.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (*domain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, creds.UserName)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("login for unknown user", slog.String("user_name", creds.UserName))
		} else {
			s.logger.Error("failed to look up user for login",
				slog.String("error", redact.Error(err)),
				slog.String("user_name", creds.UserName))
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, creds.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrWrongPassword
		}
		// The stored hash is unusable.
		s.logger.Error("password comparison failed",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", user.ID))
		return nil, store.NewStoreError("user", "verify password", err)
	}

	return s.GenerateTokenPair(ctx, user.ID)
}

// Register creates a user and issues a token pair for it. The insert and the
// token issuance share one transaction, so a failure leaves no user behind.
// A taken user name yields store.ErrUserExists.
func (s *Service) Register(ctx context.Context, reg domain.Registration) (*domain.TokenPair, error) {
	hash, err := HashPassword(s.hasher, reg.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			s.logger.Debug("registration with unusable password", slog.String("user_name", reg.UserName))
		} else {
			s.logger.Error("failed to hash password", slog.String("error", redact.Error(err)))
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var pair *domain.TokenPair
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		user, err := s.users.WithTx(tx).Create(ctx, domain.NewUser{
			UserName:     reg.UserName,
			FirstName:    reg.FirstName,
			LastName:     reg.LastName,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}

		pair, err = s.GenerateTokenPair(ctx, user.ID)
		return err
	})
	if err != nil {
		if store.IsConflictError(err) {
			s.logger.Debug("registration with taken user name", slog.String("user_name", reg.UserName))
			return nil, err
		}
		s.logger.Error("failed to register user",
			slog.String("error", redact.Error(err)),
			slog.String("user_name", reg.UserName))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", slog.String("user_name", reg.UserName))
	return pair, nil
}

// GenerateTokenPair issues an access token and a refresh token for subjectID.
func (s *Service) GenerateTokenPair(ctx context.Context, subjectID int64) (*domain.TokenPair, error) {
	access, err := s.tokens.GenerateToken(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh verifies a refresh token and issues a new pair for its subject.
// The presented refresh token is not revoked and remains usable until it
// expires.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Debug("refresh token rejected", slog.String("error", redact.Error(err)))
		if !errors.Is(err, store.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
		}
		return nil, err
	}
	return s.GenerateTokenPair(ctx, claims.UserID)
}

// Authenticate validates an access token and returns its claims.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*Claims, error) {
	claims, err := s.tokens.ValidateToken(ctx, accessToken)
	if err != nil {
		s.logger.Debug("access token rejected", slog.String("error", redact.Error(err)))
		if !errors.Is(err, store.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return nil, err
	}
	return claims, nil
}

// RequireSameUser returns ErrForbidden unless claims belong to userID.
func RequireSameUser(claims *Claims, userID int64) error {
	if claims == nil || claims.UserID != userID {
		return ErrForbidden
	}
	return nil
}
