package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/feed-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// GenerateTokenFn allows test cases to mock the GenerateToken behavior
	GenerateTokenFn func(ctx context.Context, userID int64) (string, error)

	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// GenerateRefreshTokenFn allows test cases to mock the GenerateRefreshToken behavior
	GenerateRefreshTokenFn func(ctx context.Context, userID int64) (string, error)

	// ValidateRefreshTokenFn allows test cases to mock the ValidateRefreshToken behavior
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Defaults used when the function fields aren't set. Generated tokens
	// embed the user id so tests can tell pairs apart.
	Err         error
	ValidateErr error
	Claims      *auth.Claims
}

var _ auth.TokenService = (*MockTokenService)(nil)

// NewMockTokenService creates a MockTokenService whose validators accept any
// token as belonging to user 1.
func NewMockTokenService() *MockTokenService {
	now := time.Now()
	return &MockTokenService{
		Claims: &auth.Claims{
			UserID:    1,
			TokenType: auth.TokenTypeAccess,
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        "mock-token-id",
		},
	}
}

// GenerateToken implements auth.TokenService
func (m *MockTokenService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("access-%d", userID), nil
}

// ValidateToken implements auth.TokenService
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// GenerateRefreshToken implements auth.TokenService
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("refresh-%d", userID), nil
}

// ValidateRefreshToken implements auth.TokenService
func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	if m.ValidateErr != nil || m.Claims == nil {
		return m.Claims, m.ValidateErr
	}
	claims := *m.Claims
	claims.TokenType = auth.TokenTypeRefresh
	return &claims, nil
}
