package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/feed-api/internal/config"
	"github.com/phrazzld/feed-api/internal/platform/logger"
	"github.com/phrazzld/feed-api/internal/redact"
)

// minSecretLength is the minimum accepted length of an HMAC secret.
const minSecretLength = 32

// hmacTokenService is an implementation of TokenService using HMAC-SHA signing.
type hmacTokenService struct {
	accessKey            []byte
	refreshKey           []byte
	method               *jwt.SigningMethodHMAC
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time // Injectable for testing
	clockSkew            time.Duration    // Leeway applied to exp/iat/nbf checks
}

// jwtCustomClaims defines the structure of JWT claims we use.
// The subject is the decimal user id.
type jwtCustomClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// tokenKind bundles what differs between access and refresh tokens.
type tokenKind struct {
	name       string
	key        []byte
	lifetime   time.Duration
	errInvalid error
	errExpired error
}

// Ensure hmacTokenService implements TokenService interface
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService that signs with the HMAC algorithm
// named in cfg.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.AccessTokenSecret) < minSecretLength {
		return nil, fmt.Errorf("access token secret must be at least %d characters", minSecretLength)
	}
	if len(cfg.RefreshTokenSecret) < minSecretLength {
		return nil, fmt.Errorf("refresh token secret must be at least %d characters", minSecretLength)
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	return &hmacTokenService{
		accessKey:            []byte(cfg.AccessTokenSecret),
		refreshKey:           []byte(cfg.RefreshTokenSecret),
		method:               method,
		tokenLifetime:        time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            time.Duration(cfg.ClockSkewSeconds) * time.Second,
	}, nil
}

func signingMethod(name string) (*jwt.SigningMethodHMAC, error) {
	switch name {
	case "", jwt.SigningMethodHS256.Name:
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Name:
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Name:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", name)
	}
}

func (s *hmacTokenService) access() tokenKind {
	return tokenKind{
		name:       TokenTypeAccess,
		key:        s.accessKey,
		lifetime:   s.tokenLifetime,
		errInvalid: ErrInvalidToken,
		errExpired: ErrExpiredToken,
	}
}

func (s *hmacTokenService) refresh() tokenKind {
	return tokenKind{
		name:       TokenTypeRefresh,
		key:        s.refreshKey,
		lifetime:   s.refreshTokenLifetime,
		errInvalid: ErrInvalidRefreshToken,
		errExpired: ErrExpiredRefreshToken,
	}
}

// GenerateToken implements TokenService.GenerateToken
func (s *hmacTokenService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	return s.sign(ctx, userID, s.access())
}

// ValidateToken implements TokenService.ValidateToken
func (s *hmacTokenService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, s.access())
}

// GenerateRefreshToken implements TokenService.GenerateRefreshToken
func (s *hmacTokenService) GenerateRefreshToken(ctx context.Context, userID int64) (string, error) {
	return s.sign(ctx, userID, s.refresh())
}

// ValidateRefreshToken implements TokenService.ValidateRefreshToken
func (s *hmacTokenService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.validate(ctx, tokenString, s.refresh())
}

func (s *hmacTokenService) sign(ctx context.Context, userID int64, kind tokenKind) (string, error) {
	now := s.timeFunc()

	claims := jwtCustomClaims{
		TokenType: kind.name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(kind.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(kind.key)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", redact.Error(err)),
			slog.Int64("user_id", userID),
			slog.String("token_type", kind.name),
			slog.String("signing_method", s.method.Name))
		return "", fmt.Errorf("failed to sign %s token with %s: %w", kind.name, s.method.Name, err)
	}
	return signed, nil
}

func (s *hmacTokenService) validate(ctx context.Context, tokenString string, kind tokenKind) (*Claims, error) {
	log := logger.FromContext(ctx).With(slog.String("token_type", kind.name))
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return kind.key, nil
		},
		jwt.WithValidMethods([]string{s.method.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired")
			return nil, kind.errExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature")
		default:
			log.Debug("token validation failed",
				slog.String("error", redact.Error(err)),
				slog.String("error_type", fmt.Sprintf("%T", err)))
		}
		return nil, kind.errInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, kind.errInvalid
	}
	if claims.TokenType != kind.name {
		log.Debug("token validation failed: wrong token type", slog.String("actual", claims.TokenType))
		return nil, ErrWrongTokenType
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		log.Debug("token validation failed: subject is not a user id", slog.String("subject", claims.Subject))
		return nil, kind.errInvalid
	}

	result := &Claims{
		UserID:    userID,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}
