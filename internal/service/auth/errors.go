package auth

import "github.com/phrazzld/feed-api/internal/store"

// Authentication errors. All of them match store.ErrUnauthorized except
// ErrPasswordTooLong, which is caller input.
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = store.NewKindError(store.ErrUnauthorized, "invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = store.NewKindError(store.ErrUnauthorized, "authentication token has expired")

	// ErrInvalidRefreshToken indicates the refresh token is malformed, not yet
	// valid, or signed with the wrong key
	ErrInvalidRefreshToken = store.NewKindError(store.ErrUnauthorized, "invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired
	ErrExpiredRefreshToken = store.NewKindError(store.ErrUnauthorized, "refresh token has expired")

	// ErrWrongTokenType indicates an access token was used where a refresh
	// token was expected, or the reverse
	ErrWrongTokenType = store.NewKindError(store.ErrUnauthorized, "wrong token type")

	// ErrWrongPassword is returned by Login when the password does not match
	ErrWrongPassword = store.NewKindError(store.ErrUnauthorized, "Wrong password")

	// ErrForbidden is returned when an authenticated user acts on another user's resources
	ErrForbidden = store.NewKindError(store.ErrUnauthorized, "Forbidden")

	// ErrPasswordTooLong is returned when a password exceeds the 72 bytes bcrypt accepts
	ErrPasswordTooLong = store.NewKindError(store.ErrInvalidArgument, "Password too long")
)
