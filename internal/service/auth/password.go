package auth

import (
	"errors"

	"github.com/phrazzld/feed-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes passwords and compares them against stored hashes.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of password.
	Hash(password string) (string, error)

	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, an error matching bcrypt.ErrMismatchedHashAndPassword
	// on mismatch, or another error if the stored hash is unusable.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. A cost outside the range bcrypt
// accepts falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements the PasswordHasher interface using bcrypt.
// Passwords longer than 72 bytes yield ErrPasswordTooLong.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

// Compare implements the PasswordHasher interface using bcrypt.
// The comparison runs in constant time.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// HashPassword hashes password with h. A failure that carries no error kind
// is wrapped as a WriteFailed store error, so every hashing error is
// classifiable.
func HashPassword(h PasswordHasher, password string) (string, error) {
	hash, err := h.Hash(password)
	if err != nil {
		if store.KindOf(err) == nil {
			return "", store.NewStoreError("password", "hash", err)
		}
		return "", err
	}
	return hash, nil
}
