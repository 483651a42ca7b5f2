package mocks

import (
	"github.com/phrazzld/feed-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare when it fails.
// It is the bcrypt mismatch error, so callers treat it as a wrong password.
var ErrPasswordMismatch = bcrypt.ErrMismatchedHashAndPassword

// MockPasswordHasher implements auth.PasswordHasher for testing.
// Hash returns "hashed:" + password unless HashFn or HashErr is set.
type MockPasswordHasher struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// HashErr is returned by Hash when set
	HashErr error

	// HashFn and CompareFn allow for custom logic in tests
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments passed to Compare for verification
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	// Call counters
	HashCallCount    int
	CompareCallCount int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCallCount++
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}
