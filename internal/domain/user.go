package domain

import (
	"time"
)

// DefaultUserStatus is the status assigned to newly registered users.
const DefaultUserStatus int16 = 1

// User represents a registered user of the feed.
// PasswordHash is only populated by lookups used for authentication.
type User struct {
	ID           int64      `json:"id"`
	UserName     string     `json:"user_name"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PasswordHash string     `json:"-"` // Never expose password hash in JSON
	Status       int16      `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// UserSummary is the owner projection embedded in PostDetails.
type UserSummary struct {
	ID        int64  `json:"id"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewUser carries the fields required to insert a user row.
// PasswordHash must already be the output of a one-way hash.
type NewUser struct {
	UserName     string
	FirstName    string
	LastName     string
	PasswordHash string
}

// UserPatch is a partial update of a user. Nil fields are left untouched.
type UserPatch struct {
	PasswordHash *string
	UserName     *string
	FirstName    *string
	LastName     *string
}

// IsEmpty reports whether the patch sets no fields.
func (p UserPatch) IsEmpty() bool {
	return p.PasswordHash == nil && p.UserName == nil && p.FirstName == nil && p.LastName == nil
}

// UserUpdate is a caller-facing partial update carrying a plaintext password.
// The user service hashes Password into a UserPatch before it reaches the store.
type UserUpdate struct {
	Password  *string
	UserName  *string
	FirstName *string
	LastName  *string
}

// Credentials are the inputs of a login attempt.
type Credentials struct {
	UserName string
	Password string
}

// Registration holds the inputs needed to create an account.
type Registration struct {
	UserName  string
	Password  string
	FirstName string
	LastName  string
}
