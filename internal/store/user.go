package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/feed-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a new user. The returned user carries ID, UserName,
	// PasswordHash and Status.
	// Returns ErrUserExists if the user name is already taken.
	Create(ctx context.Context, user domain.NewUser) (*domain.User, error)

	// List returns live users ordered by ID.
	// Returns an empty slice if there are none.
	List(ctx context.Context, limit, offset int) ([]domain.User, error)

	// GetByID retrieves a live user by ID, without the password hash.
	// Returns ErrUserNotFound if the user does not exist or was deleted.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a live user by user name, including the
	// password hash, for authentication.
	// Returns ErrUserNotFound if the user does not exist or was deleted.
	GetByUsername(ctx context.Context, userName string) (*domain.User, error)

	// Update applies a partial update to a live user and refreshes updated_at.
	// Returns ErrNoFieldsToUpdate if the patch is empty, ErrUserNotFound if no
	// live user matched, ErrUserExists if the new user name is taken.
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)

	// Delete soft-deletes a live user.
	// Returns ErrUserNotFound if no live user matched.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
