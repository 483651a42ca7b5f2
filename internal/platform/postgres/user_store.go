package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/feed-api/internal/domain"
	"github.com/phrazzld/feed-api/internal/store"
)

const userEntity = "user"

// userColumns is the full user projection, without the password hash.
const userColumns = "id, user_name, first_name, last_name, status, created_at, updated_at"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db store.DBTX
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresUserStore{db: db}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user domain.NewUser) (*domain.User, error) {
	query := `
		INSERT INTO users (user_name, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_name, password_hash, status
	`

	var created domain.User
	err := s.db.QueryRowContext(ctx, query,
		user.UserName,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
	).Scan(
		&created.ID,
		&created.UserName,
		&created.PasswordHash,
		&created.Status,
	)
	if err != nil {
		return nil, MapError(err, userEntity, "create")
	}

	created.FirstName = user.FirstName
	created.LastName = user.LastName
	return &created, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	limit, offset = normalizePage(limit, offset)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, MapError(err, userEntity, "list")
	}
	defer func() { _ = rows.Close() }()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, MapError(err, userEntity, "list")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, userEntity, "list")
	}
	return users, nil
}

// GetByID implements store.UserStore.GetByID
// Soft-deleted users are not returned.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`

	var u domain.User
	if err := scanUser(s.db.QueryRowContext(ctx, query, id), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err, userEntity, "get")
	}
	return &u, nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, userName string) (*domain.User, error) {
	query := `
		SELECT id, user_name, password_hash, status
		FROM users
		WHERE user_name = $1 AND deleted_at IS NULL
	`

	var u domain.User
	err := s.db.QueryRowContext(ctx, query, userName).Scan(
		&u.ID,
		&u.UserName,
		&u.PasswordHash,
		&u.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err, userEntity, "get_by_username")
	}
	return &u, nil
}

// Update implements store.UserStore.Update
// SET clauses are emitted in a fixed column order followed by the updated_at touch.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id int64,
	patch domain.UserPatch,
) (*domain.User, error) {
	if patch.IsEmpty() {
		return nil, store.ErrNoFieldsToUpdate
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("password_hash", patch.PasswordHash)
	add("user_name", patch.UserName)
	add("first_name", patch.FirstName)
	add("last_name", patch.LastName)
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), userColumns)

	var u domain.User
	if err := scanUser(s.db.QueryRowContext(ctx, query, args...), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err, userEntity, "update")
	}
	return &u, nil
}

// Delete implements store.UserStore.Delete
// Already-deleted users are not matched, so a repeated delete reports ErrUserNotFound.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err, userEntity, "delete")
	}
	return CheckRowsAffected(result, store.ErrUserNotFound, userEntity, "delete")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *domain.User) error {
	return row.Scan(
		&u.ID,
		&u.UserName,
		&u.FirstName,
		&u.LastName,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// normalizePage applies the default page size and clamps a negative offset.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
