package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/feed-api/internal/domain"
	"github.com/phrazzld/feed-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{
	"id", "user_name", "first_name", "last_name", "status", "created_at", "updated_at",
}

func TestNewPostgresUserStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil) })
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()
	newUser := domain.NewUser{
		UserName:     "alice",
		FirstName:    "Alice",
		LastName:     "Liddell",
		PasswordHash: "hash",
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`INSERT INTO users \(user_name, first_name, last_name, password_hash\)`).
			WithArgs("alice", "Alice", "Liddell", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "password_hash", "status"}).
				AddRow(7, "alice", "hash", 1))

		user, err := NewPostgresUserStore(db).Create(ctx, newUser)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "alice", user.UserName)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.Equal(t, domain.DefaultUserStatus, user.Status)
		assert.Equal(t, "Alice", user.FirstName)
	})

	t.Run("duplicate user name", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(uniqueViolation(ConstraintUsersUserName))

		_, err := NewPostgresUserStore(db).Create(ctx, newUser)
		assert.ErrorIs(t, err, store.ErrUserExists)
		assert.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("driver failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		cause := errors.New("connection reset")
		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(cause)

		_, err := NewPostgresUserStore(db).Create(ctx, newUser)
		assert.ErrorIs(t, err, store.ErrWriteFailed)
		assert.ErrorIs(t, err, cause)
	})
}

func TestPostgresUserStore_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("live users ordered by id", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users\s+WHERE deleted_at IS NULL\s+ORDER BY id\s+OFFSET \$1 LIMIT \$2`).
			WithArgs(20, 10).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(1, "a", "A", "One", 1, now, now).
				AddRow(2, "b", "B", "Two", 1, now, now))

		users, err := NewPostgresUserStore(db).List(ctx, 10, 20)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, int64(1), users[0].ID)
		assert.Equal(t, "b", users[1].UserName)
		assert.Empty(t, users[0].PasswordHash)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users`).
			WithArgs(0, domain.DefaultPageSize).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		users, err := NewPostgresUserStore(db).List(ctx, 0, -5)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("row error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users`).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(1, "a", "A", "One", 1, now, now).
				RowError(0, errors.New("bad row")))

		_, err := NewPostgresUserStore(db).List(ctx, 10, 0)
		assert.ErrorIs(t, err, store.ErrWriteFailed)
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users\s+WHERE id = \$1 AND deleted_at IS NULL`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(3, "c", "C", "Three", 1, now, now))

		user, err := NewPostgresUserStore(db).GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "c", user.UserName)
		assert.Equal(t, now, user.CreatedAt)
	})

	t.Run("missing or deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := NewPostgresUserStore(db).GetByID(ctx, 3)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_GetByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("includes password hash", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT id, user_name, password_hash, status\s+FROM users\s+WHERE user_name = \$1 AND deleted_at IS NULL`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "password_hash", "status"}).
				AddRow(7, "alice", "hash", 1))

		user, err := NewPostgresUserStore(db).GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("unknown", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users`).
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "password_hash", "status"}))

		_, err := NewPostgresUserStore(db).GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("empty patch never touches the database", func(t *testing.T) {
		db, _ := newMockDB(t)

		_, err := NewPostgresUserStore(db).Update(ctx, 1, domain.UserPatch{})
		assert.ErrorIs(t, err, store.ErrNoFieldsToUpdate)
		assert.ErrorIs(t, err, store.ErrInvalidArgument)
	})

	t.Run("set list follows column order", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`UPDATE users\s+SET password_hash = \$1, user_name = \$2, last_name = \$3, updated_at = NOW\(\)\s+WHERE id = \$4 AND deleted_at IS NULL\s+RETURNING id`).
			WithArgs("newhash", "bob", "Builder", int64(5)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(5, "bob", "Bob", "Builder", 1, now, now))

		user, err := NewPostgresUserStore(db).Update(ctx, 5, domain.UserPatch{
			LastName:     strp("Builder"),
			UserName:     strp("bob"),
			PasswordHash: strp("newhash"),
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", user.UserName)
		assert.Equal(t, "Builder", user.LastName)
	})

	t.Run("single field", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SET first_name = \$1, updated_at = NOW\(\)\s+WHERE id = \$2`).
			WithArgs("Robert", int64(5)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(5, "bob", "Robert", "Builder", 1, now, now))

		user, err := NewPostgresUserStore(db).Update(ctx, 5, domain.UserPatch{FirstName: strp("Robert")})
		require.NoError(t, err)
		assert.Equal(t, "Robert", user.FirstName)
	})

	t.Run("no live row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`UPDATE users`).WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := NewPostgresUserStore(db).Update(ctx, 5, domain.UserPatch{FirstName: strp("x")})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("user name taken", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`UPDATE users`).WillReturnError(uniqueViolation(ConstraintUsersUserName))

		_, err := NewPostgresUserStore(db).Update(ctx, 5, domain.UserPatch{UserName: strp("taken")})
		assert.ErrorIs(t, err, store.ErrUserExists)
	})
}

func TestPostgresUserStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("second delete reports not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		query := `UPDATE users\s+SET deleted_at = NOW\(\)\s+WHERE id = \$1 AND deleted_at IS NULL`
		mock.ExpectExec(query).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(query).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

		users := NewPostgresUserStore(db)
		require.NoError(t, users.Delete(ctx, 4))
		err := users.Delete(ctx, 4)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.Equal(t, store.ErrNotFound, store.KindOf(err))
	})

	t.Run("driver failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE users`).WillReturnError(errors.New("timeout"))

		err := NewPostgresUserStore(db).Delete(ctx, 4)
		assert.ErrorIs(t, err, store.ErrWriteFailed)
	})
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	txStore := NewPostgresUserStore(db).WithTx(tx)
	require.NoError(t, txStore.Delete(context.Background(), 9))
	require.NoError(t, tx.Commit())
}
