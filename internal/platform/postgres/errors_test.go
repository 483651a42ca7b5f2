package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/feed-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyConstraintViolation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   ConstraintViolation
		wantOK bool
	}{
		{
			name:   "unique",
			err:    uniqueViolation(ConstraintLikesPair),
			want:   ConstraintViolation{Kind: ViolationUnique, Constraint: ConstraintLikesPair},
			wantOK: true,
		},
		{
			name:   "wrapped foreign key",
			err:    fmt.Errorf("insert: %w", &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "posts_user_id_fkey"}),
			want:   ConstraintViolation{Kind: ViolationForeignKey, Constraint: "posts_user_id_fkey"},
			wantOK: true,
		},
		{
			name:   "check",
			err:    &pgconn.PgError{Code: checkViolationCode, ConstraintName: "c"},
			want:   ConstraintViolation{Kind: ViolationCheck, Constraint: "c"},
			wantOK: true,
		},
		{
			name:   "not null",
			err:    &pgconn.PgError{Code: notNullViolationCode},
			want:   ConstraintViolation{Kind: ViolationNotNull},
			wantOK: true,
		},
		{
			name: "other pg error",
			err:  &pgconn.PgError{Code: "42P01"},
		},
		{
			name: "plain error mentioning the constraint",
			err:  errors.New("duplicate key value violates unique constraint " + ConstraintViewsPair),
		},
		{
			name: "nil",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyConstraintViolation(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil, "post", "create"))

	assert.Equal(t, store.ErrUserExists, MapError(uniqueViolation(ConstraintUsersUserName), "user", "create"))
	assert.Equal(t, store.ErrAlreadyViewed, MapError(uniqueViolation(ConstraintViewsPair), "view", "create"))
	assert.Equal(t, store.ErrAlreadyLiked, MapError(uniqueViolation(ConstraintLikesPair), "like", "create"))

	unknown := uniqueViolation("some_other_key")
	err := MapError(unknown, "post", "create")
	assert.ErrorIs(t, err, store.ErrWriteFailed)
	assert.NotErrorIs(t, err, store.ErrConflict)
	assert.ErrorIs(t, err, unknown)

	fk := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "posts_reply_to_id_fkey"}
	err = MapError(fk, "post", "create")
	assert.ErrorIs(t, err, store.ErrWriteFailed)
	v, ok := ClassifyConstraintViolation(err)
	require.True(t, ok)
	assert.Equal(t, ConstraintViolation{Kind: ViolationForeignKey, Constraint: "posts_reply_to_id_fkey"}, v)
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrPostNotFound, "post", "delete"))
	assert.Equal(t, store.ErrPostNotFound,
		CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrPostNotFound, "post", "delete"))

	err := CheckRowsAffected(sqlmock.NewErrorResult(errors.New("boom")), store.ErrPostNotFound, "post", "delete")
	assert.ErrorIs(t, err, store.ErrWriteFailed)

	assert.ErrorIs(t, CheckRowsAffected(nil, store.ErrPostNotFound, "post", "delete"), store.ErrWriteFailed)
}

func TestViolationKindString(t *testing.T) {
	assert.Equal(t, "unique", ViolationUnique.String())
	assert.Equal(t, "foreign_key", ViolationForeignKey.String())
	assert.Equal(t, "none", ViolationNone.String())
}
