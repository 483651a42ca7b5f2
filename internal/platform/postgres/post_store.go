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

const (
	postEntity = "post"
	viewEntity = "view"
	likeEntity = "like"
)

// postDetailsSelect selects the aggregate read model. $1 is the viewer id.
// Replies of soft-deleted posts are not counted.
const postDetailsSelect = `
	WITH likes_count AS (
		SELECT post_id, COUNT(*) AS likes_count
		FROM likes
		GROUP BY post_id
	),
	views_count AS (
		SELECT post_id, COUNT(*) AS views_count
		FROM views
		GROUP BY post_id
	),
	replies_count AS (
		SELECT reply_to_id, COUNT(*) AS replies_count
		FROM posts
		WHERE reply_to_id IS NOT NULL AND deleted_at IS NULL
		GROUP BY reply_to_id
	)
	SELECT
		p.id, p.text, p.reply_to_id, p.created_at,
		COALESCE(lc.likes_count, 0) AS likes_count,
		COALESCE(vc.views_count, 0) AS views_count,
		COALESCE(rc.replies_count, 0) AS replies_count,
		l.user_id IS NOT NULL AS user_liked,
		v.user_id IS NOT NULL AS user_viewed,
		u.id, u.user_name, u.first_name, u.last_name
	FROM posts p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN likes_count lc ON lc.post_id = p.id
	LEFT JOIN views_count vc ON vc.post_id = p.id
	LEFT JOIN replies_count rc ON rc.reply_to_id = p.id
	LEFT JOIN likes l ON l.post_id = p.id AND l.user_id = $1
	LEFT JOIN views v ON v.post_id = p.id AND v.user_id = $1
	WHERE p.deleted_at IS NULL`

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db store.DBTX
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
func NewPostgresPostStore(db store.DBTX) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresPostStore{db: db}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{db: tx}
}

// Create implements store.PostStore.Create
// An unknown user or parent post is rejected by the foreign keys and surfaces
// as a WriteFailed error.
func (s *PostgresPostStore) Create(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	query := `
		INSERT INTO posts (text, user_id, reply_to_id)
		VALUES ($1, $2, $3)
		RETURNING id, text, user_id, reply_to_id, created_at
	`

	var (
		created   domain.Post
		replyToID sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, query, post.Text, post.UserID, nullInt64(post.ReplyToID)).Scan(
		&created.ID,
		&created.Text,
		&created.UserID,
		&replyToID,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, MapError(err, postEntity, "create")
	}
	created.ReplyToID = int64Ptr(replyToID)
	return &created, nil
}

// List implements store.PostStore.List
func (s *PostgresPostStore) List(ctx context.Context, filter domain.PostFilter) ([]domain.PostDetails, error) {
	query, args := buildListQuery(filter.Normalized())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err, postEntity, "list")
	}
	defer func() { _ = rows.Close() }()

	posts := make([]domain.PostDetails, 0)
	for rows.Next() {
		var p domain.PostDetails
		if err := scanPostDetails(rows, &p); err != nil {
			return nil, MapError(err, postEntity, "list")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, postEntity, "list")
	}
	return posts, nil
}

// buildListQuery renders the filtered list statement. The filter must already
// be normalized.
func buildListQuery(filter domain.PostFilter) (string, []any) {
	args := []any{filter.ViewerID}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var b strings.Builder
	b.WriteString(postDetailsSelect)

	if filter.Search != "" {
		b.WriteString(" AND p.text ILIKE ")
		b.WriteString(next("%" + escapeLike(filter.Search) + "%"))
	}
	if filter.OwnerID != nil {
		b.WriteString(" AND p.user_id = ")
		b.WriteString(next(*filter.OwnerID))
	}
	if filter.ReplyToID != nil {
		b.WriteString(" AND p.reply_to_id = ")
		b.WriteString(next(*filter.ReplyToID))
		b.WriteString(" ORDER BY p.created_at ASC, p.id ASC")
	} else {
		b.WriteString(" AND p.reply_to_id IS NULL ORDER BY p.created_at DESC, p.id DESC")
	}

	b.WriteString(" OFFSET ")
	b.WriteString(next(filter.Offset))
	b.WriteString(" LIMIT ")
	b.WriteString(next(filter.Limit))

	return b.String(), args
}

// escapeLike escapes ILIKE wildcards so search matches a literal substring.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, postID, viewerID int64) (*domain.PostDetails, error) {
	query := postDetailsSelect + " AND p.id = $2"

	var p domain.PostDetails
	if err := scanPostDetails(s.db.QueryRowContext(ctx, query, viewerID, postID), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPostNotFound
		}
		return nil, MapError(err, postEntity, "get")
	}
	return &p, nil
}

// Delete implements store.PostStore.Delete
// Only a live post owned by ownerID is matched; a wrong owner, a missing post
// and an already deleted post all report ErrPostNotDeleted.
func (s *PostgresPostStore) Delete(ctx context.Context, postID, ownerID int64) error {
	query := `
		UPDATE posts
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, postID, ownerID)
	if err != nil {
		return MapError(err, postEntity, "delete")
	}
	return CheckRowsAffected(result, store.ErrPostNotDeleted, postEntity, "delete")
}

// RecordView implements store.PostStore.RecordView
func (s *PostgresPostStore) RecordView(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO views (post_id, user_id)
		VALUES ($1, $2)
		RETURNING post_id
	`
	return s.insertInteraction(ctx, query, postID, userID, viewEntity)
}

// RecordLike implements store.PostStore.RecordLike
func (s *PostgresPostStore) RecordLike(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
		RETURNING post_id
	`
	return s.insertInteraction(ctx, query, postID, userID, likeEntity)
}

// insertInteraction attempts the insert without checking for an existing pair;
// the primary key decides duplicates.
func (s *PostgresPostStore) insertInteraction(
	ctx context.Context,
	query string,
	postID, userID int64,
	entity string,
) error {
	var inserted int64
	err := s.db.QueryRowContext(ctx, query, postID, userID).Scan(&inserted)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrPostNotFound
	default:
		return MapError(err, entity, "create")
	}
}

// RemoveLike implements store.PostStore.RemoveLike
func (s *PostgresPostStore) RemoveLike(ctx context.Context, postID, userID int64) error {
	query := `
		DELETE FROM likes
		WHERE post_id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return MapError(err, likeEntity, "delete")
	}
	return CheckRowsAffected(result, store.ErrLikeNotFound, likeEntity, "delete")
}

func scanPostDetails(row rowScanner, p *domain.PostDetails) error {
	var replyToID sql.NullInt64
	err := row.Scan(
		&p.ID,
		&p.Text,
		&replyToID,
		&p.CreatedAt,
		&p.LikesCount,
		&p.ViewsCount,
		&p.RepliesCount,
		&p.UserLiked,
		&p.UserViewed,
		&p.User.ID,
		&p.User.UserName,
		&p.User.FirstName,
		&p.User.LastName,
	)
	if err != nil {
		return err
	}
	p.ReplyToID = int64Ptr(replyToID)
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
