package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/feed-api/internal/domain"
)

// PostStore defines the interface for post data persistence, including the
// view and like interaction sets.
type PostStore interface {
	// Create inserts a new post.
	Create(ctx context.Context, post domain.NewPost) (*domain.Post, error)

	// List returns the read models of live posts matching filter as seen by
	// filter.ViewerID. Replies are ordered oldest first, top-level posts
	// newest first. Returns an empty slice if nothing matches.
	List(ctx context.Context, filter domain.PostFilter) ([]domain.PostDetails, error)

	// GetByID returns the read model of a live post as seen by viewerID.
	// Returns ErrPostNotFound if no live post has that ID.
	GetByID(ctx context.Context, postID, viewerID int64) (*domain.PostDetails, error)

	// Delete soft-deletes a live post owned by ownerID.
	// Returns ErrPostNotDeleted if no such post exists.
	Delete(ctx context.Context, postID, ownerID int64) error

	// RecordView marks the post as viewed by the user.
	// Returns ErrAlreadyViewed if the pair already exists.
	RecordView(ctx context.Context, postID, userID int64) error

	// RecordLike marks the post as liked by the user.
	// Returns ErrAlreadyLiked if the pair already exists.
	RecordLike(ctx context.Context, postID, userID int64) error

	// RemoveLike removes the user's like from the post.
	// Returns ErrLikeNotFound if the user had not liked it.
	RemoveLike(ctx context.Context, postID, userID int64) error

	// WithTx returns a new PostStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PostStore
}
