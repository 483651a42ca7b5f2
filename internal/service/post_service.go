package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/feed-api/internal/domain"
	"github.com/phrazzld/feed-api/internal/store"
)

// PostService provides post and interaction operations.
type PostService interface {
	// ListPosts returns posts matching filter as seen by filter.ViewerID.
	ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.PostDetails, error)

	// GetPost returns a live post as seen by viewerID.
	GetPost(ctx context.Context, postID, viewerID int64) (*domain.PostDetails, error)

	// CreatePost publishes a post or a reply.
	CreatePost(ctx context.Context, post domain.NewPost) (*domain.Post, error)

	// DeletePost soft-deletes a post owned by ownerID.
	DeletePost(ctx context.Context, postID, ownerID int64) error

	// ViewPost records that userID viewed the post.
	ViewPost(ctx context.Context, postID, userID int64) error

	// LikePost records that userID liked the post.
	LikePost(ctx context.Context, postID, userID int64) error

	// UnlikePost removes userID's like from the post.
	UnlikePost(ctx context.Context, postID, userID int64) error
}

// PostServiceImpl implements the PostService interface
type PostServiceImpl struct {
	postStore store.PostStore
	logger    *slog.Logger
}

// NewPostService creates a new PostService.
// If logger is nil, a default logger will be used.
func NewPostService(postStore store.PostStore, logger *slog.Logger) PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostServiceImpl{
		postStore: postStore,
		logger:    logger.With(slog.String("component", "post_service")),
	}
}

// ListPosts returns posts matching filter. Paging defaults are applied here
// so the logged values match the executed query.
func (s *PostServiceImpl) ListPosts(ctx context.Context, filter domain.PostFilter) ([]domain.PostDetails, error) {
	filter = filter.Normalized()

	posts, err := s.postStore.List(ctx, filter)
	if err != nil {
		logStoreError(ctx, s.logger, "failed to list posts", err,
			slog.Int64("viewer_id", filter.ViewerID),
			slog.Int("limit", filter.Limit),
			slog.Int("offset", filter.Offset))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns a live post as seen by viewerID.
func (s *PostServiceImpl) GetPost(ctx context.Context, postID, viewerID int64) (*domain.PostDetails, error) {
	post, err := s.postStore.GetByID(ctx, postID, viewerID)
	if err != nil {
		logStoreError(ctx, s.logger, "failed to retrieve post", err,
			slog.Int64("post_id", postID),
			slog.Int64("viewer_id", viewerID))
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	return post, nil
}

// CreatePost publishes a post or a reply.
func (s *PostServiceImpl) CreatePost(ctx context.Context, newPost domain.NewPost) (*domain.Post, error) {
	post, err := s.postStore.Create(ctx, newPost)
	if err != nil {
		logStoreError(ctx, s.logger, "failed to create post", err, slog.Int64("user_id", newPost.UserID))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", post.UserID),
		slog.Bool("reply", post.IsReply()))
	return post, nil
}

// DeletePost soft-deletes a post owned by ownerID.
func (s *PostServiceImpl) DeletePost(ctx context.Context, postID, ownerID int64) error {
	if err := s.postStore.Delete(ctx, postID, ownerID); err != nil {
		logStoreError(ctx, s.logger, "failed to delete post", err,
			slog.Int64("post_id", postID),
			slog.Int64("owner_id", ownerID))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", slog.Int64("post_id", postID))
	return nil
}

// ViewPost records a view.
func (s *PostServiceImpl) ViewPost(ctx context.Context, postID, userID int64) error {
	return s.interact(ctx, "view", postID, userID, s.postStore.RecordView)
}

// LikePost records a like.
func (s *PostServiceImpl) LikePost(ctx context.Context, postID, userID int64) error {
	return s.interact(ctx, "like", postID, userID, s.postStore.RecordLike)
}

// UnlikePost removes a like.
func (s *PostServiceImpl) UnlikePost(ctx context.Context, postID, userID int64) error {
	return s.interact(ctx, "unlike", postID, userID, s.postStore.RemoveLike)
}

func (s *PostServiceImpl) interact(
	ctx context.Context,
	action string,
	postID, userID int64,
	fn func(ctx context.Context, postID, userID int64) error,
) error {
	if err := fn(ctx, postID, userID); err != nil {
		logStoreError(ctx, s.logger, "failed to "+action+" post", err,
			slog.Int64("post_id", postID),
			slog.Int64("user_id", userID))
		return fmt.Errorf("failed to %s post: %w", action, err)
	}
	return nil
}
