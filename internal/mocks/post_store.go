package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/feed-api/internal/domain"
	"github.com/phrazzld/feed-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockPostStore is a mock of store.PostStore interface for use with testify/mock
type TestifyMockPostStore struct {
	mock.Mock
}

var _ store.PostStore = (*TestifyMockPostStore)(nil)

// Create is a mock implementation of store.PostStore.Create
func (m *TestifyMockPostStore) Create(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	args := m.Called(ctx, post)
	if p, ok := args.Get(0).(*domain.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.PostStore.List
func (m *TestifyMockPostStore) List(ctx context.Context, filter domain.PostFilter) ([]domain.PostDetails, error) {
	args := m.Called(ctx, filter)
	if posts, ok := args.Get(0).([]domain.PostDetails); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.PostStore.GetByID
func (m *TestifyMockPostStore) GetByID(ctx context.Context, postID, viewerID int64) (*domain.PostDetails, error) {
	args := m.Called(ctx, postID, viewerID)
	if p, ok := args.Get(0).(*domain.PostDetails); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.PostStore.Delete
func (m *TestifyMockPostStore) Delete(ctx context.Context, postID, ownerID int64) error {
	return m.Called(ctx, postID, ownerID).Error(0)
}

// RecordView is a mock implementation of store.PostStore.RecordView
func (m *TestifyMockPostStore) RecordView(ctx context.Context, postID, userID int64) error {
	return m.Called(ctx, postID, userID).Error(0)
}

// RecordLike is a mock implementation of store.PostStore.RecordLike
func (m *TestifyMockPostStore) RecordLike(ctx context.Context, postID, userID int64) error {
	return m.Called(ctx, postID, userID).Error(0)
}

// RemoveLike is a mock implementation of store.PostStore.RemoveLike
func (m *TestifyMockPostStore) RemoveLike(ctx context.Context, postID, userID int64) error {
	return m.Called(ctx, postID, userID).Error(0)
}

// WithTx returns the mock itself; post operations are single statements.
func (m *TestifyMockPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return m
}
