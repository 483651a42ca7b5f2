package domain

import "time"

// DefaultPageSize is the page size applied when a list request does not set one.
const DefaultPageSize = 10

// Post is a piece of text published by a user. A post with a ReplyToID is a
// direct reply to another post.
type Post struct {
	ID        int64      `json:"id"`
	Text      string     `json:"text"`
	UserID    int64      `json:"user_id"`
	ReplyToID *int64     `json:"reply_to_id"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"-"`
}

// IsReply reports whether the post replies to another post.
func (p *Post) IsReply() bool {
	return p.ReplyToID != nil
}

// NewPost carries the fields required to insert a post row.
type NewPost struct {
	Text      string
	UserID    int64
	ReplyToID *int64
}

// PostDetails is the aggregate read model of a post as seen by one viewer.
// Counts and the viewer flags are computed per query and never stored.
type PostDetails struct {
	ID           int64       `json:"id"`
	Text         string      `json:"text"`
	ReplyToID    *int64      `json:"reply_to_id"`
	CreatedAt    time.Time   `json:"created_at"`
	LikesCount   int64       `json:"likes_count"`
	ViewsCount   int64       `json:"views_count"`
	RepliesCount int64       `json:"replies_count"`
	UserLiked    bool        `json:"user_liked"`
	UserViewed   bool        `json:"user_viewed"`
	User         UserSummary `json:"user"`
}

// PostFilter selects posts for a viewer.
//
// When ReplyToID is set only direct replies to that post are returned, oldest
// first. Otherwise only top-level posts are returned, newest first.
type PostFilter struct {
	ViewerID  int64
	OwnerID   *int64
	ReplyToID *int64
	Search    string
	Limit     int
	Offset    int
}

// Normalized returns a copy of f with paging defaults applied.
func (f PostFilter) Normalized() PostFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
