package post

import "time"

// Reference is the lightweight payload returned by list queries. Full
// detail is resolved one post at a time through View.
type Reference struct {
	PostID string `json:"postId"`
}

type Detail struct {
	PostID     string    `json:"postId"`
	ParentID   *string   `json:"postParentId,omitempty"`
	Content    string    `json:"postContent"`
	CreatedAt  time.Time `json:"postCreatedAt"`
	Username   string    `json:"username"`
	CommonName string    `json:"userCommonName"`
	LikeCount  int64     `json:"likeCount"`
	ReplyCount int64     `json:"replyCount"`
	HasLiked   bool      `json:"hasLiked"`
}

type CreateRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// ListRequest selects exactly one list variant: replies of ParentID,
// posts of Username, or a feed Category.
type ListRequest struct {
	Page     int    `json:"page"`
	Category string `json:"category"`
	Username string `json:"username"`
	ParentID string `json:"parentId"`
}

const (
	CategoryTrending  = "trending"
	CategoryFollowing = "following"
)
