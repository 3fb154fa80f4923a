// Package client is the Go consumer of the ramble API. It mirrors how
// the web client talks to the server: authenticate once to obtain the
// session cookie, page through list endpoints with a Cursor, then
// resolve each reference to full detail in parallel.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// DefaultPageSize is the fixed page length of every list endpoint. A
// response shorter than this signals the final page.
const DefaultPageSize = 10

// APIError carries the HTTP status of a failed call so callers can
// distinguish validation, authentication, missing-subject, and
// conflict failures from transient server errors.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsInvalid(err error) bool      { return statusIs(err, http.StatusBadRequest) }
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }
func IsNotFound(err error) bool     { return statusIs(err, http.StatusNotFound) }
func IsConflict(err error) bool     { return statusIs(err, http.StatusConflict) }

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client with its own cookie jar; the session cookie set
// by Login is carried on every later request.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(message))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type LoginResponse struct {
	Username   string `json:"username"`
	CommonName string `json:"userCommonName"`
}

func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	return c.postJSON(ctx, "/account/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.postJSON(ctx, "/account/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	return resp, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/account/logout", map[string]string{}, nil)
}

type Profile struct {
	Username   string    `json:"username"`
	CommonName string    `json:"userCommonName"`
	Biography  string    `json:"userBiography"`
	AvatarURL  string    `json:"userAvatarUrl"`
	CreatedAt  time.Time `json:"userCreatedAt"`
}

// ViewAccount fetches the profile of username, or of the logged-in
// user when username is empty.
func (c *Client) ViewAccount(ctx context.Context, username string) (Profile, error) {
	var p Profile
	err := c.postJSON(ctx, "/account/view", map[string]string{"username": username}, &p)
	return p, err
}

func (c *Client) UpdateAccount(ctx context.Context, commonName, biography string) error {
	return c.postJSON(ctx, "/account/update", map[string]string{
		"userCommonName": commonName,
		"userBiography":  biography,
	}, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	return c.postJSON(ctx, "/account/delete", map[string]string{"password": password}, nil)
}

type PostDetail struct {
	PostID     string    `json:"postId"`
	ParentID   *string   `json:"postParentId"`
	Content    string    `json:"postContent"`
	CreatedAt  time.Time `json:"postCreatedAt"`
	Username   string    `json:"username"`
	CommonName string    `json:"userCommonName"`
	LikeCount  int64     `json:"likeCount"`
	ReplyCount int64     `json:"replyCount"`
	HasLiked   bool      `json:"hasLiked"`
}

func (c *Client) NewPost(ctx context.Context, content, parentID string) (string, error) {
	var ref struct {
		PostID string `json:"postId"`
	}
	err := c.postJSON(ctx, "/post/new", map[string]string{
		"content":  content,
		"parentId": parentID,
	}, &ref)
	return ref.PostID, err
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/post/delete", map[string]string{"postId": postID}, nil)
}

// Like treats an already-liked conflict as success; double-tapping the
// heart is a no-op, not a failure.
func (c *Client) Like(ctx context.Context, postID string) error {
	err := c.postJSON(ctx, "/post/like", map[string]string{"postId": postID}, nil)
	if IsConflict(err) {
		return nil
	}
	return err
}

func (c *Client) Unlike(ctx context.Context, postID string) error {
	return c.postJSON(ctx, "/post/dislike", map[string]string{"postId": postID}, nil)
}

func (c *Client) PostCount(ctx context.Context, username string) (int64, error) {
	var resp struct {
		PostCount int64 `json:"postCount"`
	}
	err := c.postJSON(ctx, "/post/count", map[string]string{"username": username}, &resp)
	return resp.PostCount, err
}

func (c *Client) ViewPost(ctx context.Context, postID string) (PostDetail, error) {
	var detail PostDetail
	err := c.postJSON(ctx, "/post/view", map[string]string{"postId": postID}, &detail)
	return detail, err
}

// Feed and relation categories accepted by the list endpoints.
const (
	CategoryTrending  = "trending"
	CategoryFollowing = "following"
	CategoryFollower  = "follower"
)

type listPostsRequest struct {
	Page     int    `json:"page"`
	Category string `json:"category,omitempty"`
	Username string `json:"username,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

func (c *Client) listPosts(ctx context.Context, req listPostsRequest) ([]string, error) {
	var resp struct {
		Posts []struct {
			PostID string `json:"postId"`
		} `json:"posts"`
	}
	if err := c.postJSON(ctx, "/post/list", req, &resp); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp.Posts))
	for _, p := range resp.Posts {
		ids = append(ids, p.PostID)
	}
	return ids, nil
}

func (c *Client) listUsers(ctx context.Context, path string, req any) ([]string, error) {
	var resp struct {
		Users []struct {
			Username string `json:"username"`
		} `json:"users"`
	}
	if err := c.postJSON(ctx, path, req, &resp); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Users))
	for _, u := range resp.Users {
		names = append(names, u.Username)
	}
	return names, nil
}

func (c *Client) Follow(ctx context.Context, username string) error {
	err := c.postJSON(ctx, "/follower/follow", map[string]string{"username": username}, nil)
	if IsConflict(err) {
		return nil
	}
	return err
}

func (c *Client) Unfollow(ctx context.Context, username string) error {
	return c.postJSON(ctx, "/follower/unfollow", map[string]string{"username": username}, nil)
}

type Relation struct {
	IsFollower  bool `json:"isFollower"`
	IsFollowing bool `json:"isFollowing"`
}

func (c *Client) Ask(ctx context.Context, username string) (Relation, error) {
	var rel Relation
	err := c.postJSON(ctx, "/follower/ask", map[string]string{"username": username}, &rel)
	return rel, err
}

type FollowCounts struct {
	FollowerCount int64 `json:"followerCount"`
	FollowCount   int64 `json:"followCount"`
}

func (c *Client) FollowerCounts(ctx context.Context, username string) (FollowCounts, error) {
	var counts FollowCounts
	err := c.postJSON(ctx, "/follower/count", map[string]string{"username": username}, &counts)
	return counts, err
}

// Cursor constructors: each list variant gets its own cursor so every
// view owns independent paging state.

// FeedCursor pages the trending or following feed.
func (c *Client) FeedCursor(category string) *Cursor {
	return NewCursor(func(ctx context.Context, page int) ([]string, error) {
		return c.listPosts(ctx, listPostsRequest{Page: page, Category: category})
	})
}

// RepliesCursor pages the direct replies of a post.
func (c *Client) RepliesCursor(parentID string) *Cursor {
	return NewCursor(func(ctx context.Context, page int) ([]string, error) {
		return c.listPosts(ctx, listPostsRequest{Page: page, ParentID: parentID})
	})
}

// ProfilePostsCursor pages the posts authored by one account.
func (c *Client) ProfilePostsCursor(username string) *Cursor {
	return NewCursor(func(ctx context.Context, page int) ([]string, error) {
		return c.listPosts(ctx, listPostsRequest{Page: page, Username: username})
	})
}

// FollowCursor pages the follower or following list of an account;
// username empty means the logged-in user.
func (c *Client) FollowCursor(category, username string) *Cursor {
	return NewCursor(func(ctx context.Context, page int) ([]string, error) {
		return c.listUsers(ctx, "/follower/list", map[string]any{
			"category": category,
			"username": username,
			"page":     page,
		})
	})
}

// PostSearchCursor pages free-text post search results.
func (c *Client) PostSearchCursor(query string) *Cursor {
	return NewCursor(func(ctx context.Context, page int) ([]string, error) {
		var resp struct {
			Posts []struct {
				PostID string `json:"postId"`
			} `json:"posts"`
		}
		err := c.postJSON(ctx, "/search/post", map[string]any{"content": query, "page": page}, &resp)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(resp.Posts))
		for _, p := range resp.Posts {
			ids = append(ids, p.PostID)
		}
		return ids, nil
	})
}

// AccountSearchCursor pages free-text account search results.
func (c *Client) AccountSearchCursor(query string) *Cursor {
	return NewCursor(func(ctx context.Context, page int) ([]string, error) {
		return c.listUsers(ctx, "/search/account", map[string]any{"username": query, "page": page})
	})
}
