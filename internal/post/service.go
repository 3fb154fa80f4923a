package post

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sevora/ramble/internal/db"

	"github.com/google/uuid"
)

// PageSize is the fixed number of references per list page. A shorter
// page tells the consumer no further pages exist.
const PageSize = 10

var (
	ErrNotFound     = errors.New("post not found")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrBadContent   = errors.New("content must be 1 to 200 characters")
	ErrBadCategory  = errors.New("unknown list category")
	ErrNoSelector   = errors.New("category, username, or parentId required")
)

// Publisher receives a timeline event whenever a post is created.
type Publisher interface {
	Broadcast(topic string, payload []byte)
}

type Service struct {
	db        db.Querier
	publisher Publisher

	// Ordering clause for the trending category. The product contract
	// is plain chronological order with an id tie-breaker; deployments
	// can swap in an engagement-based ranking.
	trendingOrder string
}

func NewService(querier db.Querier, publisher Publisher) *Service {
	return &Service{
		db:            querier,
		publisher:     publisher,
		trendingOrder: "created_at DESC, id DESC",
	}
}

// SetTrendingOrder overrides the ORDER BY clause used by the trending
// feed. The clause must keep a unique tie-breaker or pages may skip or
// duplicate rows under concurrent inserts.
func (s *Service) SetTrendingOrder(clause string) {
	s.trendingOrder = clause
}

type createdEvent struct {
	PostID    string    `json:"postId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Reference, error) {
	content := strings.TrimSpace(req.Content)
	if len(content) == 0 || len(content) > 200 {
		return Reference{}, ErrBadContent
	}

	id := uuid.NewString()
	var parentID *string
	if req.ParentID != "" {
		parentID = &req.ParentID
	}

	var createdAt time.Time
	var username string
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, user_id, parent_id, content)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, (SELECT username FROM users WHERE id = $2)
	`, id, userID, parentID, content)
	if err := row.Scan(&createdAt, &username); err != nil {
		if db.IsForeignKeyViolation(err) {
			return Reference{}, ErrNotFound
		}
		return Reference{}, err
	}

	if s.publisher != nil {
		payload, _ := json.Marshal(createdEvent{PostID: id, Username: username, CreatedAt: createdAt})
		s.publisher.Broadcast(username, payload)
	}
	return Reference{PostID: id}, nil
}

// Delete only removes posts owned by the caller; deleting someone
// else's post reports not found rather than leaking its existence.
func (s *Service) Delete(ctx context.Context, userID, postID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Like(ctx context.Context, userID, postID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1,$2)
	`, userID, postID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyLiked
		}
		if db.IsForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Unlike is idempotent; removing an absent like is not an error.
func (s *Service) Unlike(ctx context.Context, userID, postID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	return err
}

// Count returns the number of posts by username, or by the calling
// user when username is empty.
func (s *Service) Count(ctx context.Context, userID, username string) (int64, error) {
	subject := userID
	if username != "" {
		if err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, username).Scan(&subject); err != nil {
			return 0, ErrNotFound
		}
	}

	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = $1`, subject).Scan(&count)
	return count, err
}

// View resolves one reference to full detail, including the counters
// and whether the viewing user has liked the post.
func (s *Service) View(ctx context.Context, viewerID, postID string) (Detail, error) {
	row := s.db.QueryRow(ctx, `
		SELECT p.id, p.parent_id, p.content, p.created_at, u.username, u.common_name,
		       (SELECT COUNT(*) FROM likes WHERE post_id = p.id) AS like_count,
		       (SELECT COUNT(*) FROM posts WHERE parent_id = p.id) AS reply_count,
		       EXISTS (SELECT 1 FROM likes WHERE post_id = p.id AND user_id = $1) AS has_liked
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $2
	`, viewerID, postID)

	var d Detail
	if err := row.Scan(&d.PostID, &d.ParentID, &d.Content, &d.CreatedAt, &d.Username, &d.CommonName, &d.LikeCount, &d.ReplyCount, &d.HasLiked); err != nil {
		return Detail{}, ErrNotFound
	}
	return d, nil
}

// List returns one page of references for the selected variant. Every
// variant pages by created_at DESC with the id as a unique tie-breaker
// so repeated identical requests see a stable total order.
func (s *Service) List(ctx context.Context, userID string, req ListRequest) ([]Reference, error) {
	offset := req.Page * PageSize

	var sql string
	var args []any
	switch {
	case req.ParentID != "":
		sql = `
			SELECT id FROM posts WHERE parent_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2 OFFSET $3`
		args = []any{req.ParentID, PageSize, offset}
	case req.Username != "":
		sql = `
			SELECT p.id FROM posts p
			JOIN users u ON u.id = p.user_id
			WHERE u.username = $1
			ORDER BY p.created_at DESC, p.id DESC
			LIMIT $2 OFFSET $3`
		args = []any{req.Username, PageSize, offset}
	case req.Category == CategoryFollowing:
		sql = `
			SELECT id FROM posts
			WHERE user_id = $1
			   OR user_id IN (SELECT follows_id FROM followers WHERE follower_id = $1)
			ORDER BY created_at DESC, id DESC
			LIMIT $2 OFFSET $3`
		args = []any{userID, PageSize, offset}
	case req.Category == CategoryTrending:
		sql = `
			SELECT id FROM posts
			ORDER BY ` + s.trendingOrder + `
			LIMIT $1 OFFSET $2`
		args = []any{PageSize, offset}
	case req.Category != "":
		return nil, ErrBadCategory
	default:
		return nil, ErrNoSelector
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []Reference{}
	for rows.Next() {
		var ref Reference
		if err := rows.Scan(&ref.PostID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
