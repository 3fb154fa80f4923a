package follower

import (
	"context"
	"errors"

	"github.com/sevora/ramble/internal/db"
)

// PageSize matches the post feed page size; a shorter page means no
// further pages exist.
const PageSize = 10

var (
	ErrNotFound         = errors.New("user not found")
	ErrAlreadyFollowing = errors.New("already following")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrBadCategory      = errors.New("unknown list category")
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

func (s *Service) resolve(ctx context.Context, username string) (string, error) {
	var id string
	if err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, username).Scan(&id); err != nil {
		return "", ErrNotFound
	}
	return id, nil
}

func (s *Service) Follow(ctx context.Context, userID, username string) error {
	subject, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if subject == userID {
		return ErrSelfFollow
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO followers (follower_id, follows_id)
		VALUES ($1,$2)
	`, userID, subject)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow is idempotent; removing an absent edge is not an error.
func (s *Service) Unfollow(ctx context.Context, userID, username string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM followers
		WHERE follower_id = $1
		  AND follows_id = (SELECT id FROM users WHERE username = $2)
	`, userID, username)
	return err
}

// Ask reports the relation between the caller and username from both
// directions.
func (s *Service) Ask(ctx context.Context, userID, username string) (Relation, error) {
	subject, err := s.resolve(ctx, username)
	if err != nil {
		return Relation{}, err
	}

	var rel Relation
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM followers WHERE follower_id = $2 AND follows_id = $1),
		       EXISTS (SELECT 1 FROM followers WHERE follower_id = $1 AND follows_id = $2)
	`, userID, subject).Scan(&rel.IsFollower, &rel.IsFollowing)
	if err != nil {
		return Relation{}, err
	}
	return rel, nil
}

// Count returns the follower/following totals for username, or for the
// calling user when username is empty.
func (s *Service) Count(ctx context.Context, userID, username string) (Counts, error) {
	subject := userID
	if username != "" {
		var err error
		if subject, err = s.resolve(ctx, username); err != nil {
			return Counts{}, err
		}
	}

	var counts Counts
	err := s.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM followers WHERE follows_id = $1),
		       (SELECT COUNT(*) FROM followers WHERE follower_id = $1)
	`, subject).Scan(&counts.FollowerCount, &counts.FollowCount)
	if err != nil {
		return Counts{}, err
	}
	return counts, nil
}

// List returns one page of usernames on either side of the follow
// graph, ordered by when the edge was created with the user id as a
// unique tie-breaker.
func (s *Service) List(ctx context.Context, userID string, req ListRequest) ([]Reference, error) {
	subject := userID
	if req.Username != "" {
		var err error
		if subject, err = s.resolve(ctx, req.Username); err != nil {
			return nil, err
		}
	}

	var sql string
	switch req.Category {
	case CategoryFollower:
		sql = `
			SELECT u.username FROM users u
			JOIN followers f ON f.follower_id = u.id
			WHERE f.follows_id = $1
			ORDER BY f.created_at DESC, u.id DESC
			LIMIT $2 OFFSET $3`
	case CategoryFollowing:
		sql = `
			SELECT u.username FROM users u
			JOIN followers f ON f.follows_id = u.id
			WHERE f.follower_id = $1
			ORDER BY f.created_at DESC, u.id DESC
			LIMIT $2 OFFSET $3`
	default:
		return nil, ErrBadCategory
	}

	rows, err := s.db.Query(ctx, sql, subject, PageSize, req.Page*PageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []Reference{}
	for rows.Next() {
		var ref Reference
		if err := rows.Scan(&ref.Username); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
