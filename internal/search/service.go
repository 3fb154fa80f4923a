package search

import (
	"context"
	"errors"

	"github.com/sevora/ramble/internal/db"
)

const PageSize = 10

var ErrBadQuery = errors.New("query must be 1 to 200 characters")

// PostReference and UserReference mirror the list endpoint payloads so
// search results feed the same cursors and detail fetches.
type PostReference struct {
	PostID string `json:"postId"`
}

type UserReference struct {
	Username string `json:"username"`
}

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// Posts returns one page of post ids whose content contains the query,
// newest first with the id tie-breaker keeping pagination stable.
func (s *Service) Posts(ctx context.Context, query string, page int) ([]PostReference, error) {
	if len(query) == 0 || len(query) > 200 {
		return nil, ErrBadQuery
	}

	rows, err := s.db.Query(ctx, `
		SELECT id FROM posts
		WHERE content ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, query, PageSize, page*PageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []PostReference{}
	for rows.Next() {
		var ref PostReference
		if err := rows.Scan(&ref.PostID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// Accounts matches against both the unique username and the display
// name.
func (s *Service) Accounts(ctx context.Context, query string, page int) ([]UserReference, error) {
	if len(query) == 0 || len(query) > 200 {
		return nil, ErrBadQuery
	}

	rows, err := s.db.Query(ctx, `
		SELECT username FROM users
		WHERE username ILIKE '%' || $1 || '%' OR common_name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, query, PageSize, page*PageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []UserReference{}
	for rows.Next() {
		var ref UserReference
		if err := rows.Scan(&ref.Username); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
