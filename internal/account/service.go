package account

import (
	"context"
	"errors"

	"github.com/sevora/ramble/internal/db"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrWrongPassword = errors.New("password incorrect")
	ErrInvalidUpdate = errors.New("nothing to update")
)

type Service struct {
	db db.Querier
}

func NewService(querier db.Querier) *Service {
	return &Service{db: querier}
}

// View returns the profile for username, or for the calling user when
// username is empty.
func (s *Service) View(ctx context.Context, userID, username string) (Profile, error) {
	var row = s.db.QueryRow(ctx, `
		SELECT username, common_name, biography, avatar_url, created_at
		FROM users WHERE username = $1 OR ($1 = '' AND id = $2)
	`, username, userID)

	var p Profile
	if err := row.Scan(&p.Username, &p.CommonName, &p.Biography, &p.AvatarURL, &p.CreatedAt); err != nil {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) error {
	if req.CommonName == "" && req.Biography == "" {
		return ErrInvalidUpdate
	}
	if req.CommonName != "" {
		if _, err := s.db.Exec(ctx, `UPDATE users SET common_name = $2 WHERE id = $1`, userID, req.CommonName); err != nil {
			return err
		}
	}
	if req.Biography != "" {
		if _, err := s.db.Exec(ctx, `UPDATE users SET biography = $2 WHERE id = $1`, userID, req.Biography); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) SetAvatarURL(ctx context.Context, userID, url string) error {
	_, err := s.db.Exec(ctx, `UPDATE users SET avatar_url = $2 WHERE id = $1`, userID, url)
	return err
}

// Delete removes the account after re-checking the password, cascading
// to posts, likes and follow edges.
func (s *Service) Delete(ctx context.Context, userID, password string) error {
	var hash string
	if err := s.db.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash); err != nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	return err
}
