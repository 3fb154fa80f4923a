package auth

import "time"

type User struct {
	ID           string    `json:"-"`
	Username     string    `json:"username"`
	Email        string    `json:"-"`
	PasswordHash string    `json:"-"`
	CommonName   string    `json:"userCommonName"`
	CreatedAt    time.Time `json:"userCreatedAt"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
