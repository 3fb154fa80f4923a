package account

import "time"

type Profile struct {
	Username   string    `json:"username"`
	CommonName string    `json:"userCommonName"`
	Biography  string    `json:"userBiography"`
	AvatarURL  string    `json:"userAvatarUrl,omitempty"`
	CreatedAt  time.Time `json:"userCreatedAt"`
}

type UpdateRequest struct {
	CommonName string `json:"userCommonName"`
	Biography  string `json:"userBiography"`
}
