package dto

import "time"

// DiscordLoginDTO carries an already-obtained Discord access token.
type DiscordLoginDTO struct {
	AccessToken string `json:"access_token" binding:"required"`
}

type UserDTO struct {
	ID        uint64    `json:"id"`
	DiscordID string    `json:"discord_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
