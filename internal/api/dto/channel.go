package dto

import "time"

type ChannelBaseDTO struct {
	Name       string `json:"name" binding:"required" validate:"min=1,max=128"`
	WebhookURL string `json:"webhook_url" binding:"required" validate:"url"`
}

type ChannelDTO struct {
	ID        uint64    `json:"id"`
	GuildID   string    `json:"guild_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
