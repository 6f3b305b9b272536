package model

import (
	"time"
)

// Channel is a registered delivery target inside the configured guild.
type Channel struct {
	ID         uint64    `gorm:"primaryKey"`
	GuildID    string    `gorm:"type:varchar(32);not null;index:idx_guild_id" json:"guild_id"`
	Name       string    `gorm:"type:varchar(128);not null" json:"name"`
	WebhookURL string    `gorm:"type:varchar(512)" json:"webhook_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Channel) TableName() string {
	return "channels"
}
