package model

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primaryKey"`
	DiscordID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_discord_id" json:"discord_id"`
	Username  string    `gorm:"type:varchar(64);not null" json:"username"`
	Avatar    string    `gorm:"type:varchar(255)" json:"avatar"`
	Guilds    string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
