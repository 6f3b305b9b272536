package dto

import "time"

// TrackDTO is one track-list entry as exchanged with clients.
type TrackDTO struct {
	Title           string `json:"title" binding:"required" validate:"min=1,max=255"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
	Position        int    `json:"position" validate:"min=0"`
}

// PostBaseDTO is the writable part of a post (create and update).
type PostBaseDTO struct {
	Title       string     `json:"title" binding:"required" validate:"min=1,max=255"`
	Artist      string     `json:"artist" binding:"required" validate:"min=1,max=255"`
	Album       string     `json:"album" binding:"required" validate:"min=1,max=255"`
	ReleaseDate string     `json:"release_date" validate:"omitempty,max=32"`
	SpotifyURL  string     `json:"spotify_url" validate:"omitempty,url"`
	LastfmURL   string     `json:"lastfm_url" validate:"omitempty,url"`
	ImageURL    string     `json:"image_url" validate:"omitempty,url"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	TrackList   []TrackDTO `json:"track_list" validate:"omitempty,dive"`
	ChannelID   *uint64    `json:"channel_id"`
}

type PostDTO struct {
	ID               uint64     `json:"id"`
	UserID           uint64     `json:"user_id"`
	Title            string     `json:"title"`
	Artist           string     `json:"artist"`
	Album            string     `json:"album"`
	ReleaseDate      string     `json:"release_date,omitempty"`
	SpotifyURL       string     `json:"spotify_url,omitempty"`
	LastfmURL        string     `json:"lastfm_url,omitempty"`
	ImageURL         string     `json:"image_url,omitempty"`
	Description      string     `json:"description,omitempty"`
	TrackList        []TrackDTO `json:"track_list,omitempty"`
	Status           string     `json:"status"`
	ScheduledFor     *time.Time `json:"scheduled_for,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	ChannelID        *uint64    `json:"channel_id,omitempty"`
	DiscordMessageID string     `json:"discord_message_id,omitempty"`
	DiscordChannelID string     `json:"discord_channel_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// PostListDTO is the list query.
type PostListDTO struct {
	Status   string `form:"status"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=10" binding:"omitempty,min=1,max=100"`
}

// PostPageDTO is one page of posts.
type PostPageDTO struct {
	Posts      []*PostDTO `json:"posts"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// ScheduleDTO carries the requested publication time.
type ScheduleDTO struct {
	PublishAt time.Time `json:"publish_at" binding:"required"`
}
