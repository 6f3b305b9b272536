package model

import (
	"time"

	"github.com/goccy/go-json"
)

// Track is one entry of a post's track list, stored JSON-encoded in the
// track_list column.
type Track struct {
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
	Position        int    `json:"position"`
}

type Post struct {
	ID               uint64     `gorm:"primaryKey"`
	UserID           uint64     `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title            string     `gorm:"type:varchar(255);not null" json:"title"`
	Artist           string     `gorm:"type:varchar(255);not null" json:"artist"`
	Album            string     `gorm:"type:varchar(255);not null" json:"album"`
	ReleaseDate      string     `gorm:"type:varchar(32)" json:"release_date"`
	SpotifyURL       string     `gorm:"type:varchar(512)" json:"spotify_url"`
	LastfmURL        string     `gorm:"type:varchar(512)" json:"lastfm_url"`
	ImageURL         string     `gorm:"type:varchar(512)" json:"image_url"`
	Description      string     `gorm:"type:text" json:"description"`
	TrackList        string     `gorm:"type:text" json:"track_list"`
	Status           PostStatus `gorm:"type:varchar(16);not null;default:'DRAFT';index:idx_status_due" json:"status"`
	ScheduledFor     *time.Time `gorm:"index:idx_status_due" json:"scheduled_for"`
	PublishedAt      *time.Time `json:"published_at"`
	ChannelID        *uint64    `json:"channel_id"`
	DiscordMessageID string     `gorm:"type:varchar(32)" json:"discord_message_id"`
	DiscordChannelID string     `gorm:"type:varchar(32)" json:"discord_channel_id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// Tracks decodes the stored track list. An empty column yields nil.
func (p *Post) Tracks() ([]Track, error) {
	if p.TrackList == "" {
		return nil, nil
	}
	var tracks []Track
	if err := json.Unmarshal([]byte(p.TrackList), &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// SetTracks encodes tracks into the track_list column.
func (p *Post) SetTracks(tracks []Track) error {
	if len(tracks) == 0 {
		p.TrackList = ""
		return nil
	}
	raw, err := json.Marshal(tracks)
	if err != nil {
		return err
	}
	p.TrackList = string(raw)
	return nil
}

// Due reports whether the post is eligible for delivery at now.
func (p *Post) Due(now time.Time) bool {
	return p.Status == StatusScheduled && p.ScheduledFor != nil && !p.ScheduledFor.After(now)
}
