package discord

import (
	"KLPoster/internal/model"
	"fmt"
	"strings"
	"time"
)

const (
	// EmbedColor Spotify green, as the announcements always looked.
	EmbedColor = 0x1DB954

	// FieldValueLimit is Discord's per-field character cap.
	FieldValueLimit = 1024

	// visibleTracksOnOverflow is how many lines survive truncation.
	visibleTracksOnOverflow = 10

	footerText = "Posted via KLPoster"
)

type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

type EmbedImage struct {
	URL string `json:"url"`
}

type EmbedAuthor struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// WebhookPayload is the outbound webhook message body.
type WebhookPayload struct {
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds"`
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatTrackList renders the track list for an embed field. When the full
// rendering exceeds the field limit only the first lines are kept and the
// rest is summarized as "...and N more tracks"; lines keep dropping until
// the summary itself fits, since Discord rejects over-limit fields outright.
func FormatTrackList(tracks []model.Track) string {
	lines := make([]string, 0, len(tracks))
	for _, track := range tracks {
		lines = append(lines, fmt.Sprintf("%d. %s (%s)", track.Position, track.Title, FormatDuration(track.DurationSeconds)))
	}

	output := strings.Join(lines, "\n")
	if len(output) > FieldValueLimit {
		visible := lines
		if len(visible) > visibleTracksOnOverflow {
			visible = visible[:visibleTracksOnOverflow]
		}
		for {
			output = strings.Join(visible, "\n") + fmt.Sprintf("\n\n...and %d more tracks", len(tracks)-len(visible))
			if len(output) <= FieldValueLimit || len(visible) == 0 {
				break
			}
			visible = visible[:len(visible)-1]
		}
	}

	return output
}

// BuildPayload converts a post into a webhook payload. Pure: no I/O, the
// timestamp is injected by the caller.
func BuildPayload(post *model.Post, username, avatarURL string, now time.Time) (*WebhookPayload, error) {
	tracks, err := post.Tracks()
	if err != nil {
		return nil, fmt.Errorf("decode track list: %w", err)
	}

	embed := Embed{
		Title:       post.Title,
		Description: post.Description,
		Color:       EmbedColor,
		Timestamp:   now.UTC().Format(time.RFC3339),
		Author:      &EmbedAuthor{Name: post.Artist},
		Footer:      &EmbedFooter{Text: footerText},
	}

	if post.SpotifyURL != "" {
		embed.URL = post.SpotifyURL
	} else if post.LastfmURL != "" {
		embed.URL = post.LastfmURL
	}

	if post.ImageURL != "" {
		embed.Image = &EmbedImage{URL: post.ImageURL}
	}

	releaseDate := post.ReleaseDate
	if releaseDate == "" {
		releaseDate = "Unknown"
	}
	embed.Fields = []EmbedField{
		{Name: "Album", Value: post.Album, Inline: true},
		{Name: "Release Date", Value: releaseDate, Inline: true},
	}

	if len(tracks) > 0 {
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "Track List",
			Value: FormatTrackList(tracks),
		})
	}

	var links []string
	if post.SpotifyURL != "" {
		links = append(links, fmt.Sprintf("[Spotify](%s)", post.SpotifyURL))
	}
	if post.LastfmURL != "" {
		links = append(links, fmt.Sprintf("[Last.fm](%s)", post.LastfmURL))
	}
	if len(links) > 0 {
		embed.Fields = append(embed.Fields, EmbedField{
			Name:  "Links",
			Value: strings.Join(links, " | "),
		})
	}

	return &WebhookPayload{
		Username:  username,
		AvatarURL: avatarURL,
		Embeds:    []Embed{embed},
	}, nil
}
