package discord

import (
	"KLPoster/internal/model"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "0:59", FormatDuration(59))
	assert.Equal(t, "1:00", FormatDuration(60))
	assert.Equal(t, "3:25", FormatDuration(205))
	assert.Equal(t, "61:05", FormatDuration(3665))
}

func TestFormatTrackListShort(t *testing.T) {
	tracks := []model.Track{
		{Title: "First", DurationSeconds: 180, Position: 1},
		{Title: "Second", DurationSeconds: 240, Position: 2},
	}

	out := FormatTrackList(tracks)
	assert.Equal(t, "1. First (3:00)\n2. Second (4:00)", out)
}

func TestFormatTrackListTruncation(t *testing.T) {
	// Long titles push the rendering past the field limit.
	tracks := make([]model.Track, 15)
	for i := range tracks {
		tracks[i] = model.Track{
			Title:           strings.Repeat("x", 80),
			DurationSeconds: 200,
			Position:        i + 1,
		}
	}

	out := FormatTrackList(tracks)
	lines := strings.Split(out, "\n")
	// 10 track lines, a blank separator, then the summary.
	require.Len(t, lines, 12)
	assert.True(t, strings.HasPrefix(lines[0], "1. "))
	assert.True(t, strings.HasPrefix(lines[9], "10. "))
	assert.Equal(t, "", lines[10])
	assert.Equal(t, "...and 5 more tracks", lines[11])
}

func TestFormatTrackListHardCap(t *testing.T) {
	// Few tracks, but titles so long that even a handful of lines blow
	// the field limit: lines keep dropping until the output fits.
	tracks := make([]model.Track, 5)
	for i := range tracks {
		tracks[i] = model.Track{
			Title:           strings.Repeat("y", 300),
			DurationSeconds: 200,
			Position:        i + 1,
		}
	}

	out := FormatTrackList(tracks)
	assert.LessOrEqual(t, len(out), FieldValueLimit)
	assert.True(t, strings.HasSuffix(out, "...and 2 more tracks"))
	assert.Equal(t, 3, strings.Count(out, "(3:20)"))
}

func TestFormatTrackListNoTruncationAtLimit(t *testing.T) {
	tracks := []model.Track{{Title: "Only", DurationSeconds: 100, Position: 1}}
	out := FormatTrackList(tracks)
	assert.NotContains(t, out, "more tracks")
}

func TestBuildPayload(t *testing.T) {
	scheduled := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := &model.Post{
		Title:       "New Album Out Now",
		Artist:      "The Band",
		Album:       "Second Record",
		ReleaseDate: "2025-05-30",
		SpotifyURL:  "https://open.spotify.com/album/abc",
		LastfmURL:   "https://www.last.fm/music/The+Band/Second+Record",
		ImageURL:    "https://img.example/cover.jpg",
		Description: "Long awaited follow-up.",
	}
	require.NoError(t, post.SetTracks([]model.Track{
		{Title: "Intro", DurationSeconds: 65, Position: 1},
	}))

	payload, err := BuildPayload(post, "KLPoster", "https://img.example/bot.png", scheduled)
	require.NoError(t, err)

	assert.Equal(t, "KLPoster", payload.Username)
	assert.Equal(t, "https://img.example/bot.png", payload.AvatarURL)
	require.Len(t, payload.Embeds, 1)

	embed := payload.Embeds[0]
	assert.Equal(t, "New Album Out Now", embed.Title)
	assert.Equal(t, "Long awaited follow-up.", embed.Description)
	assert.Equal(t, EmbedColor, embed.Color)
	assert.Equal(t, "2025-06-01T12:00:00Z", embed.Timestamp)
	assert.Equal(t, "https://open.spotify.com/album/abc", embed.URL)
	require.NotNil(t, embed.Author)
	assert.Equal(t, "The Band", embed.Author.Name)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "https://img.example/cover.jpg", embed.Image.URL)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Posted via KLPoster", embed.Footer.Text)

	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "Album", embed.Fields[0].Name)
	assert.Equal(t, "Second Record", embed.Fields[0].Value)
	assert.True(t, embed.Fields[0].Inline)
	assert.Equal(t, "Release Date", embed.Fields[1].Name)
	assert.Equal(t, "2025-05-30", embed.Fields[1].Value)
	assert.Equal(t, "Track List", embed.Fields[2].Name)
	assert.Equal(t, "1. Intro (1:05)", embed.Fields[2].Value)
	assert.Equal(t, "Links", embed.Fields[3].Name)
	assert.Equal(t,
		fmt.Sprintf("[Spotify](%s) | [Last.fm](%s)", post.SpotifyURL, post.LastfmURL),
		embed.Fields[3].Value)
}

func TestBuildPayloadFallbacks(t *testing.T) {
	post := &model.Post{
		Title:     "Single Drop",
		Artist:    "Solo Act",
		Album:     "Single Drop",
		LastfmURL: "https://www.last.fm/music/Solo+Act/Single+Drop",
	}

	payload, err := BuildPayload(post, "", "", time.Now())
	require.NoError(t, err)

	embed := payload.Embeds[0]
	// Last.fm URL is the fallback when there is no Spotify link.
	assert.Equal(t, post.LastfmURL, embed.URL)
	assert.Nil(t, embed.Image)

	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "Unknown", embed.Fields[1].Value)
	assert.Equal(t, "Links", embed.Fields[2].Name)
	assert.Equal(t, fmt.Sprintf("[Last.fm](%s)", post.LastfmURL), embed.Fields[2].Value)
}
