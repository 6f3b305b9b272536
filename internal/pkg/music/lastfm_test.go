package music

import (
	"KLPoster/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLastfmServer(t *testing.T, info map[string]any) *LastfmClient {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "key", r.URL.Query().Get("api_key"))
		require.Equal(t, "json", r.URL.Query().Get("format"))

		switch r.URL.Query().Get("method") {
		case "album.search":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": map[string]any{
					"albummatches": map[string]any{
						"album": []map[string]any{
							{"name": "Record", "artist": "The Band"},
						},
					},
				},
			})
		case "album.getinfo":
			require.Equal(t, "The Band", r.URL.Query().Get("artist"))
			require.Equal(t, "Record", r.URL.Query().Get("album"))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"album": info})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewLastfmClient(config.LastfmConfig{
		APIKey:     "key",
		APIBaseURL: server.URL,
	})
}

func TestLastfmSearchAlbum(t *testing.T) {
	client := newLastfmServer(t, map[string]any{
		"name":   "Record",
		"artist": "The Band",
		"url":    "https://www.last.fm/music/The+Band/Record",
		"image": []map[string]any{
			{"#text": "https://img/small.png", "size": "small"},
			{"#text": "https://img/large.png", "size": "large"},
			{"#text": "https://img/extralarge.png", "size": "extralarge"},
		},
		"tracks": map[string]any{
			"track": []map[string]any{
				{"name": "Intro", "duration": "120", "@attr": map[string]any{"rank": 1}},
				{"name": "Outro", "duration": 180, "@attr": map[string]any{"rank": "2"}},
			},
		},
		"wiki": map[string]any{
			"summary": "Sophomore release.",
			"content": "Sophomore release. Full text.",
		},
	})

	info, err := client.SearchAlbum(context.Background(), "record")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "Record", info.Title)
	assert.Equal(t, "The Band", info.Artist)
	assert.Equal(t, "https://www.last.fm/music/The+Band/Record", info.LastfmURL)
	// Largest available image wins.
	assert.Equal(t, "https://img/extralarge.png", info.CoverURL)
	assert.Equal(t, "Sophomore release.", info.Description)

	require.Len(t, info.Tracks, 2)
	assert.Equal(t, "Intro", info.Tracks[0].Title)
	assert.Equal(t, 120, info.Tracks[0].DurationSeconds)
	assert.Equal(t, 2, info.Tracks[1].Position)
}

func TestLastfmSingleTrackObject(t *testing.T) {
	client := newLastfmServer(t, map[string]any{
		"name":   "Record",
		"artist": "The Band",
		"tracks": map[string]any{
			// A single track comes back as an object, not an array.
			"track": map[string]any{"name": "Only One", "duration": 200},
		},
	})

	info, err := client.SearchAlbum(context.Background(), "record")
	require.NoError(t, err)
	require.NotNil(t, info)

	require.Len(t, info.Tracks, 1)
	assert.Equal(t, "Only One", info.Tracks[0].Title)
	// Rank is absent, so the index assigns the position.
	assert.Equal(t, 1, info.Tracks[0].Position)
}

func TestLastfmImageFallback(t *testing.T) {
	client := newLastfmServer(t, map[string]any{
		"name":   "Record",
		"artist": "The Band",
		"image": []map[string]any{
			{"#text": "https://img/small.png", "size": "small"},
			{"#text": "", "size": "extralarge"},
		},
	})

	info, err := client.SearchAlbum(context.Background(), "record")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "https://img/small.png", info.CoverURL)
}

func TestLastfmNoMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": map[string]any{
				"albummatches": map[string]any{"album": []map[string]any{}},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewLastfmClient(config.LastfmConfig{APIKey: "key", APIBaseURL: server.URL})

	info, err := client.SearchAlbum(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, info)
}
