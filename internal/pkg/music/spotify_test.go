package music

import (
	"KLPoster/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spotifyStub struct {
	tokenRequests  atomic.Int64
	searchRequests atomic.Int64
	rejectToken    string
	token          string
}

func newSpotifyStub(t *testing.T) (*spotifyStub, *SpotifyClient) {
	t.Helper()

	stub := &spotifyStub{token: "token-1"}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		stub.tokenRequests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": stub.token,
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		stub.searchRequests.Add(1)
		if r.Header.Get("Authorization") == "Bearer "+stub.rejectToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"albums": map[string]any{
				"items": []map[string]any{{"id": "album-1", "name": "Record"}},
			},
		})
	})
	mux.HandleFunc("/albums/album-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+stub.rejectToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           "album-1",
			"name":         "Record",
			"artists":      []map[string]any{{"name": "The Band"}},
			"release_date": "2025-05-30",
			"images":       []map[string]any{{"url": "https://i.scdn.co/image/abc"}},
			"external_urls": map[string]any{
				"spotify": "https://open.spotify.com/album/album-1",
			},
			"tracks": map[string]any{
				"items": []map[string]any{
					{"name": "Intro", "duration_ms": 120400, "track_number": 1},
					{"name": "Outro", "duration_ms": 180600, "track_number": 2},
				},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewSpotifyClient(config.SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthURL:      server.URL + "/auth/token",
		APIBaseURL:   server.URL,
	})
	return stub, client
}

func TestSpotifySearchAlbum(t *testing.T) {
	_, client := newSpotifyStub(t)

	info, err := client.SearchAlbum(context.Background(), "record")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "Record", info.Title)
	assert.Equal(t, "The Band", info.Artist)
	assert.Equal(t, "2025-05-30", info.ReleaseDate)
	assert.Equal(t, "https://i.scdn.co/image/abc", info.CoverURL)
	assert.Equal(t, "https://open.spotify.com/album/album-1", info.SpotifyURL)

	require.Len(t, info.Tracks, 2)
	// Milliseconds round to the nearest second.
	assert.Equal(t, 120, info.Tracks[0].DurationSeconds)
	assert.Equal(t, 181, info.Tracks[1].DurationSeconds)
	assert.Equal(t, 1, info.Tracks[0].Position)
}

func TestSpotifyTokenCached(t *testing.T) {
	stub, client := newSpotifyStub(t)

	_, err := client.SearchAlbum(context.Background(), "record")
	require.NoError(t, err)
	_, err = client.SearchAlbum(context.Background(), "record")
	require.NoError(t, err)

	assert.Equal(t, int64(1), stub.tokenRequests.Load())
}

func TestSpotifyTokenRefreshOn401(t *testing.T) {
	stub, client := newSpotifyStub(t)

	// First token is rejected; the retry must fetch a fresh one.
	stub.rejectToken = "token-1"

	_, err := client.token(context.Background(), false)
	require.NoError(t, err)
	stub.token = "token-2"

	info, err := client.SearchAlbum(context.Background(), "record")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, int64(2), stub.tokenRequests.Load())
}

func TestSpotifySearchNoMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "t", "expires_in": 3600})
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"albums": map[string]any{"items": []map[string]any{}},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewSpotifyClient(config.SpotifyConfig{
		AuthURL:    server.URL + "/auth/token",
		APIBaseURL: server.URL,
	})

	info, err := client.SearchAlbum(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, info)
}
