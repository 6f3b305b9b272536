package music

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/model"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultSpotifyAuthURL = "https://accounts.spotify.com/api/token"
	DefaultSpotifyAPIURL  = "https://api.spotify.com/v1"
)

// SpotifyClient wraps the Spotify Web API using client-credentials auth.
// The access token is cached in memory until expiry and re-acquired
// transparently on expiry or 401.
type SpotifyClient struct {
	httpClient   *resty.Client
	authURL      string
	clientID     string
	clientSecret string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewSpotifyClient(cfg config.SpotifyConfig) *SpotifyClient {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultSpotifyAuthURL
	}
	apiURL := cfg.APIBaseURL
	if apiURL == "" {
		apiURL = DefaultSpotifyAPIURL
	}

	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(10 * time.Second)

	return &SpotifyClient{
		httpClient:   client,
		authURL:      authURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type spotifyTrack struct {
	Name        string `json:"name"`
	DurationMs  int    `json:"duration_ms"`
	TrackNumber int    `json:"track_number"`
}

type spotifyAlbum struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	ReleaseDate string `json:"release_date"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifySearchResponse struct {
	Albums struct {
		Items []spotifyAlbum `json:"items"`
	} `json:"albums"`
}

func (s *SpotifyClient) token(ctx context.Context, force bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	var tokenResp spotifyTokenResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBasicAuth(s.clientID, s.clientSecret).
		SetBody("grant_type=client_credentials").
		SetResult(&tokenResp).
		Post(s.authURL)
	if err != nil {
		return "", fmt.Errorf("spotify token request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("spotify token returned status %d", resp.StatusCode())
	}

	s.accessToken = tokenResp.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - time.Minute)
	return s.accessToken, nil
}

// get performs an authenticated GET, re-acquiring the token once on 401.
func (s *SpotifyClient) get(ctx context.Context, path string, params map[string]string, out any) error {
	token, err := s.token(ctx, false)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < 2; attempt++ {
		resp, err := s.httpClient.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParams(params).
			SetResult(out).
			Get(path)
		if err != nil {
			return fmt.Errorf("spotify request: %w", err)
		}
		if resp.StatusCode() == http.StatusUnauthorized && attempt == 0 {
			token, err = s.token(ctx, true)
			if err != nil {
				return err
			}
			continue
		}
		if resp.IsError() {
			return fmt.Errorf("spotify returned status %d", resp.StatusCode())
		}
		return nil
	}
	return fmt.Errorf("spotify: unauthorized after token refresh")
}

// SearchAlbum finds the best album match for the query. Returns (nil, nil)
// when nothing matched.
func (s *SpotifyClient) SearchAlbum(ctx context.Context, query string) (*AlbumInfo, error) {
	var search spotifySearchResponse
	err := s.get(ctx, "/search", map[string]string{
		"q":     query,
		"type":  "album",
		"limit": "1",
	}, &search)
	if err != nil {
		return nil, err
	}
	if len(search.Albums.Items) == 0 {
		return nil, nil
	}

	var album spotifyAlbum
	if err := s.get(ctx, "/albums/"+search.Albums.Items[0].ID, nil, &album); err != nil {
		return nil, err
	}

	tracks := make([]model.Track, 0, len(album.Tracks.Items))
	for _, track := range album.Tracks.Items {
		tracks = append(tracks, model.Track{
			Title:           track.Name,
			DurationSeconds: (track.DurationMs + 500) / 1000,
			Position:        track.TrackNumber,
		})
	}

	info := &AlbumInfo{
		Title:       album.Name,
		ReleaseDate: album.ReleaseDate,
		SpotifyURL:  album.ExternalURLs.Spotify,
		Tracks:      tracks,
	}
	if len(album.Artists) > 0 {
		info.Artist = album.Artists[0].Name
	}
	if len(album.Images) > 0 {
		info.CoverURL = album.Images[0].URL
	}
	return info, nil
}
