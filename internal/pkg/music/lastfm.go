package music

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/model"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const DefaultLastfmAPIURL = "https://ws.audioscrobbler.com/2.0/"

// LastfmClient wraps the Last.fm API (simple api_key auth, no token flow).
type LastfmClient struct {
	httpClient *resty.Client
	apiKey     string
}

func NewLastfmClient(cfg config.LastfmConfig) *LastfmClient {
	apiURL := cfg.APIBaseURL
	if apiURL == "" {
		apiURL = DefaultLastfmAPIURL
	}

	client := resty.New().
		SetBaseURL(apiURL).
		SetTimeout(10 * time.Second)

	return &LastfmClient{
		httpClient: client,
		apiKey:     cfg.APIKey,
	}
}

type lastfmImage struct {
	Text string `json:"#text"`
	Size string `json:"size"`
}

type lastfmTrack struct {
	Name     string  `json:"name"`
	Duration flexInt `json:"duration"`
	Attr     struct {
		Rank flexInt `json:"rank"`
	} `json:"@attr"`
}

// lastfmTrackList tolerates the API returning a single track as an object
// instead of a one-element array.
type lastfmTrackList struct {
	Tracks []lastfmTrack
}

func (l *lastfmTrackList) UnmarshalJSON(data []byte) error {
	var many []lastfmTrack
	if err := json.Unmarshal(data, &many); err == nil {
		l.Tracks = many
		return nil
	}
	var one lastfmTrack
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	l.Tracks = []lastfmTrack{one}
	return nil
}

type lastfmAlbum struct {
	Name   string        `json:"name"`
	Artist string        `json:"artist"`
	URL    string        `json:"url"`
	Image  []lastfmImage `json:"image"`
	Tracks struct {
		Track lastfmTrackList `json:"track"`
	} `json:"tracks"`
	Wiki struct {
		Summary string `json:"summary"`
		Content string `json:"content"`
	} `json:"wiki"`
}

type lastfmSearchResponse struct {
	Results struct {
		AlbumMatches struct {
			Album []struct {
				Name   string `json:"name"`
				Artist string `json:"artist"`
			} `json:"album"`
		} `json:"albummatches"`
	} `json:"results"`
}

type lastfmInfoResponse struct {
	Album *lastfmAlbum `json:"album"`
}

func coverFromImages(images []lastfmImage) string {
	for _, size := range []string{"extralarge", "large"} {
		for _, img := range images {
			if img.Size == size && img.Text != "" {
				return img.Text
			}
		}
	}
	for _, img := range images {
		if img.Text != "" {
			return img.Text
		}
	}
	return ""
}

func (s *LastfmClient) call(ctx context.Context, params map[string]string, out any) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("api_key", s.apiKey).
		SetQueryParam("format", "json").
		SetResult(out).
		Get("")
	if err != nil {
		return fmt.Errorf("lastfm request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("lastfm returned status %d", resp.StatusCode())
	}
	return nil
}

// SearchAlbum searches for the query and resolves the top match into the
// normalized shape. Returns (nil, nil) when nothing matched.
func (s *LastfmClient) SearchAlbum(ctx context.Context, query string) (*AlbumInfo, error) {
	var search lastfmSearchResponse
	err := s.call(ctx, map[string]string{
		"method": "album.search",
		"album":  query,
		"limit":  "1",
	}, &search)
	if err != nil {
		return nil, err
	}

	matches := search.Results.AlbumMatches.Album
	if len(matches) == 0 {
		return nil, nil
	}

	var info lastfmInfoResponse
	err = s.call(ctx, map[string]string{
		"method": "album.getinfo",
		"artist": matches[0].Artist,
		"album":  matches[0].Name,
	}, &info)
	if err != nil {
		return nil, err
	}
	if info.Album == nil {
		return nil, nil
	}

	album := info.Album
	tracks := make([]model.Track, 0, len(album.Tracks.Track.Tracks))
	for i, track := range album.Tracks.Track.Tracks {
		position := int(track.Attr.Rank)
		if position == 0 {
			position = i + 1
		}
		tracks = append(tracks, model.Track{
			Title:           track.Name,
			DurationSeconds: int(track.Duration),
			Position:        position,
		})
	}

	description := album.Wiki.Summary
	if description == "" {
		description = album.Wiki.Content
	}

	return &AlbumInfo{
		Title:       album.Name,
		Artist:      album.Artist,
		CoverURL:    coverFromImages(album.Image),
		LastfmURL:   album.URL,
		Description: description,
		Tracks:      tracks,
	}, nil
}
