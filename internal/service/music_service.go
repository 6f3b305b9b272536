package service

import (
	"KLPoster/internal/pkg/consts"
	"KLPoster/internal/pkg/music"
	"KLPoster/internal/pkg/redis"
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
)

// AlbumSearcher is the provider contract both music clients satisfy.
type AlbumSearcher interface {
	SearchAlbum(ctx context.Context, query string) (*music.AlbumInfo, error)
}

type MusicService interface {
	SearchAlbum(ctx context.Context, query string) (*music.AlbumInfo, error)
	SearchSpotify(ctx context.Context, query string) (*music.AlbumInfo, error)
	SearchLastfm(ctx context.Context, query string) (*music.AlbumInfo, error)
}

type musicServiceImpl struct {
	spotify  AlbumSearcher
	lastfm   AlbumSearcher
	useCache bool
}

func NewMusicService(spotify AlbumSearcher, lastfm AlbumSearcher, useCache bool) MusicService {
	return &musicServiceImpl{
		spotify:  spotify,
		lastfm:   lastfm,
		useCache: useCache,
	}
}

func (s *musicServiceImpl) cachedAlbum(ctx context.Context, query string) *music.AlbumInfo {
	if !s.useCache {
		return nil
	}
	raw, err := redis.GetValue(ctx, consts.AlbumSearchKey+query)
	if err != nil || raw == "" {
		return nil
	}
	var info music.AlbumInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil
	}
	return &info
}

func (s *musicServiceImpl) cacheAlbum(ctx context.Context, query string, info *music.AlbumInfo) {
	if !s.useCache {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	err = redis.SetWithExpiration(ctx, consts.AlbumSearchKey+query, string(raw),
		consts.AlbumSearchTTLMinutes*time.Minute)
	if err != nil {
		slog.WarnContext(ctx, "failed to cache album search result", "query", query, "error", err)
	}
}

// SearchAlbum merges both providers: Spotify supplies the primary metadata,
// Last.fm fills in what Spotify lacks (description, its own URL, and cover
// or tracks when Spotify has none).
func (s *musicServiceImpl) SearchAlbum(ctx context.Context, query string) (*music.AlbumInfo, error) {
	if cached := s.cachedAlbum(ctx, query); cached != nil {
		return cached, nil
	}

	spotifyInfo, spotifyErr := s.spotify.SearchAlbum(ctx, query)
	if spotifyErr != nil {
		slog.WarnContext(ctx, "spotify search failed", "query", query, "error", spotifyErr)
	}
	lastfmInfo, lastfmErr := s.lastfm.SearchAlbum(ctx, query)
	if lastfmErr != nil {
		slog.WarnContext(ctx, "lastfm search failed", "query", query, "error", lastfmErr)
	}

	if spotifyErr != nil && lastfmErr != nil {
		return nil, ErrProviderFailure
	}

	merged := mergeAlbumInfo(spotifyInfo, lastfmInfo)
	if merged == nil {
		return nil, ErrAlbumNotFound
	}

	s.cacheAlbum(ctx, query, merged)
	return merged, nil
}

func mergeAlbumInfo(spotifyInfo, lastfmInfo *music.AlbumInfo) *music.AlbumInfo {
	if spotifyInfo == nil && lastfmInfo == nil {
		return nil
	}
	if spotifyInfo == nil {
		return lastfmInfo
	}
	if lastfmInfo == nil {
		return spotifyInfo
	}

	merged := *spotifyInfo
	merged.LastfmURL = lastfmInfo.LastfmURL
	merged.Description = lastfmInfo.Description
	if merged.CoverURL == "" {
		merged.CoverURL = lastfmInfo.CoverURL
	}
	if len(merged.Tracks) == 0 {
		merged.Tracks = lastfmInfo.Tracks
	}
	return &merged
}

func (s *musicServiceImpl) SearchSpotify(ctx context.Context, query string) (*music.AlbumInfo, error) {
	return searchOne(ctx, s.spotify, query)
}

func (s *musicServiceImpl) SearchLastfm(ctx context.Context, query string) (*music.AlbumInfo, error) {
	return searchOne(ctx, s.lastfm, query)
}

func searchOne(ctx context.Context, provider AlbumSearcher, query string) (*music.AlbumInfo, error) {
	info, err := provider.SearchAlbum(ctx, query)
	if err != nil {
		return nil, ErrProviderFailure
	}
	if info == nil {
		return nil, ErrAlbumNotFound
	}
	return info, nil
}
