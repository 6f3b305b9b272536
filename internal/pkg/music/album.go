package music

import (
	"KLPoster/internal/model"

	"github.com/goccy/go-json"
)

// AlbumInfo is the normalized shape every provider maps into.
type AlbumInfo struct {
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	CoverURL    string        `json:"cover_url,omitempty"`
	ReleaseDate string        `json:"release_date,omitempty"`
	SpotifyURL  string        `json:"spotify_url,omitempty"`
	LastfmURL   string        `json:"lastfm_url,omitempty"`
	Description string        `json:"description,omitempty"`
	Tracks      []model.Track `json:"tracks,omitempty"`
}

// flexInt tolerates providers returning numbers either raw or quoted.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if len(data) >= 2 && data[0] == '"' {
		data = data[1 : len(data)-1]
	}
	if len(data) == 0 {
		*f = 0
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(v)
	return nil
}
