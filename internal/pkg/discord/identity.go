package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnauthorized marks a rejected Discord access token.
var ErrUnauthorized = errors.New("discord: unauthorized")

const DefaultAPIBaseURL = "https://discord.com/api/v10"

// Identity is the subset of /users/@me this service cares about.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IdentityClient introspects a user-supplied Discord access token. The
// OAuth handshake itself happens outside this service.
type IdentityClient struct {
	httpClient *resty.Client
}

func NewIdentityClient(baseURL string) *IdentityClient {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	return &IdentityClient{
		httpClient: client,
	}
}

func (s *IdentityClient) FetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&identity).
		Get("/users/@me")
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.IsError() {
		return nil, fmt.Errorf("identity returned status %d", resp.StatusCode())
	}

	return &identity, nil
}

func (s *IdentityClient) FetchGuilds(ctx context.Context, accessToken string) ([]Guild, error) {
	var guilds []Guild

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&guilds).
		Get("/users/@me/guilds")
	if err != nil {
		return nil, fmt.Errorf("fetch guilds: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.IsError() {
		return nil, fmt.Errorf("guilds returned status %d", resp.StatusCode())
	}

	return guilds, nil
}
