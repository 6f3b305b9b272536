package service

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/pkg/discord"
	"KLPoster/internal/pkg/security"
	"KLPoster/internal/repository"
	"KLPoster/internal/repository/memory"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscordStub(t *testing.T, guildIDs []string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "111",
			"username": "listener",
			"avatar":   "abc",
		})
	})
	mux.HandleFunc("/users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		guilds := make([]map[string]any, 0, len(guildIDs))
		for _, id := range guildIDs {
			guilds = append(guilds, map[string]any{"id": id, "name": "g-" + id})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(guilds)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newUserService(t *testing.T, guildIDs []string) (UserService, repository.UserRepo) {
	t.Helper()

	server := newDiscordStub(t, guildIDs)
	userRepo := memory.NewUserRepo()
	svc := NewUserService(userRepo, discord.NewIdentityClient(server.URL), config.DiscordConfig{
		GuildID: "guild-1",
	}, false)
	return svc, userRepo
}

func TestLoginWithDiscord(t *testing.T) {
	svc, _ := newUserService(t, []string{"guild-0", "guild-1"})

	result, err := svc.LoginWithDiscord(context.Background(), "good-token")
	require.NoError(t, err)
	require.NotNil(t, result.User)

	assert.Equal(t, "111", result.User.DiscordID)
	assert.Equal(t, "listener", result.User.Username)
	assert.NotZero(t, result.User.ID)

	claims, err := security.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "111", claims.DiscordID)
	assert.Contains(t, claims.Guilds, "guild-1")
}

func TestLoginWithDiscordUpsertsExistingUser(t *testing.T) {
	svc, userRepo := newUserService(t, []string{"guild-1"})

	first, err := svc.LoginWithDiscord(context.Background(), "good-token")
	require.NoError(t, err)
	second, err := svc.LoginWithDiscord(context.Background(), "good-token")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)

	stored, err := userRepo.GetUserByDiscordId(context.Background(), "111")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "listener", stored.Username)
}

func TestLoginWithDiscordBadToken(t *testing.T) {
	svc, _ := newUserService(t, []string{"guild-1"})

	_, err := svc.LoginWithDiscord(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLoginWithDiscordNotGuildMember(t *testing.T) {
	svc, userRepo := newUserService(t, []string{"guild-other"})

	_, err := svc.LoginWithDiscord(context.Background(), "good-token")
	assert.ErrorIs(t, err, ErrNotGuildMember)

	// No user record is created for a rejected login.
	stored, err := userRepo.GetUserByDiscordId(context.Background(), "111")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestGetUserInfo(t *testing.T) {
	svc, _ := newUserService(t, []string{"guild-1"})

	result, err := svc.LoginWithDiscord(context.Background(), "good-token")
	require.NoError(t, err)

	user, err := svc.GetUserInfo(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "listener", user.Username)

	_, err = svc.GetUserInfo(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
