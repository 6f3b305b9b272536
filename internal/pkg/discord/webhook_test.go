package discord

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSend(t *testing.T) {
	var gotWait string
	var gotBody WebhookPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWait = r.URL.Query().Get("wait")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "1234567890",
			"channel_id": "42",
		})
	}))
	t.Cleanup(server.Close)

	client := NewWebhookClient()
	payload := &WebhookPayload{
		Username: "KLPoster",
		Embeds:   []Embed{{Title: "New Release"}},
	}

	messageID, err := client.Send(context.Background(), server.URL, payload)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", messageID)
	assert.Equal(t, "true", gotWait)
	assert.Equal(t, "KLPoster", gotBody.Username)
	require.Len(t, gotBody.Embeds, 1)
	assert.Equal(t, "New Release", gotBody.Embeds[0].Title)
}

func TestWebhookSendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unknown Webhook"}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewWebhookClient()
	_, err := client.Send(context.Background(), server.URL, &WebhookPayload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestIdentityClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := NewIdentityClient(server.URL)

	_, err := client.FetchIdentity(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = client.FetchGuilds(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIdentityClientFetches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "111",
			"username": "listener",
			"avatar":   "abc",
		})
	})
	mux.HandleFunc("/users/@me/guilds", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "guild-1", "name": "Music Club"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewIdentityClient(server.URL)

	identity, err := client.FetchIdentity(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, "111", identity.ID)
	assert.Equal(t, "listener", identity.Username)

	guilds, err := client.FetchGuilds(context.Background(), "user-token")
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, "guild-1", guilds[0].ID)
}
