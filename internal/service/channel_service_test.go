package service

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/api/dto"
	"KLPoster/internal/pkg/discord"
	"KLPoster/internal/repository/memory"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDeliverer struct {
	sentTo []string
	err    error
}

func (s *stubDeliverer) Send(_ context.Context, webhookURL string, _ *discord.WebhookPayload) (string, error) {
	s.sentTo = append(s.sentTo, webhookURL)
	if s.err != nil {
		return "", s.err
	}
	return "msg-test", nil
}

func newChannelService(deliverer discord.Deliverer) ChannelService {
	return NewChannelService(memory.NewChannelRepository(), deliverer, config.DiscordConfig{
		GuildID:     "guild-1",
		BotUsername: "KLPoster",
	})
}

func TestCreateChannelValidatesWebhook(t *testing.T) {
	svc := newChannelService(&stubDeliverer{})

	_, err := svc.CreateChannel(context.Background(), &dto.ChannelBaseDTO{
		Name:       "releases",
		WebhookURL: "https://example.com/not-a-webhook",
	})
	assert.ErrorIs(t, err, ErrWebhookInvalid)

	channel, err := svc.CreateChannel(context.Background(), &dto.ChannelBaseDTO{
		Name:       "releases",
		WebhookURL: "https://discord.com/api/webhooks/1/token",
	})
	require.NoError(t, err)
	assert.Equal(t, "guild-1", channel.GuildID)
	assert.Equal(t, "releases", channel.Name)
}

func TestListChannelsScopedToGuild(t *testing.T) {
	svc := newChannelService(&stubDeliverer{})

	_, err := svc.CreateChannel(context.Background(), &dto.ChannelBaseDTO{
		Name:       "releases",
		WebhookURL: "https://discord.com/api/webhooks/1/token",
	})
	require.NoError(t, err)

	channels, err := svc.ListChannels(context.Background())
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "releases", channels[0].Name)
}

func TestDeleteChannelNotFound(t *testing.T) {
	svc := newChannelService(&stubDeliverer{})

	err := svc.DeleteChannel(context.Background(), 42)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestTestChannelSendsThroughWebhook(t *testing.T) {
	deliverer := &stubDeliverer{}
	svc := newChannelService(deliverer)

	channel, err := svc.CreateChannel(context.Background(), &dto.ChannelBaseDTO{
		Name:       "releases",
		WebhookURL: "https://discord.com/api/webhooks/1/token",
	})
	require.NoError(t, err)

	require.NoError(t, svc.TestChannel(context.Background(), channel.ID))
	require.Len(t, deliverer.sentTo, 1)
	assert.Equal(t, "https://discord.com/api/webhooks/1/token", deliverer.sentTo[0])

	err = svc.TestChannel(context.Background(), 999)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestTestChannelDeliveryFailure(t *testing.T) {
	deliverer := &stubDeliverer{err: errors.New("webhook returned status 404")}
	svc := newChannelService(deliverer)

	channel, err := svc.CreateChannel(context.Background(), &dto.ChannelBaseDTO{
		Name:       "releases",
		WebhookURL: "https://discord.com/api/webhooks/1/token",
	})
	require.NoError(t, err)

	err = svc.TestChannel(context.Background(), channel.ID)
	assert.ErrorIs(t, err, ErrWebhookInvalid)
}
