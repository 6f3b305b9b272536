package service

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/api/dto"
	"KLPoster/internal/model"
	"KLPoster/internal/pkg/discord"
	"KLPoster/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

const webhookURLPrefix = "https://discord.com/api/webhooks/"

type ChannelService interface {
	CreateChannel(ctx context.Context, baseDTO *dto.ChannelBaseDTO) (*dto.ChannelDTO, error)
	ListChannels(ctx context.Context) ([]*dto.ChannelDTO, error)
	DeleteChannel(ctx context.Context, channelID uint64) error
	TestChannel(ctx context.Context, channelID uint64) error
}

type channelServiceImpl struct {
	channelRepo repository.ChannelRepo
	deliverer   discord.Deliverer
	discordCfg  config.DiscordConfig
}

func NewChannelService(channelRepo repository.ChannelRepo, deliverer discord.Deliverer, discordCfg config.DiscordConfig) ChannelService {
	return &channelServiceImpl{
		channelRepo: channelRepo,
		deliverer:   deliverer,
		discordCfg:  discordCfg,
	}
}

func toChannelDTO(channel *model.Channel) (*dto.ChannelDTO, error) {
	var channelDTO dto.ChannelDTO
	if err := copier.Copy(&channelDTO, channel); err != nil {
		return nil, err
	}
	return &channelDTO, nil
}

func (s *channelServiceImpl) CreateChannel(ctx context.Context, baseDTO *dto.ChannelBaseDTO) (*dto.ChannelDTO, error) {
	if !strings.HasPrefix(baseDTO.WebhookURL, webhookURLPrefix) {
		return nil, ErrWebhookInvalid
	}

	channel := &model.Channel{
		GuildID:    s.discordCfg.GuildID,
		Name:       baseDTO.Name,
		WebhookURL: baseDTO.WebhookURL,
	}
	if err := s.channelRepo.CreateChannel(ctx, channel); err != nil {
		return nil, err
	}
	return toChannelDTO(channel)
}

func (s *channelServiceImpl) ListChannels(ctx context.Context) ([]*dto.ChannelDTO, error) {
	channels, err := s.channelRepo.ListChannels(ctx, s.discordCfg.GuildID)
	if err != nil {
		return nil, err
	}
	channelDTOs := make([]*dto.ChannelDTO, 0, len(channels))
	for _, channel := range channels {
		channelDTO, err := toChannelDTO(channel)
		if err != nil {
			return nil, err
		}
		channelDTOs = append(channelDTOs, channelDTO)
	}
	return channelDTOs, nil
}

func (s *channelServiceImpl) getChannel(ctx context.Context, channelID uint64) (*model.Channel, error) {
	channel, err := s.channelRepo.GetChannel(ctx, channelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return channel, nil
}

func (s *channelServiceImpl) DeleteChannel(ctx context.Context, channelID uint64) error {
	if _, err := s.getChannel(ctx, channelID); err != nil {
		return err
	}
	return s.channelRepo.DeleteChannel(ctx, channelID)
}

// TestChannel sends a short test message through the channel webhook so the
// owner can verify the URL before scheduling anything against it.
func (s *channelServiceImpl) TestChannel(ctx context.Context, channelID uint64) error {
	channel, err := s.getChannel(ctx, channelID)
	if err != nil {
		return err
	}

	payload := &discord.WebhookPayload{
		Username:  s.discordCfg.BotUsername,
		AvatarURL: s.discordCfg.BotAvatarURL,
		Embeds: []discord.Embed{
			{
				Title:       "Test message",
				Description: fmt.Sprintf("Channel %q is wired up correctly.", channel.Name),
				Color:       discord.EmbedColor,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
			},
		},
	}

	if _, err := s.deliverer.Send(ctx, channel.WebhookURL, payload); err != nil {
		return ErrWebhookInvalid
	}
	return nil
}
