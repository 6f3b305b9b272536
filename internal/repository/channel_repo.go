package repository

import (
	"KLPoster/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ChannelRepo interface {
	CreateChannel(ctx context.Context, channel *model.Channel) error
	GetChannel(ctx context.Context, id uint64) (*model.Channel, error)
	ListChannels(ctx context.Context, guildID string) ([]*model.Channel, error)
	DeleteChannel(ctx context.Context, id uint64) error
}

type ChannelRepoImpl struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepo {
	return &ChannelRepoImpl{
		db: db,
	}
}

func (s *ChannelRepoImpl) CreateChannel(ctx context.Context, channel *model.Channel) error {
	return s.db.WithContext(ctx).Create(channel).Error
}

func (s *ChannelRepoImpl) GetChannel(ctx context.Context, id uint64) (*model.Channel, error) {
	var channel model.Channel
	err := s.db.WithContext(ctx).First(&channel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &channel, nil
}

func (s *ChannelRepoImpl) ListChannels(ctx context.Context, guildID string) ([]*model.Channel, error) {
	var channels []*model.Channel
	err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (s *ChannelRepoImpl) DeleteChannel(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Channel{}, id).Error
}
