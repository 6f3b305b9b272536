package memory

import (
	"KLPoster/internal/model"
	"KLPoster/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

type ChannelRepoImpl struct {
	mu       sync.RWMutex
	channels map[uint64]*model.Channel
	nextID   uint64
}

func NewChannelRepository() repository.ChannelRepo {
	return &ChannelRepoImpl{
		channels: make(map[uint64]*model.Channel),
		nextID:   1,
	}
}

func cloneChannel(c *model.Channel) *model.Channel {
	cp := *c
	return &cp
}

func (s *ChannelRepoImpl) CreateChannel(_ context.Context, channel *model.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel.ID = s.nextID
	s.nextID++
	now := time.Now()
	channel.CreatedAt = now
	channel.UpdatedAt = now
	s.channels[channel.ID] = cloneChannel(channel)
	return nil
}

func (s *ChannelRepoImpl) GetChannel(_ context.Context, id uint64) (*model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	channel, ok := s.channels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneChannel(channel), nil
}

func (s *ChannelRepoImpl) ListChannels(_ context.Context, guildID string) ([]*model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Channel
	for _, channel := range s.channels {
		if channel.GuildID == guildID {
			result = append(result, cloneChannel(channel))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *ChannelRepoImpl) DeleteChannel(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.channels, id)
	return nil
}
