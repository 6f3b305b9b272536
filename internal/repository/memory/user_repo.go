package memory

import (
	"KLPoster/internal/model"
	"KLPoster/internal/repository"
	"context"
	"sync"
	"time"
)

type UserRepoImpl struct {
	mu     sync.RWMutex
	users  map[uint64]*model.User
	nextID uint64
}

func NewUserRepo() repository.UserRepo {
	return &UserRepoImpl{
		users:  make(map[uint64]*model.User),
		nextID: 1,
	}
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

func (s *UserRepoImpl) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *UserRepoImpl) GetUserByDiscordId(_ context.Context, discordID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.DiscordID == discordID {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (s *UserRepoImpl) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextID
	s.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *UserRepoImpl) UpdateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = cloneUser(user)
	return nil
}
