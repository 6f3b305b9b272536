package memory

import (
	"KLPoster/internal/model"
	"KLPoster/internal/repository"
	"context"
	"sort"
	"sync"
	"time"
)

// PostRepoImpl is the non-persistent PostRepo used when the database
// driver is "memory". The publish scan never runs against it.
type PostRepoImpl struct {
	mu     sync.RWMutex
	posts  map[uint64]*model.Post
	nextID uint64
}

func NewPostRepository() repository.PostRepo {
	return &PostRepoImpl{
		posts:  make(map[uint64]*model.Post),
		nextID: 1,
	}
}

func clonePost(p *model.Post) *model.Post {
	c := *p
	return &c
}

func (s *PostRepoImpl) CreatePost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextID
	s.nextID++
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *PostRepoImpl) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePost(post), nil
}

func (s *PostRepoImpl) ListPosts(_ context.Context, userID uint64, status model.PostStatus, page, pageSize int) ([]*model.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*model.Post
	for _, post := range s.posts {
		if post.UserID != userID {
			continue
		}
		if status != "" && post.Status != status {
			continue
		}
		matched = append(matched, post)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]*model.Post, 0, end-start)
	for _, post := range matched[start:end] {
		result = append(result, clonePost(post))
	}
	return result, total, nil
}

func (s *PostRepoImpl) ListScheduled(_ context.Context, userID uint64) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Post
	for _, post := range s.posts {
		if post.UserID == userID && post.Status == model.StatusScheduled {
			result = append(result, clonePost(post))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ScheduledFor.Before(*result[j].ScheduledFor)
	})
	return result, nil
}

func (s *PostRepoImpl) FindDue(_ context.Context, now time.Time) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Post
	for _, post := range s.posts {
		if post.Due(now) {
			result = append(result, clonePost(post))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *PostRepoImpl) UpdatePost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *PostRepoImpl) Schedule(_ context.Context, id uint64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	scheduledFor := at
	post.Status = model.StatusScheduled
	post.ScheduledFor = &scheduledFor
	post.UpdatedAt = time.Now()
	return nil
}

func (s *PostRepoImpl) CancelSchedule(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	post.Status = model.StatusDraft
	post.ScheduledFor = nil
	post.UpdatedAt = time.Now()
	return nil
}

func (s *PostRepoImpl) MarkPublished(_ context.Context, id uint64, publishedAt time.Time, messageID, channelID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok || post.Status != model.StatusScheduled {
		return false, nil
	}
	at := publishedAt
	post.Status = model.StatusPublished
	post.ScheduledFor = nil
	post.PublishedAt = &at
	post.DiscordMessageID = messageID
	post.DiscordChannelID = channelID
	post.UpdatedAt = time.Now()
	return true, nil
}

func (s *PostRepoImpl) MarkFailed(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok || post.Status != model.StatusScheduled {
		return false, nil
	}
	post.Status = model.StatusFailed
	post.ScheduledFor = nil
	post.UpdatedAt = time.Now()
	return true, nil
}

func (s *PostRepoImpl) DeletePost(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)
	return nil
}
