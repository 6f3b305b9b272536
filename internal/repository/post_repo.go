package repository

import (
	"KLPoster/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	ListPosts(ctx context.Context, userID uint64, status model.PostStatus, page, pageSize int) ([]*model.Post, int64, error)
	ListScheduled(ctx context.Context, userID uint64) ([]*model.Post, error)
	FindDue(ctx context.Context, now time.Time) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	Schedule(ctx context.Context, id uint64, at time.Time) error
	CancelSchedule(ctx context.Context, id uint64) error
	MarkPublished(ctx context.Context, id uint64, publishedAt time.Time, messageID, channelID string) (bool, error)
	MarkFailed(ctx context.Context, id uint64) (bool, error)
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, userID uint64, status model.PostStatus, page, pageSize int) ([]*model.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Post{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*model.Post
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) ListScheduled(ctx context.Context, userID uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StatusScheduled).
		Order("scheduled_for ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) FindDue(ctx context.Context, now time.Time) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_for <= ?", model.StatusScheduled, now).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Save(post).Error
}

func (s *PostRepoImpl) Schedule(ctx context.Context, id uint64, at time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        model.StatusScheduled,
			"scheduled_for": at,
		}).Error
}

func (s *PostRepoImpl) CancelSchedule(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        model.StatusDraft,
			"scheduled_for": nil,
		}).Error
}

// MarkPublished transitions the post to PUBLISHED, guarded by the current
// status so a concurrent scan cannot publish twice. scheduled_for is
// cleared: only SCHEDULED posts carry one.
func (s *PostRepoImpl) MarkPublished(ctx context.Context, id uint64, publishedAt time.Time, messageID, channelID string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND status = ?", id, model.StatusScheduled).
		Updates(map[string]any{
			"status":             model.StatusPublished,
			"scheduled_for":      nil,
			"published_at":       publishedAt,
			"discord_message_id": messageID,
			"discord_channel_id": channelID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *PostRepoImpl) MarkFailed(ctx context.Context, id uint64) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND status = ?", id, model.StatusScheduled).
		Updates(map[string]any{
			"status":        model.StatusFailed,
			"scheduled_for": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
