package service

import (
	"KLPoster/internal/api/dto"
	"KLPoster/internal/model"
	"KLPoster/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, baseDTO *dto.PostBaseDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, userID uint64, status string, page, pageSize int) (*dto.PostPageDTO, error)
	ListScheduled(ctx context.Context, userID uint64) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID uint64, postID uint64, baseDTO *dto.PostBaseDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, postID uint64) error
	SchedulePost(ctx context.Context, userID uint64, postID uint64, publishAt time.Time) (*dto.PostDTO, error)
	CancelSchedule(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error)
}

type postServiceImpl struct {
	postRepo repository.PostRepo
}

func NewPostService(postRepo repository.PostRepo) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
	}
}

func toTrackModels(tracks []dto.TrackDTO) []model.Track {
	result := make([]model.Track, 0, len(tracks))
	for i, track := range tracks {
		position := track.Position
		if position == 0 {
			position = i + 1
		}
		result = append(result, model.Track{
			Title:           track.Title,
			DurationSeconds: track.DurationSeconds,
			Position:        position,
		})
	}
	return result
}

func toPostDTO(post *model.Post) (*dto.PostDTO, error) {
	var postDTO dto.PostDTO
	if err := copier.Copy(&postDTO, post); err != nil {
		return nil, err
	}
	postDTO.Status = string(post.Status)

	tracks, err := post.Tracks()
	if err != nil {
		return nil, err
	}
	if len(tracks) > 0 {
		postDTO.TrackList = make([]dto.TrackDTO, 0, len(tracks))
		for _, track := range tracks {
			postDTO.TrackList = append(postDTO.TrackList, dto.TrackDTO{
				Title:           track.Title,
				DurationSeconds: track.DurationSeconds,
				Position:        track.Position,
			})
		}
	} else {
		postDTO.TrackList = nil
	}
	return &postDTO, nil
}

func applyBaseDTO(post *model.Post, baseDTO *dto.PostBaseDTO) error {
	post.Title = baseDTO.Title
	post.Artist = baseDTO.Artist
	post.Album = baseDTO.Album
	post.ReleaseDate = baseDTO.ReleaseDate
	post.SpotifyURL = baseDTO.SpotifyURL
	post.LastfmURL = baseDTO.LastfmURL
	post.ImageURL = baseDTO.ImageURL
	post.Description = baseDTO.Description
	post.ChannelID = baseDTO.ChannelID
	return post.SetTracks(toTrackModels(baseDTO.TrackList))
}

// getOwned loads a post and enforces ownership. Not-found and forbidden
// stay distinct.
func (s *postServiceImpl) getOwned(ctx context.Context, userID, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrPostForbidden
	}
	return post, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, baseDTO *dto.PostBaseDTO) (*dto.PostDTO, error) {
	post := &model.Post{
		UserID: userID,
		Status: model.StatusDraft,
	}
	if err := applyBaseDTO(post, baseDTO); err != nil {
		return nil, ErrParamInvalid
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post)
}

func (s *postServiceImpl) GetPost(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error) {
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post)
}

func (s *postServiceImpl) ListPosts(ctx context.Context, userID uint64, status string, page, pageSize int) (*dto.PostPageDTO, error) {
	if status != "" && !model.PostStatus(status).Valid() {
		return nil, ErrParamInvalid
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	posts, total, err := s.postRepo.ListPosts(ctx, userID, model.PostStatus(status), page, pageSize)
	if err != nil {
		return nil, err
	}

	postDTOs := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := toPostDTO(post)
		if err != nil {
			return nil, err
		}
		postDTOs = append(postDTOs, postDTO)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.PostPageDTO{
		Posts:      postDTOs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *postServiceImpl) ListScheduled(ctx context.Context, userID uint64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.ListScheduled(ctx, userID)
	if err != nil {
		return nil, err
	}
	postDTOs := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := toPostDTO(post)
		if err != nil {
			return nil, err
		}
		postDTOs = append(postDTOs, postDTO)
	}
	return postDTOs, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, postID uint64, baseDTO *dto.PostBaseDTO) (*dto.PostDTO, error) {
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == model.StatusPublished {
		return nil, ErrPostLocked
	}

	if err := applyBaseDTO(post, baseDTO); err != nil {
		return nil, ErrParamInvalid
	}

	// Editing a FAILED post is the recovery path: it returns to DRAFT so
	// the owner can schedule it again.
	if post.Status == model.StatusFailed {
		post.Status = model.StatusDraft
		post.ScheduledFor = nil
	}

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post)
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, postID uint64) error {
	if _, err := s.getOwned(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.DeletePost(ctx, postID)
}

func (s *postServiceImpl) SchedulePost(ctx context.Context, userID uint64, postID uint64, publishAt time.Time) (*dto.PostDTO, error) {
	if !publishAt.After(time.Now()) {
		return nil, ErrScheduleInPast
	}

	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != model.StatusScheduled && !post.Status.CanTransition(model.StatusScheduled) {
		return nil, ErrPostNotSchedulable
	}

	if err := s.postRepo.Schedule(ctx, postID, publishAt); err != nil {
		return nil, err
	}

	post.Status = model.StatusScheduled
	post.ScheduledFor = &publishAt
	return toPostDTO(post)
}

func (s *postServiceImpl) CancelSchedule(ctx context.Context, userID uint64, postID uint64) (*dto.PostDTO, error) {
	post, err := s.getOwned(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != model.StatusScheduled {
		return nil, ErrPostNotScheduled
	}

	if err := s.postRepo.CancelSchedule(ctx, postID); err != nil {
		return nil, err
	}

	post.Status = model.StatusDraft
	post.ScheduledFor = nil
	return toPostDTO(post)
}
