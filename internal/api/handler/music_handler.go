package handler

import (
	"KLPoster/internal/pkg/response"
	"KLPoster/internal/service"

	"github.com/gin-gonic/gin"
)

type MusicHandler struct {
	musicSvc service.MusicService
}

func NewMusicHandler(musicSvc service.MusicService) *MusicHandler {
	return &MusicHandler{
		musicSvc: musicSvc,
	}
}

func (s *MusicHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	info, err := s.musicSvc.SearchAlbum(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

func (s *MusicHandler) SearchSpotify(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	info, err := s.musicSvc.SearchSpotify(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

func (s *MusicHandler) SearchLastfm(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	info, err := s.musicSvc.SearchLastfm(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
