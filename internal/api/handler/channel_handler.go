package handler

import (
	"KLPoster/internal/api/dto"
	"KLPoster/internal/pkg/response"
	"KLPoster/internal/pkg/util"
	"KLPoster/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelSvc service.ChannelService
}

func NewChannelHandler(channelSvc service.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		channelSvc: channelSvc,
	}
}

func channelIDParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("channel_id"), 10, 64)
}

func (s *ChannelHandler) CreateChannel(c *gin.Context) {
	var req dto.ChannelBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	channel, err := s.channelSvc.CreateChannel(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, channel)
}

func (s *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := s.channelSvc.ListChannels(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, channels)
}

func (s *ChannelHandler) DeleteChannel(c *gin.Context) {
	channelID, err := channelIDParam(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.channelSvc.DeleteChannel(c.Request.Context(), channelID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ChannelHandler) TestChannel(c *gin.Context) {
	channelID, err := channelIDParam(c)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.channelSvc.TestChannel(c.Request.Context(), channelID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
