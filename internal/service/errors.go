package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	BadGateway          = 502
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("invalid parameters")
	ErrPostNotFound       = errors.New("post not found")
	ErrPostForbidden      = errors.New("you do not own this post")
	ErrPostNotSchedulable = errors.New("post cannot be scheduled in its current state")
	ErrPostNotScheduled   = errors.New("post is not scheduled")
	ErrScheduleInPast     = errors.New("publish time must be in the future")
	ErrPostLocked         = errors.New("published post cannot be modified")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrAlbumNotFound      = errors.New("album not found")
	ErrWebhookInvalid     = errors.New("invalid discord webhook url")
	ErrTokenInvalid       = errors.New("discord token invalid or expired")
	ErrNotGuildMember     = errors.New("not a member of the required guild")
	ErrProviderFailure    = errors.New("metadata provider unavailable")
	UnExpectedError       = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrPostNotFound:       NotFound,
	ErrPostForbidden:      Forbidden,
	ErrPostNotSchedulable: BadRequest,
	ErrPostNotScheduled:   BadRequest,
	ErrScheduleInPast:     BadRequest,
	ErrPostLocked:         BadRequest,
	ErrChannelNotFound:    NotFound,
	ErrAlbumNotFound:      NotFound,
	ErrWebhookInvalid:     BadRequest,
	ErrTokenInvalid:       Unauthorized,
	ErrNotGuildMember:     Forbidden,
	ErrProviderFailure:    BadGateway,
	UnExpectedError:       InternalServerError,
}
