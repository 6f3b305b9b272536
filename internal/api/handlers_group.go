package api

import "KLPoster/internal/api/handler"

// HandlersGroup bundles every initialized handler.
type HandlersGroup struct {
	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	MusicHandler   *handler.MusicHandler
	ChannelHandler *handler.ChannelHandler
}
