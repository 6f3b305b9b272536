package api

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/api/middleware"
	"KLPoster/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	// The token blacklist lives in Redis; without it logout is a no-op
	// and the auth middleware skips the lookup.
	checkBlacklist := cfg.DB.Driver != "memory"
	authRequired := middleware.AuthMiddleware(checkBlacklist)
	guildRequired := middleware.RequireGuild(cfg.Discord.GuildID)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/discord", group.AuthHandler.LoginWithDiscord)

			sessionGroup := authGroup.Group("")
			sessionGroup.Use(authRequired)
			{
				sessionGroup.POST("/logout", group.AuthHandler.Logout)
				sessionGroup.GET("/me", group.AuthHandler.GetUserInfo)
			}
		}

		postGroup := apiGroup.Group("/posts")
		postGroup.Use(authRequired, guildRequired)
		{
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/scheduled", group.PostHandler.ListScheduled)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
			postGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
			postGroup.POST("/:post_id/schedule", group.PostHandler.SchedulePost)
			postGroup.DELETE("/:post_id/schedule", group.PostHandler.CancelSchedule)
		}

		musicGroup := apiGroup.Group("/music")
		musicGroup.Use(authRequired, guildRequired)
		{
			musicGroup.GET("/search", group.MusicHandler.Search)
			musicGroup.GET("/spotify/search", group.MusicHandler.SearchSpotify)
			musicGroup.GET("/lastfm/search", group.MusicHandler.SearchLastfm)
		}

		channelGroup := apiGroup.Group("/channels")
		channelGroup.Use(authRequired, guildRequired)
		{
			channelGroup.POST("", group.ChannelHandler.CreateChannel)
			channelGroup.GET("", group.ChannelHandler.ListChannels)
			channelGroup.DELETE("/:channel_id", group.ChannelHandler.DeleteChannel)
			channelGroup.POST("/:channel_id/test", group.ChannelHandler.TestChannel)
		}
	}

	return r
}
