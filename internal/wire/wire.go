package wire

import (
	"KLPoster/internal/api"
	"KLPoster/internal/api/config"
	"KLPoster/internal/api/handler"
	"KLPoster/internal/job"
	"KLPoster/internal/pkg/cron"
	"KLPoster/internal/pkg/discord"
	"KLPoster/internal/pkg/music"
	"KLPoster/internal/repository"
	"KLPoster/internal/repository/memory"
	"KLPoster/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer holds every top-level component the app runs.
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

// BuildApplication wires repositories, services, handlers and jobs.
// db is nil when the memory store is selected; in that mode Redis-backed
// features (album cache, token blacklist) and the publish scan are off.
func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	memoryMode := cfg.DB.Driver == "memory"

	var (
		postRepo    repository.PostRepo
		channelRepo repository.ChannelRepo
		userRepo    repository.UserRepo
	)
	if memoryMode {
		postRepo = memory.NewPostRepository()
		channelRepo = memory.NewChannelRepository()
		userRepo = memory.NewUserRepo()
	} else {
		postRepo = repository.NewPostRepository(db)
		channelRepo = repository.NewChannelRepository(db)
		userRepo = repository.NewUserRepo(db)
	}

	webhookClient := discord.NewWebhookClient()
	identityClient := discord.NewIdentityClient(cfg.Discord.APIBaseURL)
	spotifyClient := music.NewSpotifyClient(cfg.Spotify)
	lastfmClient := music.NewLastfmClient(cfg.Lastfm)

	postService := service.NewPostService(postRepo)
	musicService := service.NewMusicService(spotifyClient, lastfmClient, !memoryMode)
	channelService := service.NewChannelService(channelRepo, webhookClient, cfg.Discord)
	userService := service.NewUserService(userRepo, identityClient, cfg.Discord, !memoryMode)

	handlers := &api.HandlersGroup{
		AuthHandler:    handler.NewAuthHandler(userService),
		PostHandler:    handler.NewPostHandler(postService),
		MusicHandler:   handler.NewMusicHandler(musicService),
		ChannelHandler: handler.NewChannelHandler(channelService),
	}

	router := api.SetupRouter(handlers, cfg)

	publishJob := job.NewPublishJob(postRepo, channelRepo, webhookClient, cfg.Discord, memoryMode)
	cronMgr := cron.NewCronManager(publishJob, cfg.Scheduler.Spec)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
