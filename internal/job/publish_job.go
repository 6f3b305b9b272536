package job

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/model"
	"KLPoster/internal/pkg/discord"
	"KLPoster/internal/pkg/logger"
	"KLPoster/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PublishJob scans for scheduled posts whose publish time has passed and
// delivers each one to its Discord channel. One failing post never blocks
// the others; delivery happens before the status flip, so a crash between
// the two leaves the post SCHEDULED and it may be retried by a later scan.
type PublishJob struct {
	postRepo    repository.PostRepo
	channelRepo repository.ChannelRepo
	deliverer   discord.Deliverer
	discordCfg  config.DiscordConfig
	mock        bool
}

func NewPublishJob(postRepo repository.PostRepo, channelRepo repository.ChannelRepo, deliverer discord.Deliverer, discordCfg config.DiscordConfig, mock bool) *PublishJob {
	return &PublishJob{
		postRepo:    postRepo,
		channelRepo: channelRepo,
		deliverer:   deliverer,
		discordCfg:  discordCfg,
		mock:        mock,
	}
}

func (s *PublishJob) Run() {
	if s.mock {
		log.Info("publish scan skipped, store is in mock mode")
		return
	}

	traceID := "job-publish-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	now := time.Now()
	posts, err := s.postRepo.FindDue(ctx, now)
	if err != nil {
		log.ErrorContext(ctx, "find due posts error", "err", err)
		return
	}
	if len(posts) == 0 {
		return
	}

	log.InfoContext(ctx, "publish scan processing", "due_count", len(posts))

	published := 0
	for _, post := range posts {
		if err := s.publishOne(ctx, post, now); err != nil {
			log.ErrorContext(ctx, "publish post error", "post_id", post.ID, "err", err)
			if _, markErr := s.postRepo.MarkFailed(ctx, post.ID); markErr != nil {
				log.ErrorContext(ctx, "mark post failed error", "post_id", post.ID, "err", markErr)
			}
			continue
		}
		published++
	}

	log.InfoContext(ctx, "publish scan finished", "published_count", published, "failed_count", len(posts)-published)
}

func (s *PublishJob) publishOne(ctx context.Context, post *model.Post, now time.Time) error {
	webhookURL, channelID, err := s.resolveChannel(ctx, post)
	if err != nil {
		return err
	}

	payload, err := discord.BuildPayload(post, s.discordCfg.BotUsername, s.discordCfg.BotAvatarURL, now)
	if err != nil {
		return err
	}

	messageID, err := s.deliverer.Send(ctx, webhookURL, payload)
	if err != nil {
		return fmt.Errorf("deliver post: %w", err)
	}

	updated, err := s.postRepo.MarkPublished(ctx, post.ID, now, messageID, channelID)
	if err != nil {
		return fmt.Errorf("record publication: %w", err)
	}
	if !updated {
		// Lost the race to another scan; the delivery above may have
		// duplicated the message, but the stored state stays consistent.
		log.WarnContext(ctx, "post already left SCHEDULED state", "post_id", post.ID)
		return nil
	}

	log.InfoContext(ctx, "post published", "post_id", post.ID, "message_id", messageID, "channel_id", channelID)
	return nil
}

func (s *PublishJob) resolveChannel(ctx context.Context, post *model.Post) (webhookURL, channelID string, err error) {
	id := s.discordCfg.DefaultChannelID
	if post.ChannelID != nil {
		id = *post.ChannelID
	}
	if id == 0 {
		return "", "", fmt.Errorf("post %d has no delivery channel", post.ID)
	}

	channel, err := s.channelRepo.GetChannel(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("resolve channel %d: %w", id, err)
	}
	if channel.WebhookURL == "" {
		return "", "", fmt.Errorf("channel %d has no webhook url", id)
	}
	return channel.WebhookURL, strconv.FormatUint(channel.ID, 10), nil
}
