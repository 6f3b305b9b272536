package cron

import (
	"KLPoster/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultPublishSpec runs the publish scan at the top of every minute.
const DefaultPublishSpec = "0 * * * * *"

type Manager struct {
	engine      *cron.Cron
	publishJob  *job.PublishJob
	publishSpec string
}

func NewCronManager(publishJob *job.PublishJob, publishSpec string) *Manager {
	if publishSpec == "" {
		publishSpec = DefaultPublishSpec
	}
	return &Manager{
		engine:      cron.New(cron.WithSeconds()),
		publishJob:  publishJob,
		publishSpec: publishSpec,
	}
}

func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.publishSpec, s.publishJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("cron engine started", "publish_spec", s.publishSpec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("cron engine stopped")
	s.engine.Stop()
}
