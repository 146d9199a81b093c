package scheduler

import (
	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CleanupScheduler purges expired password reset tokens on a nightly cron.
type CleanupScheduler struct {
	cron         *cron.Cron
	resetService service.PasswordResetService
}

func NewCleanupScheduler(resetService service.PasswordResetService) *CleanupScheduler {
	return &CleanupScheduler{
		cron:         cron.New(),
		resetService: resetService,
	}
}

func (s *CleanupScheduler) Start() error {
	// Daily at 03:00, when traffic is lowest.
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled password reset cleanup", nil)

		deleted, err := s.resetService.PurgeExpired()
		if err != nil {
			logger.Error("Failed to purge expired password resets from scheduler", err)
			return
		}

		logger.Info("Scheduled password reset cleanup finished", map[string]interface{}{
			"deleted": deleted,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for password reset cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cleanup scheduler started successfully (daily at 3:00 AM)", nil)

	return nil
}

func (s *CleanupScheduler) Stop() {
	logger.Info("Stopping cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cleanup scheduler stopped", nil)
}
