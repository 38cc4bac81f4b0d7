package scheduler

import (
	"time"

	"storefront-backend/internal/repository"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

var scheduler *gocron.Scheduler

// Initialize creates and starts the scheduler with the blacklist purge job.
// The read path already self-cleans stale rows; the job only reclaims the
// ones nobody asks about anymore.
func Initialize(revocationRepo *repository.RevocationRepository, intervalHours int) {
	scheduler = gocron.NewScheduler(time.Local)

	_, err := scheduler.Every(intervalHours).Hours().Do(func() {
		deleted, err := revocationRepo.DeleteExpired()
		if err != nil {
			log.Error().Err(err).Msg("Failed to purge expired revoked tokens")
			return
		}
		if deleted > 0 {
			log.Info().Int64("deleted", deleted).Msg("Purged expired revoked tokens")
		}
	})

	if err != nil {
		log.Error().Err(err).Msg("Failed to schedule revoked token cleanup")
	}

	scheduler.StartAsync()
}

// Stop gracefully shuts down the scheduler
func Stop() {
	if scheduler != nil {
		scheduler.Stop()
	}
}
