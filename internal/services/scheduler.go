package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/pkg/logger"
)

// MessageRetention is how long messages are kept before the weekly cleanup
// removes them.
const MessageRetention = 6 * 30 * 24 * time.Hour

// Scheduler runs the periodic lifecycle jobs. Each job is a single bulk
// read-then-write; on failure it logs and waits for the next scheduled run.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Start registers the jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func() error
	}{
		{"0 10 * * *", "daily_reminders", SendDailyReminders},
		{"0 2 * * 0", "message_cleanup", CleanupOldMessages},
		{"@hourly", "deactivate_idle", DeactivateIdleUsers},
	}

	for _, job := range jobs {
		job := job
		log := logger.With(job.name)
		if _, err := s.cron.AddFunc(job.spec, func() {
			if err := job.run(); err != nil {
				log.Error().Err(err).Msg("Scheduled job failed")
			}
		}); err != nil {
			return fmt.Errorf("failed to register job %s: %w", job.name, err)
		}
	}

	s.cron.Start()
	logger.Info().Msg("Scheduler started (daily reminders, weekly cleanup, hourly deactivation)")
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// SendDailyReminders notifies active users who haven't been seen for 24h.
func SendDailyReminders() error {
	cutoff := time.Now().Add(-24 * time.Hour)

	var users []models.User
	err := database.DB.
		Select("id", "first_name").
		Where("is_active = ? AND last_seen < ?", true, cutoff).
		Find(&users).Error
	if err != nil {
		return err
	}

	for _, user := range users {
		SendPush(context.Background(), user.ID, "", models.NotificationTypeReminder,
			"Des nouvelles personnes vous attendent !",
			fmt.Sprintf("Bonjour %s, découvrez de nouveaux profils aujourd'hui", user.FirstName))
	}

	log := logger.With("daily_reminders")
	log.Info().Int("count", len(users)).Msg("Reminders sent")
	return nil
}

// CleanupOldMessages deletes messages older than the retention window.
func CleanupOldMessages() error {
	cutoff := time.Now().Add(-MessageRetention)

	res := database.DB.Where("created_at < ?", cutoff).Delete(&models.Message{})
	if res.Error != nil {
		return res.Error
	}

	log := logger.With("message_cleanup")
	log.Info().Int64("deleted", res.RowsAffected).Msg("Old messages removed")
	return nil
}

// DeactivateIdleUsers flips is_active off for accounts unseen for a week.
func DeactivateIdleUsers() error {
	cutoff := time.Now().Add(-7 * 24 * time.Hour)

	res := database.DB.Model(&models.User{}).
		Where("is_active = ? AND last_seen < ?", true, cutoff).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected > 0 {
		log := logger.With("deactivate_idle")
		log.Info().Int64("count", res.RowsAffected).Msg("Idle accounts deactivated")
	}
	return nil
}
