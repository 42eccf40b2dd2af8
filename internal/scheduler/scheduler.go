package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"ecoshare-backend/internal/jobs"
	"ecoshare-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.ExpireDonations, s.jobs.ExpireDonations)
	if err != nil {
		logger.Error("Failed to register ExpireDonations job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.RetryPointAwards, s.jobs.RetryUnawardedPoints)
	if err != nil {
		logger.Error("Failed to register RetryUnawardedPoints job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.ActivateBanners, s.jobs.ActivateScheduledBanners)
	if err != nil {
		logger.Error("Failed to register ActivateScheduledBanners job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.CompleteBanners, s.jobs.CompleteExpiredBanners)
	if err != nil {
		logger.Error("Failed to register CompleteExpiredBanners job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.NotifyDraftBanners, s.jobs.NotifyDraftBanners)
	if err != nil {
		logger.Error("Failed to register NotifyDraftBanners job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
