package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

const defaultSchedule = "0 0 3 * * *" // 3 AM daily, with seconds

// CleanupScheduler prunes old page view buckets on a cron schedule
type CleanupScheduler struct {
	analytics     *services.AnalyticsService
	retentionDays int
	logger        *logrus.Logger
	cron          *cron.Cron
	mu            sync.Mutex
	running       bool
}

// NewCleanupScheduler creates a new cleanup scheduler
func NewCleanupScheduler(analytics *services.AnalyticsService, retentionDays int, logger *logrus.Logger) *CleanupScheduler {
	return &CleanupScheduler{
		analytics:     analytics,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Start schedules the nightly cleanup job
func (s *CleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.retentionDays <= 0 {
		s.logger.Info("Analytics retention disabled, view buckets are kept forever")
		return nil
	}

	s.cron = cron.New(cron.WithSeconds())
	if _, err := s.cron.AddFunc(defaultSchedule, s.runCleanup); err != nil {
		s.logger.WithError(err).Error("Failed to schedule analytics cleanup job")
		return err
	}

	s.cron.Start()
	s.running = true
	s.logger.WithField("retention_days", s.retentionDays).Info("Analytics cleanup scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("Analytics cleanup scheduler stopped")
}

func (s *CleanupScheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.analytics.Cleanup(ctx, s.retentionDays); err != nil {
		s.logger.WithError(err).Error("Analytics cleanup run failed")
	}
}
