package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

const topTargetsLimit = 10

// AnalyticsService tracks public page views in daily buckets and serves the
// admin dashboard aggregates.
type AnalyticsService struct {
	repos  *repository.Repositories
	logger *logrus.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repos *repository.Repositories, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{repos: repos, logger: logger}
}

// TrackView bumps today's view bucket for a target. Tracking is best effort;
// failures are logged, never surfaced to the visitor.
func (s *AnalyticsService) TrackView(ctx context.Context, target models.PageViewTarget, targetID string) {
	day := time.Now().Truncate(24 * time.Hour)
	if err := s.repos.Analytics.IncrementView(ctx, target, targetID, day); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"target_type": target,
			"target_id":   targetID,
		}).Warn("Failed to count page view")
	}
}

// Stats builds the dashboard report for a date range. Admin only.
func (s *AnalyticsService) Stats(ctx context.Context, actor Actor, from, to time.Time) (*models.ViewStats, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins view analytics")
	}
	if to.Before(from) {
		return nil, NewValidationError("to", "end of range precedes start")
	}

	total, err := s.repos.Analytics.TotalViews(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to total views: %w", err)
	}

	byDay, err := s.repos.Analytics.ViewsByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate views by day: %w", err)
	}

	topBusinesses, err := s.repos.Analytics.TopTargets(ctx, models.ViewTargetBusiness, from, to, topTargetsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank businesses: %w", err)
	}

	clicks, err := s.repos.Analytics.TotalClicks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total marketplace clicks: %w", err)
	}

	return &models.ViewStats{
		TotalViews:  total,
		ByDay:       byDay,
		TopTargets:  topBusinesses,
		TotalClicks: clicks,
	}, nil
}

// Cleanup drops view buckets older than the retention window. Run from the
// scheduler.
func (s *AnalyticsService) Cleanup(ctx context.Context, retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted, err := s.repos.Analytics.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune page views: %w", err)
	}
	if deleted > 0 {
		s.logger.WithFields(logrus.Fields{
			"deleted": deleted,
			"cutoff":  cutoff.Format("2006-01-02"),
		}).Info("Pruned old page view buckets")
	}
	return nil
}
