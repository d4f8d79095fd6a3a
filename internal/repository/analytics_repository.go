package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
)

// AnalyticsRepository handles persistence for page-view counter buckets
type AnalyticsRepository interface {
	// IncrementView bumps the daily bucket for a target, creating it when
	// missing. Day is truncated to date granularity.
	IncrementView(ctx context.Context, target models.PageViewTarget, targetID string, day time.Time) error
	TotalViews(ctx context.Context, from, to time.Time) (int64, error)
	ViewsByDay(ctx context.Context, from, to time.Time) ([]models.DailyViewCount, error)
	TopTargets(ctx context.Context, target models.PageViewTarget, from, to time.Time, limit int) ([]models.TargetViews, error)
	TotalClicks(ctx context.Context) (int64, error)
	// DeleteOlderThan removes buckets past the retention horizon
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) IncrementView(ctx context.Context, target models.PageViewTarget, targetID string, day time.Time) error {
	bucket := models.PageView{
		TargetType: target,
		TargetID:   targetID,
		Day:        day.Truncate(24 * time.Hour),
		Count:      1,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "target_type"}, {Name: "target_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("page_views.count + 1"), "updated_at": time.Now()}),
	}).Create(&bucket).Error
}

func (r *analyticsRepository) TotalViews(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.PageView{}).
		Where("day BETWEEN ? AND ?", from, to).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) ViewsByDay(ctx context.Context, from, to time.Time) ([]models.DailyViewCount, error) {
	var counts []models.DailyViewCount
	err := r.db.WithContext(ctx).Model(&models.PageView{}).
		Select("day, SUM(count) as count").
		Where("day BETWEEN ? AND ?", from, to).
		Group("day").
		Order("day ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *analyticsRepository) TopTargets(ctx context.Context, target models.PageViewTarget, from, to time.Time, limit int) ([]models.TargetViews, error) {
	if limit < 1 {
		limit = 10
	}
	var targets []models.TargetViews
	err := r.db.WithContext(ctx).Model(&models.PageView{}).
		Select("target_type, target_id, SUM(count) as count").
		Where("target_type = ? AND day BETWEEN ? AND ?", target, from, to).
		Group("target_type, target_id").
		Order("count DESC").
		Limit(limit).
		Scan(&targets).Error
	return targets, err
}

func (r *analyticsRepository) TotalClicks(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.MarketplaceLink{}).
		Select("COALESCE(SUM(clicks), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("day < ?", cutoff).
		Delete(&models.PageView{})
	return result.RowsAffected, result.Error
}
