package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

type mockAnalyticsRepository struct {
	mock.Mock
}

func (m *mockAnalyticsRepository) IncrementView(ctx context.Context, target models.PageViewTarget, targetID string, day time.Time) error {
	args := m.Called(ctx, target, targetID, day)
	return args.Error(0)
}

func (m *mockAnalyticsRepository) TotalViews(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAnalyticsRepository) ViewsByDay(ctx context.Context, from, to time.Time) ([]models.DailyViewCount, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]models.DailyViewCount), args.Error(1)
}

func (m *mockAnalyticsRepository) TopTargets(ctx context.Context, target models.PageViewTarget, from, to time.Time, limit int) ([]models.TargetViews, error) {
	args := m.Called(ctx, target, from, to, limit)
	return args.Get(0).([]models.TargetViews), args.Error(1)
}

func (m *mockAnalyticsRepository) TotalClicks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAnalyticsRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func newAnalyticsFixture() (*AnalyticsService, *mockAnalyticsRepository) {
	analytics := &mockAnalyticsRepository{}
	repos := &repository.Repositories{Analytics: analytics}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewAnalyticsService(repos, logger), analytics
}

func TestTrackViewBucketsOnCurrentDay(t *testing.T) {
	svc, analytics := newAnalyticsFixture()
	businessID := ownerActor().Business.ID.String()

	analytics.On("IncrementView", mock.Anything, models.ViewTargetBusiness, businessID,
		mock.MatchedBy(func(day time.Time) bool {
			return time.Since(day) < 24*time.Hour
		})).Return(nil)

	svc.TrackView(context.Background(), models.ViewTargetBusiness, businessID)

	analytics.AssertExpectations(t)
}

func TestTrackViewSwallowsRepositoryFailure(t *testing.T) {
	svc, analytics := newAnalyticsFixture()

	analytics.On("IncrementView", mock.Anything, models.ViewTargetHome, "home", mock.Anything).
		Return(assert.AnError)

	// Must not panic or surface the error to the public request.
	svc.TrackView(context.Background(), models.ViewTargetHome, "home")
}

func TestStatsRequiresAdmin(t *testing.T) {
	svc, _ := newAnalyticsFixture()

	_, err := svc.Stats(context.Background(), ownerActor(), time.Now().AddDate(0, 0, -7), time.Now())

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestStatsRejectsInvertedRange(t *testing.T) {
	svc, _ := newAnalyticsFixture()
	now := time.Now()

	_, err := svc.Stats(context.Background(), adminActor(), now, now.AddDate(0, 0, -7))

	_, ok := IsValidationError(err)
	assert.True(t, ok)
}

func TestStatsAggregatesDashboardReport(t *testing.T) {
	svc, analytics := newAnalyticsFixture()
	from := time.Now().AddDate(0, 0, -7)
	to := time.Now()

	analytics.On("TotalViews", mock.Anything, from, to).Return(int64(120), nil)
	analytics.On("ViewsByDay", mock.Anything, from, to).Return([]models.DailyViewCount{
		{Day: from, Count: 120},
	}, nil)
	analytics.On("TopTargets", mock.Anything, models.ViewTargetBusiness, from, to, topTargetsLimit).
		Return([]models.TargetViews{{TargetType: models.ViewTargetBusiness, TargetID: "x", Count: 80}}, nil)
	analytics.On("TotalClicks", mock.Anything).Return(int64(33), nil)

	stats, err := svc.Stats(context.Background(), adminActor(), from, to)

	assert.NoError(t, err)
	assert.Equal(t, int64(120), stats.TotalViews)
	assert.Equal(t, int64(33), stats.TotalClicks)
	assert.Len(t, stats.TopTargets, 1)
}

func TestCleanupPrunesPastRetention(t *testing.T) {
	svc, analytics := newAnalyticsFixture()

	analytics.On("DeleteOlderThan", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().AddDate(0, 0, -90)
		return cutoff.Sub(expected) < time.Minute && expected.Sub(cutoff) < time.Minute
	})).Return(int64(42), nil)

	assert.NoError(t, svc.Cleanup(context.Background(), 90))
	analytics.AssertExpectations(t)
}
