package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/cache"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

type mockSettingsRepository struct {
	mock.Mock
}

func (m *mockSettingsRepository) GetByKey(ctx context.Context, key string) (*models.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setting), args.Error(1)
}

func (m *mockSettingsRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *mockSettingsRepository) List(ctx context.Context, group string) ([]models.Setting, error) {
	args := m.Called(ctx, group)
	return args.Get(0).([]models.Setting), args.Error(1)
}

func (m *mockSettingsRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newSettingsFixture() (*SettingsService, *mockSettingsRepository, *auditRecorderStub) {
	settings := &mockSettingsRepository{}
	repos := &repository.Repositories{Settings: settings}
	audit := &auditRecorderStub{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	// nil Redis client: every cache call is a miss, reads hit the repository
	svc := NewSettingsService(&fakeTxManager{repos: repos}, repos, cache.NewSettingsCache(nil, logger), audit, logger)
	return svc, settings, audit
}

func TestGetValueFallsBackToDefault(t *testing.T) {
	svc, settings, _ := newSettingsFixture()
	fallback := datatypes.JSON(`"Desa Kuwaru"`)

	settings.On("GetByKey", mock.Anything, models.SettingSiteName).Return(nil, gorm.ErrRecordNotFound)

	value, err := svc.GetValue(context.Background(), models.SettingSiteName, fallback)

	assert.NoError(t, err)
	assert.Equal(t, fallback, value)
}

func TestGetValueReturnsStoredValue(t *testing.T) {
	svc, settings, _ := newSettingsFixture()
	stored := &models.Setting{Key: models.SettingSiteName, Value: datatypes.JSON(`"UMKM Kuwaru"`)}

	settings.On("GetByKey", mock.Anything, models.SettingSiteName).Return(stored, nil)

	value, err := svc.GetValue(context.Background(), models.SettingSiteName, datatypes.JSON(`"default"`))

	assert.NoError(t, err)
	assert.Equal(t, stored.Value, value)
}

func TestUpsertRequiresAdmin(t *testing.T) {
	svc, _, _ := newSettingsFixture()

	_, err := svc.Upsert(context.Background(), ownerActor(), models.SettingSiteName, models.UpsertSettingRequest{
		Value: datatypes.JSON(`"Warung Takeover"`),
	})

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestUpsertStampsActorAndAudits(t *testing.T) {
	svc, settings, audit := newSettingsFixture()
	admin := adminActor()

	settings.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.Setting) bool {
		return s.Key == models.SettingPrimaryColor && s.UpdatedBy != nil && *s.UpdatedBy == admin.User.ID
	})).Return(nil)

	setting, err := svc.Upsert(context.Background(), admin, models.SettingPrimaryColor, models.UpsertSettingRequest{
		Value: datatypes.JSON(`"#1a7f37"`),
		Group: "theme",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.SettingPrimaryColor, setting.Key)
	assert.Equal(t, models.ActionSettingChange, audit.last().action)
}

func TestDeleteMissingSettingIsNotFound(t *testing.T) {
	svc, settings, _ := newSettingsFixture()

	settings.On("GetByKey", mock.Anything, "nonexistent").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), adminActor(), "nonexistent")

	assert.ErrorIs(t, err, ErrNotFound)
}
