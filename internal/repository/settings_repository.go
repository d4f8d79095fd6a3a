package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
)

// SettingsRepository handles persistence for key-value settings
type SettingsRepository interface {
	GetByKey(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
	List(ctx context.Context, group string) ([]models.Setting, error)
	Delete(ctx context.Context, key string) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "group", "updated_by", "updated_at"}),
	}).Create(setting).Error
}

func (r *settingsRepository) List(ctx context.Context, group string) ([]models.Setting, error) {
	var settings []models.Setting
	query := r.db.WithContext(ctx).Order("key ASC")
	if group != "" {
		query = query.Where("\"group\" = ?", group)
	}
	err := query.Find(&settings).Error
	return settings, err
}

func (r *settingsRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.Setting{}, "key = ?", key).Error
}
