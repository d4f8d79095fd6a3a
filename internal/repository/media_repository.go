package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
)

// MediaRepository handles persistence for uploaded file metadata
type MediaRepository interface {
	Create(ctx context.Context, file *models.MediaFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]models.MediaFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, file *models.MediaFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	var file models.MediaFile
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *mediaRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.MediaFile, error) {
	var files []models.MediaFile
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("position ASC, created_at ASC").
		Find(&files).Error
	return files, err
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MediaFile{}, "id = ?", id).Error
}
