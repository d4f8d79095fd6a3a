package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
)

// BusinessRepository handles persistence for UMKM records
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error)
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BusinessStatus) error
	List(ctx context.Context, filter models.BusinessFilter) ([]models.Business, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).Preload("Category").First(&business, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).Preload("Category").First(&business, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).Preload("Category").First(&business, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) Update(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

func (r *businessRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BusinessStatus) error {
	return r.db.WithContext(ctx).Model(&models.Business{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *businessRepository) List(ctx context.Context, filter models.BusinessFilter) ([]models.Business, int64, error) {
	var businesses []models.Business
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Business{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	err := query.Preload("Category").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&businesses).Error
	return businesses, total, err
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Business{}, "id = ?", id).Error
}
