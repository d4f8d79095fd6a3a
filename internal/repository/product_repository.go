package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
)

// ProductRepository handles persistence for products and marketplace links
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	ReplaceLinks(ctx context.Context, productID uuid.UUID, links []models.MarketplaceLink) error
	GetLink(ctx context.Context, linkID uuid.UUID) (*models.MarketplaceLink, error)
	IncrementLinkClicks(ctx context.Context, linkID uuid.UUID) error
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("MarketplaceLinks").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) ReplaceLinks(ctx context.Context, productID uuid.UUID, links []models.MarketplaceLink) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.MarketplaceLink{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		for i := range links {
			links[i].ProductID = productID
		}
		return tx.Create(&links).Error
	})
}

func (r *productRepository) GetLink(ctx context.Context, linkID uuid.UUID) (*models.MarketplaceLink, error) {
	var link models.MarketplaceLink
	err := r.db.WithContext(ctx).First(&link, "id = ?", linkID).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *productRepository) IncrementLinkClicks(ctx context.Context, linkID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.MarketplaceLink{}).
		Where("id = ?", linkID).
		Update("clicks", gorm.Expr("clicks + 1")).Error
}

func (r *productRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
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

	err := query.Preload("MarketplaceLinks").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
