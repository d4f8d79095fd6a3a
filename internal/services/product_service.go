package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// ProductService manages product listings and their marketplace links.
// Owners operate only on products of their own business.
type ProductService struct {
	txm    repository.TxManager
	repos  *repository.Repositories
	audit  AuditRecorder
	logger *logrus.Logger
}

// NewProductService creates a new product service
func NewProductService(txm repository.TxManager, repos *repository.Repositories, audit AuditRecorder, logger *logrus.Logger) *ProductService {
	return &ProductService{
		txm:    txm,
		repos:  repos,
		audit:  audit,
		logger: logger,
	}
}

// Get loads a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repos.Products.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return product, nil
}

// List lists products. Owners are scoped to their own business regardless of
// the filter they pass.
func (s *ProductService) List(ctx context.Context, actor Actor, filter models.ProductFilter) ([]models.Product, int64, error) {
	if actor.IsOwner() {
		if actor.Business == nil {
			return nil, 0, ErrBusinessNotLinked
		}
		filter.BusinessID = &actor.Business.ID
	}
	return s.repos.Products.List(ctx, filter)
}

// Create lists a new product under a business
func (s *ProductService) Create(ctx context.Context, actor Actor, req models.CreateProductRequest) (*models.Product, error) {
	businessID, err := s.resolveBusinessID(actor, req.BusinessID)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: true,
	}
	links := buildLinks(req.MarketplaceLinks)

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Products.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if len(links) > 0 {
			if err := r.Products.ReplaceLinks(ctx, product.ID, links); err != nil {
				return fmt.Errorf("failed to save marketplace links: %w", err)
			}
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionCreate, models.ResourceProduct, product.ID.String(), fmt.Sprintf("listed product %q", product.Name))
	})
	if err != nil {
		return nil, err
	}
	product.MarketplaceLinks = links
	return product, nil
}

// Update edits a product
func (s *ProductService) Update(ctx context.Context, actor Actor, id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(actor, product); err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Products.Update(ctx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionUpdate, models.ResourceProduct, product.ID.String(), fmt.Sprintf("updated product %q", product.Name))
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// SetLinks replaces a product's marketplace links wholesale
func (s *ProductService) SetLinks(ctx context.Context, actor Actor, id uuid.UUID, reqs []models.MarketplaceLinkRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(actor, product); err != nil {
		return nil, err
	}

	links := buildLinks(reqs)
	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Products.ReplaceLinks(ctx, product.ID, links); err != nil {
			return fmt.Errorf("failed to replace marketplace links: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionUpdate, models.ResourceProduct, product.ID.String(), fmt.Sprintf("replaced marketplace links on %q", product.Name))
	})
	if err != nil {
		return nil, err
	}
	product.MarketplaceLinks = links
	return product, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(actor, product); err != nil {
		return err
	}

	return s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Products.Delete(ctx, product.ID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionDelete, models.ResourceProduct, product.ID.String(), fmt.Sprintf("deleted product %q", product.Name))
	})
}

// TrackLinkClick increments a marketplace link's click counter. Called from
// the public surface, so it takes no actor and records no audit entry.
func (s *ProductService) TrackLinkClick(ctx context.Context, linkID uuid.UUID) error {
	if _, err := s.repos.Products.GetLink(ctx, linkID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load link: %w", err)
	}
	if err := s.repos.Products.IncrementLinkClicks(ctx, linkID); err != nil {
		return fmt.Errorf("failed to count click: %w", err)
	}
	return nil
}

func (s *ProductService) resolveBusinessID(actor Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if actor.IsAdmin() {
		if requested == nil {
			return uuid.Nil, NewValidationError("businessId", "businessId is required for admin requests")
		}
		return *requested, nil
	}
	if actor.Business == nil {
		return uuid.Nil, ErrBusinessNotLinked
	}
	return actor.Business.ID, nil
}

func (s *ProductService) checkOwnership(actor Actor, product *models.Product) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.OwnsBusiness(product.BusinessID) {
		return NewForbiddenError("product belongs to another business")
	}
	return nil
}

func buildLinks(reqs []models.MarketplaceLinkRequest) []models.MarketplaceLink {
	links := make([]models.MarketplaceLink, 0, len(reqs))
	for _, lr := range reqs {
		links = append(links, models.MarketplaceLink{
			Marketplace: lr.Marketplace,
			URL:         lr.URL,
		})
	}
	return links
}
