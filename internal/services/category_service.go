package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// CategoryService manages directory categories. Writes are admin-only;
// reads are public.
type CategoryService struct {
	txm    repository.TxManager
	repos  *repository.Repositories
	audit  AuditRecorder
	logger *logrus.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(txm repository.TxManager, repos *repository.Repositories, audit AuditRecorder, logger *logrus.Logger) *CategoryService {
	return &CategoryService{
		txm:    txm,
		repos:  repos,
		audit:  audit,
		logger: logger,
	}
}

// List returns all categories
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repos.Categories.List(ctx)
}

// Get loads a category by ID
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repos.Categories.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return category, nil
}

// Create adds a category
func (s *CategoryService) Create(ctx context.Context, actor Actor, req models.CategoryRequest) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins manage categories")
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
	}
	if _, err := s.repos.Categories.GetBySlug(ctx, category.Slug); err == nil {
		return nil, NewConflictError("category", "a category with this name already exists")
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}

	err := s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Categories.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionCreate, models.ResourceCategory, category.ID.String(), fmt.Sprintf("created category %q", category.Name))
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits a category. The slug stays stable so public URLs survive a
// rename.
func (s *CategoryService) Update(ctx context.Context, actor Actor, id uuid.UUID, req models.CategoryRequest) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins manage categories")
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Icon = req.Icon

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Categories.Update(ctx, category); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionUpdate, models.ResourceCategory, category.ID.String(), fmt.Sprintf("updated category %q", category.Name))
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category that no business references
func (s *CategoryService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return NewForbiddenError("only village admins manage categories")
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repos.Categories.CountBusinesses(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category businesses: %w", err)
	}
	if count > 0 {
		return NewConflictError("category", fmt.Sprintf("category still has %d businesses", count))
	}

	return s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Categories.Delete(ctx, category.ID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionDelete, models.ResourceCategory, category.ID.String(), fmt.Sprintf("deleted category %q", category.Name))
	})
}
