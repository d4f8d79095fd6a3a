package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/events"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/maps"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// BusinessService handles UMKM registration and lifecycle. Creation and
// status transitions are admin-only; owners may edit their own profile while
// the business is active.
type BusinessService struct {
	txm       repository.TxManager
	repos     *repository.Repositories
	audit     AuditRecorder
	publisher *events.Publisher
	logger    *logrus.Logger
}

// NewBusinessService creates a new business service
func NewBusinessService(txm repository.TxManager, repos *repository.Repositories, audit AuditRecorder, publisher *events.Publisher, logger *logrus.Logger) *BusinessService {
	return &BusinessService{
		txm:       txm,
		repos:     repos,
		audit:     audit,
		publisher: publisher,
		logger:    logger,
	}
}

// Get loads a business by ID
func (s *BusinessService) Get(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	business, err := s.repos.Businesses.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	return business, nil
}

// List lists businesses with filters
func (s *BusinessService) List(ctx context.Context, filter models.BusinessFilter) ([]models.Business, int64, error) {
	return s.repos.Businesses.List(ctx, filter)
}

// Create registers a new business. Admin only; the owner relation is fixed
// here and never reassigned.
func (s *BusinessService) Create(ctx context.Context, actor Actor, req models.CreateBusinessRequest) (*models.Business, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins register businesses")
	}

	owner, err := s.repos.Users.GetByID(ctx, req.OwnerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, NewValidationError("ownerId", "owner account not found")
		}
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}
	if owner.Role != models.RoleBusinessOwner {
		return nil, NewValidationError("ownerId", "owner must be a business_owner account")
	}
	if _, err := s.repos.Businesses.GetByOwnerID(ctx, owner.ID); err == nil {
		return nil, NewConflictError("business", "owner already has a business")
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing business: %w", err)
	}

	if _, err := s.repos.Categories.GetByID(ctx, req.CategoryID); err != nil {
		if repository.IsNotFound(err) {
			return nil, NewValidationError("categoryId", "category not found")
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	business := &models.Business{
		Name:        req.Name,
		Slug:        makeSlug(req.Name),
		Description: req.Description,
		Status:      models.BusinessActive,
		OwnerID:     req.OwnerID,
		CategoryID:  req.CategoryID,
		Address:     req.Address,
		Phone:       req.Phone,
		MapsURL:     req.MapsURL,
	}
	applyCoordinates(business, req.MapsURL, s.logger)

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Businesses.Create(ctx, business); err != nil {
			return fmt.Errorf("failed to create business: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionCreate, models.ResourceBusiness, business.ID.String(), fmt.Sprintf("registered business %q", business.Name))
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "businesses.created", business)
	return business, nil
}

// Update edits a business profile. Admins edit any; owners only their own.
func (s *BusinessService) Update(ctx context.Context, actor Actor, id uuid.UUID, req models.UpdateBusinessRequest) (*models.Business, error) {
	business, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !actor.OwnsBusiness(business.ID) {
		return nil, NewForbiddenError("business belongs to another owner")
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Description != nil {
		business.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.repos.Categories.GetByID(ctx, *req.CategoryID); err != nil {
			if repository.IsNotFound(err) {
				return nil, NewValidationError("categoryId", "category not found")
			}
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
		business.CategoryID = *req.CategoryID
	}
	if req.Address != nil {
		business.Address = *req.Address
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}
	if req.MapsURL != nil {
		business.MapsURL = *req.MapsURL
		applyCoordinates(business, *req.MapsURL, s.logger)
	}

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Businesses.Update(ctx, business); err != nil {
			return fmt.Errorf("failed to update business: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionUpdate, models.ResourceBusiness, business.ID.String(), fmt.Sprintf("updated business %q", business.Name))
	})
	if err != nil {
		return nil, err
	}
	return business, nil
}

// UpdateStatus transitions a business between active, inactive and
// suspended. Admin only. Leaving active revokes all of the owner's sessions
// so the portal gate takes effect immediately.
func (s *BusinessService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status models.BusinessStatus) (*models.Business, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins change business status")
	}
	if !status.IsValid() {
		return nil, NewValidationError("status", "unknown business status")
	}

	business, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Businesses.UpdateStatus(ctx, business.ID, status); err != nil {
			return fmt.Errorf("failed to update business status: %w", err)
		}
		if status != models.BusinessActive {
			if err := r.Sessions.DeactivateAllForUser(ctx, business.OwnerID); err != nil {
				return fmt.Errorf("failed to revoke owner sessions: %w", err)
			}
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionStatusChange, models.ResourceBusiness, business.ID.String(), fmt.Sprintf("changed status of %q from %s to %s", business.Name, business.Status, status))
	})
	if err != nil {
		return nil, err
	}

	business.Status = status
	s.publish(ctx, "businesses.status_changed", business)
	return business, nil
}

// Delete removes a business. Admin only.
func (s *BusinessService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return NewForbiddenError("only village admins delete businesses")
	}

	business, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Businesses.Delete(ctx, business.ID); err != nil {
			return fmt.Errorf("failed to delete business: %w", err)
		}
		if err := r.Sessions.DeactivateAllForUser(ctx, business.OwnerID); err != nil {
			return fmt.Errorf("failed to revoke owner sessions: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionDelete, models.ResourceBusiness, business.ID.String(), fmt.Sprintf("deleted business %q", business.Name))
	})
}

func (s *BusinessService) publish(ctx context.Context, subject string, business *models.Business) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, business); err != nil {
		s.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish business event")
	}
}

// applyCoordinates extracts a pin from a maps link when one is present.
// Extraction failures are logged and ignored; the link is still saved.
func applyCoordinates(business *models.Business, mapsURL string, logger *logrus.Logger) {
	if mapsURL == "" {
		return
	}
	coords, err := maps.Extract(mapsURL)
	if err != nil {
		logger.WithError(err).WithField("business", business.Name).Debug("No coordinates in maps URL")
		return
	}
	business.Latitude = &coords.Latitude
	business.Longitude = &coords.Longitude
}
