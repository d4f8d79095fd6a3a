package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// Actor is a resolved request identity: the authenticated user plus, for
// business owners, their single linked business. Resolution is a pure read;
// an owner without a business is a valid actor that downstream gates reject.
type Actor struct {
	User     *models.User
	Business *models.Business
}

// IsAdmin reports whether the actor is a village admin
func (a Actor) IsAdmin() bool {
	return a.User != nil && a.User.Role == models.RoleVillageAdmin
}

// IsOwner reports whether the actor is a business owner account
func (a Actor) IsOwner() bool {
	return a.User != nil && a.User.Role == models.RoleBusinessOwner
}

// OwnsBusiness reports whether the actor's linked business matches the given ID
func (a Actor) OwnsBusiness(businessID uuid.UUID) bool {
	return a.Business != nil && a.Business.ID == businessID
}

// AccessService resolves roles and tenancy and gates portal entry
type AccessService struct {
	businesses repository.BusinessRepository
	logger     *logrus.Logger
}

// NewAccessService creates a new access service
func NewAccessService(businesses repository.BusinessRepository, logger *logrus.Logger) *AccessService {
	return &AccessService{
		businesses: businesses,
		logger:     logger,
	}
}

// Resolve loads the actor for an authenticated user. For business owners the
// linked business is fetched; absence of one is not an error here.
func (s *AccessService) Resolve(ctx context.Context, user *models.User) (Actor, error) {
	if user == nil {
		return Actor{}, ErrUnauthenticated
	}

	actor := Actor{User: user}
	if user.Role != models.RoleBusinessOwner {
		return actor, nil
	}

	business, err := s.businesses.GetByOwnerID(ctx, user.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return actor, nil
		}
		return Actor{}, fmt.Errorf("failed to resolve business for owner: %w", err)
	}

	actor.Business = business
	return actor, nil
}

// CanEnterPortal classifies whether the actor may use an authenticated
// surface. Village admins always pass. Business owners need a linked business
// in active status. The caller terminates the session on rejection; this
// check itself mutates nothing.
func (s *AccessService) CanEnterPortal(actor Actor) error {
	if actor.User == nil {
		return ErrUnauthenticated
	}
	if !actor.User.IsActive {
		return ErrAccountDisabled
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.Business == nil {
		return ErrBusinessNotLinked
	}
	if !actor.Business.IsActive() {
		return ErrBusinessNotActive
	}
	return nil
}
