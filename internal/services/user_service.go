package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// UserService manages platform accounts. All operations are admin-only.
type UserService struct {
	txm    repository.TxManager
	repos  *repository.Repositories
	audit  AuditRecorder
	logger *logrus.Logger
}

// NewUserService creates a new user service
func NewUserService(txm repository.TxManager, repos *repository.Repositories, audit AuditRecorder, logger *logrus.Logger) *UserService {
	return &UserService{
		txm:    txm,
		repos:  repos,
		audit:  audit,
		logger: logger,
	}
}

// Get loads an account with its business relation
func (s *UserService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins manage accounts")
	}
	user, err := s.repos.Users.GetByIDWithBusiness(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// List lists accounts, optionally filtered by role
func (s *UserService) List(ctx context.Context, actor Actor, role *models.UserRole, page, limit int) ([]models.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, NewForbiddenError("only village admins manage accounts")
	}
	return s.repos.Users.List(ctx, role, page, limit)
}

// Create registers a new account
func (s *UserService) Create(ctx context.Context, actor Actor, req models.CreateUserRequest) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins manage accounts")
	}
	if !req.Role.IsValid() {
		return nil, NewValidationError("role", "unknown role")
	}

	if _, err := s.repos.Users.GetByEmail(ctx, req.Email); err == nil {
		return nil, NewConflictError("user", "email already registered")
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionCreate, models.ResourceUser, user.ID.String(), fmt.Sprintf("created %s account %s", user.Role, user.Email))
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update edits an account. Deactivating an account revokes its sessions.
func (s *UserService) Update(ctx context.Context, actor Actor, id uuid.UUID, req models.UpdateUserRequest) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins manage accounts")
	}

	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	deactivated := false
	if req.IsActive != nil {
		if user.ID == actor.User.ID && !*req.IsActive {
			return nil, NewValidationError("isActive", "cannot deactivate your own account")
		}
		deactivated = user.IsActive && !*req.IsActive
		user.IsActive = *req.IsActive
	}

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if deactivated {
			if err := r.Sessions.DeactivateAllForUser(ctx, user.ID); err != nil {
				return fmt.Errorf("failed to revoke sessions: %w", err)
			}
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionUpdate, models.ResourceUser, user.ID.String(), fmt.Sprintf("updated account %s", user.Email))
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. An owner account with a business cannot be
// deleted until the business is removed first.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return NewForbiddenError("only village admins manage accounts")
	}
	if id == actor.User.ID {
		return NewValidationError("id", "cannot delete your own account")
	}

	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if _, err := s.repos.Businesses.GetByOwnerID(ctx, user.ID); err == nil {
		return NewConflictError("user", "account still owns a business")
	} else if !repository.IsNotFound(err) {
		return fmt.Errorf("failed to check owned business: %w", err)
	}

	return s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Users.Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if err := r.Sessions.DeactivateAllForUser(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionDelete, models.ResourceUser, user.ID.String(), fmt.Sprintf("deleted account %s", user.Email))
	})
}
