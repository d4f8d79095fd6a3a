package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/auth"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// AuthService handles login, logout and per-request session authentication.
// The activation gate runs both at login and on every authenticated request,
// because a business can be deactivated mid-session; a failed gate revokes
// the session.
type AuthService struct {
	repos  *repository.Repositories
	txm    repository.TxManager
	access *AccessService
	jwt    *auth.JWTService
	audit  AuditRecorder
	logger *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repos *repository.Repositories, txm repository.TxManager, access *AccessService, jwtService *auth.JWTService, audit AuditRecorder, logger *logrus.Logger) *AuthService {
	return &AuthService{
		repos:  repos,
		txm:    txm,
		access: access,
		jwt:    jwtService,
		audit:  audit,
		logger: logger,
	}
}

// Login verifies credentials, runs the activation gate and issues a session
// token
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, ipAddress, userAgent string) (*models.LoginResponse, error) {
	user, err := s.repos.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.WithField("email", req.Email).Warn("Login failed: bad credentials")
		return nil, ErrUnauthenticated
	}

	actor, err := s.access.Resolve(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanEnterPortal(actor); err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"reason":  err.Error(),
		}).Warn("Login rejected by activation gate")
		return nil, err
	}

	session := &models.Session{
		UserID:    user.ID,
		IsActive:  true,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(s.jwt.Expiry()),
	}

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Sessions.Create(ctx, session); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		if err := r.Users.TouchLastLogin(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to stamp last login: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionLogin, models.ResourceAuth, user.ID.String(), "logged in")
	})
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(user, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *user,
	}, nil
}

// Authenticate resolves and gates the actor for a bearer token's claims.
// A gate failure mid-session revokes the session before returning the error.
func (s *AuthService) Authenticate(ctx context.Context, claims *auth.Claims) (Actor, error) {
	session, err := s.repos.Sessions.GetByID(ctx, claims.SessionID)
	if err != nil {
		return Actor{}, ErrUnauthenticated
	}
	if !session.IsActive || time.Now().After(session.ExpiresAt) {
		return Actor{}, ErrUnauthenticated
	}

	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return Actor{}, ErrUnauthenticated
	}

	actor, err := s.access.Resolve(ctx, user)
	if err != nil {
		return Actor{}, err
	}

	if err := s.access.CanEnterPortal(actor); err != nil {
		// Defense in depth: the account or business was disabled after the
		// token was issued. Force the logout the gate asks for.
		if revokeErr := s.repos.Sessions.Deactivate(ctx, session.ID); revokeErr != nil {
			s.logger.WithError(revokeErr).WithField("session_id", session.ID).Error("Failed to revoke gated session")
		}
		return Actor{}, err
	}

	return actor, nil
}

// Logout revokes the current session
func (s *AuthService) Logout(ctx context.Context, actor Actor, sessionID uuid.UUID) error {
	return s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Sessions.Deactivate(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to deactivate session: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionLogout, models.ResourceAuth, actor.User.ID.String(), "logged out")
	})
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
