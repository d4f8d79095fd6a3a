package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/auth"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

type authFixture struct {
	svc        *AuthService
	users      *mockUserRepository
	sessions   *mockSessionRepository
	businesses *mockBusinessRepository
	audit      *auditRecorderStub
}

func newAuthFixture() *authFixture {
	users := &mockUserRepository{}
	sessions := &mockSessionRepository{}
	businesses := &mockBusinessRepository{}
	repos := &repository.Repositories{
		Users:      users,
		Sessions:   sessions,
		Businesses: businesses,
	}
	audit := &auditRecorderStub{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	access := NewAccessService(businesses, logger)
	jwtService := auth.NewJWTService("test-secret", 24)
	svc := NewAuthService(repos, &fakeTxManager{repos: repos}, access, jwtService, audit, logger)

	return &authFixture{svc: svc, users: users, sessions: sessions, businesses: businesses, audit: audit}
}

func hashedUser(role models.UserRole, password string) *models.User {
	hash, _ := HashPassword(password)
	return &models.User{
		ID:           adminActor().User.ID,
		Name:         "Test User",
		Email:        "user@desa.id",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
}

func TestLoginWithWrongPasswordFails(t *testing.T) {
	f := newAuthFixture()
	user := hashedUser(models.RoleVillageAdmin, "correct-password")

	f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	}, "127.0.0.1", "test-agent")

	assert.ErrorIs(t, err, ErrUnauthenticated)
	f.sessions.AssertNotCalled(t, "Create")
}

func TestLoginAdminIssuesSessionAndToken(t *testing.T) {
	f := newAuthFixture()
	user := hashedUser(models.RoleVillageAdmin, "rahasia123")

	f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	f.sessions.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.users.On("TouchLastLogin", mock.Anything, user.ID).Return(nil)

	resp, err := f.svc.Login(context.Background(), models.LoginRequest{
		Email:    user.Email,
		Password: "rahasia123",
	}, "127.0.0.1", "test-agent")

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.ActionLogin, f.audit.last().action)
}

func TestLoginOwnerOfSuspendedBusinessIsGated(t *testing.T) {
	f := newAuthFixture()
	user := hashedUser(models.RoleBusinessOwner, "rahasia123")
	business := &models.Business{
		ID:      ownerActor().Business.ID,
		OwnerID: user.ID,
		Status:  models.BusinessSuspended,
	}

	f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	f.businesses.On("GetByOwnerID", mock.Anything, user.ID).Return(business, nil)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{
		Email:    user.Email,
		Password: "rahasia123",
	}, "127.0.0.1", "test-agent")

	assert.ErrorIs(t, err, ErrBusinessNotActive)
	f.sessions.AssertNotCalled(t, "Create")
}

func TestAuthenticateRevokesSessionWhenGateFailsMidSession(t *testing.T) {
	// The business was suspended after the token was issued; the session must
	// be force-terminated on the next request.
	f := newAuthFixture()
	user := hashedUser(models.RoleBusinessOwner, "rahasia123")
	business := &models.Business{ID: ownerActor().Business.ID, OwnerID: user.ID, Status: models.BusinessSuspended}
	session := &models.Session{
		ID:        ownerActor().Business.ID,
		UserID:    user.ID,
		IsActive:  true,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	f.sessions.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.businesses.On("GetByOwnerID", mock.Anything, user.ID).Return(business, nil)
	f.sessions.On("Deactivate", mock.Anything, session.ID).Return(nil)

	_, err := f.svc.Authenticate(context.Background(), &auth.Claims{
		UserID:    user.ID,
		SessionID: session.ID,
	})

	assert.ErrorIs(t, err, ErrBusinessNotActive)
	f.sessions.AssertCalled(t, "Deactivate", mock.Anything, session.ID)
}

func TestAuthenticateRejectsExpiredSession(t *testing.T) {
	f := newAuthFixture()
	user := hashedUser(models.RoleVillageAdmin, "rahasia123")
	session := &models.Session{
		ID:        ownerActor().Business.ID,
		UserID:    user.ID,
		IsActive:  true,
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	f.sessions.On("GetByID", mock.Anything, session.ID).Return(session, nil)

	_, err := f.svc.Authenticate(context.Background(), &auth.Claims{UserID: user.ID, SessionID: session.ID})

	assert.ErrorIs(t, err, ErrUnauthenticated)
}
