package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// fakeTxManager runs the transaction function directly against the given
// bundle, so tests can assert what happened "inside" the transaction.
type fakeTxManager struct {
	repos *repository.Repositories
}

func (f *fakeTxManager) Transaction(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return fn(f.repos)
}

// recordedAudit captures one AuditRecorder.Record call
type recordedAudit struct {
	action     models.AuditAction
	resource   models.AuditResource
	resourceID string
}

type auditRecorderStub struct {
	records []recordedAudit
	err     error
}

func (a *auditRecorderStub) Record(ctx context.Context, repo repository.AuditRepository, actor Actor, action models.AuditAction, resource models.AuditResource, resourceID, description string) error {
	if a.err != nil {
		return a.err
	}
	a.records = append(a.records, recordedAudit{action: action, resource: resource, resourceID: resourceID})
	return nil
}

func (a *auditRecorderStub) last() recordedAudit {
	return a.records[len(a.records)-1]
}

type mockArticleRepository struct {
	mock.Mock
}

func (m *mockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *mockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *mockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) UpdateStatusGuarded(ctx context.Context, id uuid.UUID, expected []models.ArticleStatus, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, expected, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockArticleRepository) List(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Article), args.Get(1).(int64), args.Error(2)
}

func (m *mockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBusinessRepository struct {
	mock.Mock
}

func (m *mockBusinessRepository) Create(ctx context.Context, business *models.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *mockBusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *mockBusinessRepository) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *mockBusinessRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*models.Business, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Business), args.Error(1)
}

func (m *mockBusinessRepository) Update(ctx context.Context, business *models.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *mockBusinessRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BusinessStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockBusinessRepository) List(ctx context.Context, filter models.BusinessFilter) ([]models.Business, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Business), args.Get(1).(int64), args.Error(2)
}

func (m *mockBusinessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockSessionRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionRepository) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByIDWithBusiness(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) List(ctx context.Context, role *models.UserRole, page, limit int) ([]models.User, int64, error) {
	args := m.Called(ctx, role, page, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Test fixture helpers

func adminActor() Actor {
	return Actor{User: &models.User{
		ID:       uuid.New(),
		Name:     "Admin Desa",
		Email:    "admin@desa.id",
		Role:     models.RoleVillageAdmin,
		IsActive: true,
	}}
}

func ownerActor() Actor {
	owner := &models.User{
		ID:       uuid.New(),
		Name:     "Bu Siti",
		Email:    "siti@warung.id",
		Role:     models.RoleBusinessOwner,
		IsActive: true,
	}
	return Actor{
		User: owner,
		Business: &models.Business{
			ID:      uuid.New(),
			Name:    "Warung Siti",
			Status:  models.BusinessActive,
			OwnerID: owner.ID,
		},
	}
}

func articleFor(businessID uuid.UUID, status models.ArticleStatus) *models.Article {
	return &models.Article{
		ID:         uuid.New(),
		BusinessID: businessID,
		Title:      "Promo Akhir Pekan",
		Slug:       "promo-akhir-pekan-abcd1234",
		Content:    "Diskon spesial",
		Status:     status,
		CreatedAt:  time.Now(),
	}
}
