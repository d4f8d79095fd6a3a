package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) ReplaceLinks(ctx context.Context, productID uuid.UUID, links []models.MarketplaceLink) error {
	args := m.Called(ctx, productID, links)
	return args.Error(0)
}

func (m *mockProductRepository) GetLink(ctx context.Context, linkID uuid.UUID) (*models.MarketplaceLink, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketplaceLink), args.Error(1)
}

func (m *mockProductRepository) IncrementLinkClicks(ctx context.Context, linkID uuid.UUID) error {
	args := m.Called(ctx, linkID)
	return args.Error(0)
}

func (m *mockProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductFixture() (*ProductService, *mockProductRepository, *auditRecorderStub) {
	products := &mockProductRepository{}
	repos := &repository.Repositories{Products: products}
	audit := &auditRecorderStub{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewProductService(&fakeTxManager{repos: repos}, repos, audit, logger)
	return svc, products, audit
}

func TestCreateProductPinsOwnerBusiness(t *testing.T) {
	svc, products, _ := newProductFixture()
	owner := ownerActor()
	other := ownerActor()

	products.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.BusinessID == owner.Business.ID
	})).Return(nil)

	result, err := svc.Create(context.Background(), owner, models.CreateProductRequest{
		Name:       "Keripik Singkong",
		Price:      15000,
		BusinessID: &other.Business.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, owner.Business.ID, result.BusinessID)
}

func TestCreateProductSavesMarketplaceLinks(t *testing.T) {
	svc, products, audit := newProductFixture()
	owner := ownerActor()

	products.On("Create", mock.Anything, mock.Anything).Return(nil)
	products.On("ReplaceLinks", mock.Anything, mock.Anything, mock.MatchedBy(func(links []models.MarketplaceLink) bool {
		return len(links) == 1 && links[0].Marketplace == "shopee"
	})).Return(nil)

	result, err := svc.Create(context.Background(), owner, models.CreateProductRequest{
		Name:  "Keripik Singkong",
		Price: 15000,
		MarketplaceLinks: []models.MarketplaceLinkRequest{
			{Marketplace: "shopee", URL: "https://shopee.co.id/keripik"},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, result.MarketplaceLinks, 1)
	assert.Equal(t, models.ActionCreate, audit.last().action)
}

func TestOwnerCannotUpdateForeignProduct(t *testing.T) {
	svc, products, _ := newProductFixture()
	owner := ownerActor()
	foreign := &models.Product{ID: uuid.New(), BusinessID: uuid.New(), Name: "Bukan Punyaku"}

	products.On("GetByID", mock.Anything, foreign.ID).Return(foreign, nil)

	name := "Curian"
	_, err := svc.Update(context.Background(), owner, foreign.ID, models.UpdateProductRequest{Name: &name})

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestListScopesOwnerProducts(t *testing.T) {
	svc, products, _ := newProductFixture()
	owner := ownerActor()

	products.On("List", mock.Anything, mock.MatchedBy(func(f models.ProductFilter) bool {
		return f.BusinessID != nil && *f.BusinessID == owner.Business.ID
	})).Return([]models.Product{}, int64(0), nil)

	_, _, err := svc.List(context.Background(), owner, models.ProductFilter{})

	assert.NoError(t, err)
	products.AssertExpectations(t)
}

func TestTrackLinkClickIncrementsCounter(t *testing.T) {
	svc, products, _ := newProductFixture()
	link := &models.MarketplaceLink{ID: uuid.New(), Marketplace: "tokopedia", URL: "https://tokopedia.com/x"}

	products.On("GetLink", mock.Anything, link.ID).Return(link, nil)
	products.On("IncrementLinkClicks", mock.Anything, link.ID).Return(nil)

	assert.NoError(t, svc.TrackLinkClick(context.Background(), link.ID))
	products.AssertExpectations(t)
}
