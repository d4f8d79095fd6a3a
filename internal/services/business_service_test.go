package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

type businessFixture struct {
	svc        *BusinessService
	businesses *mockBusinessRepository
	sessions   *mockSessionRepository
	audit      *auditRecorderStub
}

func newBusinessFixture() *businessFixture {
	businesses := &mockBusinessRepository{}
	sessions := &mockSessionRepository{}
	repos := &repository.Repositories{
		Businesses: businesses,
		Sessions:   sessions,
	}
	audit := &auditRecorderStub{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewBusinessService(&fakeTxManager{repos: repos}, repos, audit, nil, logger)
	return &businessFixture{svc: svc, businesses: businesses, sessions: sessions, audit: audit}
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	f := newBusinessFixture()
	owner := ownerActor()

	_, err := f.svc.UpdateStatus(context.Background(), owner, owner.Business.ID, models.BusinessSuspended)

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestSuspendingBusinessRevokesOwnerSessions(t *testing.T) {
	f := newBusinessFixture()
	owner := ownerActor()
	business := owner.Business

	f.businesses.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.businesses.On("UpdateStatus", mock.Anything, business.ID, models.BusinessSuspended).Return(nil)
	f.sessions.On("DeactivateAllForUser", mock.Anything, business.OwnerID).Return(nil)

	result, err := f.svc.UpdateStatus(context.Background(), adminActor(), business.ID, models.BusinessSuspended)

	assert.NoError(t, err)
	assert.Equal(t, models.BusinessSuspended, result.Status)
	assert.Equal(t, models.ActionStatusChange, f.audit.last().action)
	f.sessions.AssertCalled(t, "DeactivateAllForUser", mock.Anything, business.OwnerID)
}

func TestReactivatingBusinessKeepsSessionsIntact(t *testing.T) {
	f := newBusinessFixture()
	owner := ownerActor()
	business := owner.Business
	business.Status = models.BusinessInactive

	f.businesses.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.businesses.On("UpdateStatus", mock.Anything, business.ID, models.BusinessActive).Return(nil)

	_, err := f.svc.UpdateStatus(context.Background(), adminActor(), business.ID, models.BusinessActive)

	assert.NoError(t, err)
	f.sessions.AssertNotCalled(t, "DeactivateAllForUser")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newBusinessFixture()

	_, err := f.svc.UpdateStatus(context.Background(), adminActor(), ownerActor().Business.ID, models.BusinessStatus("archived"))

	_, ok := IsValidationError(err)
	assert.True(t, ok)
}

func TestOwnerCannotEditAnotherBusiness(t *testing.T) {
	f := newBusinessFixture()
	owner := ownerActor()
	other := ownerActor().Business

	f.businesses.On("GetByID", mock.Anything, other.ID).Return(other, nil)

	name := "Warung Palsu"
	_, err := f.svc.Update(context.Background(), owner, other.ID, models.UpdateBusinessRequest{Name: &name})

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestUpdateMapsURLExtractsCoordinates(t *testing.T) {
	f := newBusinessFixture()
	owner := ownerActor()
	business := owner.Business

	f.businesses.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.businesses.On("Update", mock.Anything, business).Return(nil)

	mapsURL := "https://www.google.com/maps/place/Warung/@-7.9,110.3,17z/data=!3d-7.8881!4d110.3288"
	result, err := f.svc.Update(context.Background(), owner, business.ID, models.UpdateBusinessRequest{MapsURL: &mapsURL})

	assert.NoError(t, err)
	assert.NotNil(t, result.Latitude)
	assert.InDelta(t, -7.8881, *result.Latitude, 1e-9)
	assert.InDelta(t, 110.3288, *result.Longitude, 1e-9)
}

func TestUpdateUnparsableMapsURLStillSaves(t *testing.T) {
	f := newBusinessFixture()
	owner := ownerActor()
	business := owner.Business

	f.businesses.On("GetByID", mock.Anything, business.ID).Return(business, nil)
	f.businesses.On("Update", mock.Anything, business).Return(nil)

	mapsURL := "https://maps.app.goo.gl/shortlink"
	result, err := f.svc.Update(context.Background(), owner, business.ID, models.UpdateBusinessRequest{MapsURL: &mapsURL})

	assert.NoError(t, err)
	assert.Equal(t, mapsURL, result.MapsURL)
	assert.Nil(t, result.Latitude)
}
