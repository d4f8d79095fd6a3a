package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

func newModerationFixture() (*ModerationService, *mockArticleRepository, *auditRecorderStub) {
	articles := &mockArticleRepository{}
	repos := &repository.Repositories{Articles: articles}
	audit := &auditRecorderStub{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewModerationService(&fakeTxManager{repos: repos}, repos, audit, nil, logger)
	return svc, articles, audit
}

func TestSubmitMovesOwnDraftToPending(t *testing.T) {
	svc, articles, audit := newModerationFixture()
	owner := ownerActor()
	article := articleFor(owner.Business.ID, models.ArticleDraft)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	articles.On("UpdateStatusGuarded", mock.Anything, article.ID,
		[]models.ArticleStatus{models.ArticleDraft, models.ArticleRejected},
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			return updates["status"] == models.ArticlePending && updates["rejection_notes"] == nil
		})).Return(int64(1), nil)

	result, err := svc.Submit(context.Background(), owner, article.ID)

	assert.NoError(t, err)
	assert.Equal(t, models.ArticlePending, result.Status)
	assert.Nil(t, result.RejectionNotes)
	assert.Equal(t, models.ActionSubmit, audit.last().action)
	articles.AssertExpectations(t)
}

func TestSubmitRejectedArticleClearsNotes(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	owner := ownerActor()
	article := articleFor(owner.Business.ID, models.ArticleRejected)
	notes := "foto produk kurang jelas"
	article.RejectionNotes = &notes

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	articles.On("UpdateStatusGuarded", mock.Anything, article.ID, mock.Anything, mock.Anything).Return(int64(1), nil)

	result, err := svc.Submit(context.Background(), owner, article.ID)

	assert.NoError(t, err)
	assert.Equal(t, models.ArticlePending, result.Status)
	assert.Nil(t, result.RejectionNotes)
}

func TestSubmitPendingArticleIsInvalidTransition(t *testing.T) {
	svc, articles, audit := newModerationFixture()
	owner := ownerActor()
	article := articleFor(owner.Business.ID, models.ArticlePending)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	_, err := svc.Submit(context.Background(), owner, article.ID)

	_, ok := IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Empty(t, audit.records)
}

func TestSubmitRequiresOwnerRole(t *testing.T) {
	svc, _, _ := newModerationFixture()

	_, err := svc.Submit(context.Background(), adminActor(), articleFor(ownerActor().Business.ID, models.ArticleDraft).ID)

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestSubmitOthersArticleIsForbidden(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	owner := ownerActor()
	other := ownerActor()
	article := articleFor(other.Business.ID, models.ArticleDraft)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	_, err := svc.Submit(context.Background(), owner, article.ID)

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestApproveRequiresAdminRole(t *testing.T) {
	svc, _, _ := newModerationFixture()
	owner := ownerActor()

	_, err := svc.Approve(context.Background(), owner, articleFor(owner.Business.ID, models.ArticlePending).ID)

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestApprovePendingArticle(t *testing.T) {
	svc, articles, audit := newModerationFixture()
	admin := adminActor()
	article := articleFor(ownerActor().Business.ID, models.ArticlePending)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	articles.On("UpdateStatusGuarded", mock.Anything, article.ID,
		[]models.ArticleStatus{models.ArticlePending}, mock.Anything).Return(int64(1), nil)

	result, err := svc.Approve(context.Background(), admin, article.ID)

	assert.NoError(t, err)
	assert.Equal(t, models.ArticleApproved, result.Status)
	assert.Equal(t, admin.User.ID, *result.ApprovedBy)
	assert.NotNil(t, result.ApprovedAt)
	assert.Equal(t, models.ActionApprove, audit.last().action)
}

func TestApproveDraftIsInvalidTransition(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	article := articleFor(ownerActor().Business.ID, models.ArticleDraft)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	_, err := svc.Approve(context.Background(), adminActor(), article.ID)

	transition, ok := IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, string(models.ArticleDraft), transition.From)
}

func TestConcurrentDecisionLosesStatusGuard(t *testing.T) {
	// The article reads as pending, but another admin moves it before the
	// guarded update runs. Zero affected rows must surface as an invalid
	// transition and record no audit entry.
	svc, articles, audit := newModerationFixture()
	article := articleFor(ownerActor().Business.ID, models.ArticlePending)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	articles.On("UpdateStatusGuarded", mock.Anything, article.ID, mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := svc.Approve(context.Background(), adminActor(), article.ID)

	_, ok := IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Empty(t, audit.records)
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _, _ := newModerationFixture()

	_, err := svc.Reject(context.Background(), adminActor(), articleFor(ownerActor().Business.ID, models.ArticlePending).ID, "")

	validation, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "reason", validation.Field)
}

func TestRejectStoresReason(t *testing.T) {
	svc, articles, audit := newModerationFixture()
	article := articleFor(ownerActor().Business.ID, models.ArticlePending)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	articles.On("UpdateStatusGuarded", mock.Anything, article.ID,
		[]models.ArticleStatus{models.ArticlePending},
		mock.MatchedBy(func(updates map[string]interface{}) bool {
			return updates["status"] == models.ArticleRejected && updates["rejection_notes"] == "konten tidak sesuai"
		})).Return(int64(1), nil)

	result, err := svc.Reject(context.Background(), adminActor(), article.ID, "konten tidak sesuai")

	assert.NoError(t, err)
	assert.Equal(t, models.ArticleRejected, result.Status)
	assert.Equal(t, "konten tidak sesuai", *result.RejectionNotes)
	assert.Equal(t, models.ActionReject, audit.last().action)
}

func TestOwnerCannotEditApprovedArticle(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	owner := ownerActor()
	article := articleFor(owner.Business.ID, models.ArticleApproved)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	newTitle := "Judul Baru"
	_, err := svc.Update(context.Background(), owner, article.ID, models.UpdateArticleRequest{Title: &newTitle})

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestAdminCanEditApprovedArticle(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	article := articleFor(ownerActor().Business.ID, models.ArticleApproved)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)
	articles.On("Update", mock.Anything, article).Return(nil)

	newTitle := "Judul Baru"
	result, err := svc.Update(context.Background(), adminActor(), article.ID, models.UpdateArticleRequest{Title: &newTitle})

	assert.NoError(t, err)
	assert.Equal(t, "Judul Baru", result.Title)
}

func TestOwnerCanOnlyDeleteDrafts(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	owner := ownerActor()
	article := articleFor(owner.Business.ID, models.ArticlePending)

	articles.On("GetByID", mock.Anything, article.ID).Return(article, nil)

	err := svc.Delete(context.Background(), owner, article.ID)

	_, ok := IsForbiddenError(err)
	assert.True(t, ok)
}

func TestCreateAsOwnerPinsOwnBusiness(t *testing.T) {
	svc, articles, audit := newModerationFixture()
	owner := ownerActor()
	stranger := ownerActor()

	articles.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Article) bool {
		return a.BusinessID == owner.Business.ID && a.Status == models.ArticleDraft
	})).Return(nil)

	// The request names someone else's business; it must be ignored.
	result, err := svc.Create(context.Background(), owner, models.CreateArticleRequest{
		Title:      "Menu Baru",
		Content:    "Nasi goreng spesial",
		BusinessID: &stranger.Business.ID,
	})

	assert.NoError(t, err)
	assert.Equal(t, owner.Business.ID, result.BusinessID)
	assert.Equal(t, models.ActionCreate, audit.last().action)
}

func TestCreateWithSubmitFlagStartsPending(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	owner := ownerActor()

	articles.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Create(context.Background(), owner, models.CreateArticleRequest{
		Title:   "Menu Baru",
		Content: "Nasi goreng spesial",
		Submit:  true,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ArticlePending, result.Status)
}

func TestCreateOwnerWithoutBusinessFails(t *testing.T) {
	svc, _, _ := newModerationFixture()
	owner := ownerActor()
	owner.Business = nil

	_, err := svc.Create(context.Background(), owner, models.CreateArticleRequest{
		Title:   "Menu Baru",
		Content: "Nasi goreng spesial",
	})

	assert.ErrorIs(t, err, ErrBusinessNotLinked)
}

func TestCreateAsAdminRequiresBusinessID(t *testing.T) {
	svc, _, _ := newModerationFixture()

	_, err := svc.Create(context.Background(), adminActor(), models.CreateArticleRequest{
		Title:   "Pengumuman Desa",
		Content: "Festival UMKM",
	})

	validation, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "businessId", validation.Field)
}

func TestListScopesOwnerToOwnBusiness(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	owner := ownerActor()

	articles.On("List", mock.Anything, mock.MatchedBy(func(f models.ArticleFilter) bool {
		return f.BusinessID != nil && *f.BusinessID == owner.Business.ID
	})).Return([]models.Article{}, int64(0), nil)

	_, _, err := svc.List(context.Background(), owner, models.ArticleFilter{})

	assert.NoError(t, err)
	articles.AssertExpectations(t)
}

func TestGetMissingArticleIsNotFound(t *testing.T) {
	svc, articles, _ := newModerationFixture()
	article := articleFor(ownerActor().Business.ID, models.ArticleDraft)

	articles.On("GetByID", mock.Anything, article.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), adminActor(), article.ID)

	assert.ErrorIs(t, err, ErrNotFound)
}
