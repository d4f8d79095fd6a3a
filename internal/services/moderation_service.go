package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/events"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// ModerationService drives article CRUD and the moderation workflow:
//
//	draft ──submit──▶ pending ──approve──▶ approved
//	  ▲                  │
//	  │                  └──reject──▶ rejected ──submit──▶ pending
//	  └──(owner create/edit)──┘
//
// Approved has no outgoing transition. Every guard consults the actor's role
// and, for owners, ownership of the article's business. Status transitions
// run as guarded updates inside a transaction together with their audit
// entry, so two concurrent admin decisions on the same pending article cannot
// both win.
type ModerationService struct {
	txm       repository.TxManager
	repos     *repository.Repositories
	audit     AuditRecorder
	publisher *events.Publisher
	logger    *logrus.Logger
}

// NewModerationService creates a new moderation service
func NewModerationService(txm repository.TxManager, repos *repository.Repositories, audit AuditRecorder, publisher *events.Publisher, logger *logrus.Logger) *ModerationService {
	return &ModerationService{
		txm:       txm,
		repos:     repos,
		audit:     audit,
		publisher: publisher,
		logger:    logger,
	}
}

// Get loads one article, enforcing read scope: admins see everything, owners
// only their own
func (s *ModerationService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Article, error) {
	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if !actor.IsAdmin() && !actor.OwnsBusiness(article.BusinessID) {
		return nil, NewForbiddenError("article belongs to another business")
	}
	return article, nil
}

// List lists articles within the actor's scope
func (s *ModerationService) List(ctx context.Context, actor Actor, filter models.ArticleFilter) ([]models.Article, int64, error) {
	if !actor.IsAdmin() {
		if actor.Business == nil {
			return nil, 0, ErrBusinessNotLinked
		}
		filter.BusinessID = &actor.Business.ID
	}
	return s.repos.Articles.List(ctx, filter)
}

// Create creates an article. Admins may target any business; owners are
// pinned to their own and must have one.
func (s *ModerationService) Create(ctx context.Context, actor Actor, req models.CreateArticleRequest) (*models.Article, error) {
	var businessID uuid.UUID
	switch {
	case actor.IsAdmin():
		if req.BusinessID == nil {
			return nil, NewValidationError("businessId", "business is required")
		}
		businessID = *req.BusinessID
	case actor.IsOwner():
		if actor.Business == nil {
			return nil, ErrBusinessNotLinked
		}
		businessID = actor.Business.ID
	default:
		return nil, NewForbiddenError("role may not create articles")
	}

	status := models.ArticleDraft
	if req.Submit {
		status = models.ArticlePending
	}

	article := &models.Article{
		BusinessID: businessID,
		Title:      req.Title,
		Slug:       makeSlug(req.Title),
		Content:    req.Content,
		Status:     status,
	}

	err := s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Articles.Create(ctx, article); err != nil {
			return fmt.Errorf("failed to create article: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionCreate, models.ResourceArticle, article.ID.String(), fmt.Sprintf("created article %q", article.Title))
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"article_id":  article.ID,
		"business_id": businessID,
		"status":      article.Status,
	}).Info("Article created")
	s.publish(ctx, "articles.created", article)
	return article, nil
}

// Update edits article content (never status). Admins edit unconditionally;
// owners only their own articles and never after approval.
func (s *ModerationService) Update(ctx context.Context, actor Actor, id uuid.UUID, req models.UpdateArticleRequest) (*models.Article, error) {
	if actor.IsOwner() && actor.Business == nil {
		return nil, ErrBusinessNotLinked
	}

	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}

	if !actor.IsAdmin() {
		if !actor.OwnsBusiness(article.BusinessID) {
			return nil, NewForbiddenError("article belongs to another business")
		}
		if !article.Status.IsEditableByOwner() {
			return nil, NewForbiddenError("approved articles can no longer be edited by the owner")
		}
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}

	err = s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Articles.Update(ctx, article); err != nil {
			return fmt.Errorf("failed to update article: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionUpdate, models.ResourceArticle, article.ID.String(), fmt.Sprintf("updated article %q", article.Title))
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article. Admins delete unconditionally; owners only
// their own and only while it is still a draft.
func (s *ModerationService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.IsOwner() && actor.Business == nil {
		return ErrBusinessNotLinked
	}

	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load article: %w", err)
	}

	if !actor.IsAdmin() {
		if !actor.OwnsBusiness(article.BusinessID) {
			return NewForbiddenError("article belongs to another business")
		}
		if article.Status != models.ArticleDraft {
			return NewForbiddenError("only draft articles can be deleted by the owner")
		}
	}

	return s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Articles.Delete(ctx, article.ID); err != nil {
			return fmt.Errorf("failed to delete article: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionDelete, models.ResourceArticle, article.ID.String(), fmt.Sprintf("deleted article %q", article.Title))
	})
}

// Submit moves an owner's article into review. Valid only from draft or
// rejected; resubmission clears the previous rejection notes.
func (s *ModerationService) Submit(ctx context.Context, actor Actor, id uuid.UUID) (*models.Article, error) {
	if !actor.IsOwner() {
		return nil, NewForbiddenError("only business owners submit articles for review")
	}
	if actor.Business == nil {
		return nil, ErrBusinessNotLinked
	}

	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if !actor.OwnsBusiness(article.BusinessID) {
		return nil, NewForbiddenError("article belongs to another business")
	}
	if !article.Status.IsSubmittable() {
		return nil, NewInvalidTransitionError("submit", string(article.Status))
	}

	err = s.transition(ctx, actor, article,
		[]models.ArticleStatus{models.ArticleDraft, models.ArticleRejected},
		map[string]interface{}{
			"status":          models.ArticlePending,
			"rejection_notes": nil,
		},
		models.ActionSubmit, fmt.Sprintf("submitted article %q for review", article.Title))
	if err != nil {
		return nil, err
	}

	article.Status = models.ArticlePending
	article.RejectionNotes = nil
	s.publish(ctx, "articles.submitted", article)
	return article, nil
}

// Approve publishes a pending article. Admin only.
func (s *ModerationService) Approve(ctx context.Context, actor Actor, id uuid.UUID) (*models.Article, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins approve articles")
	}

	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article.Status != models.ArticlePending {
		return nil, NewInvalidTransitionError("approve", string(article.Status))
	}

	now := time.Now()
	err = s.transition(ctx, actor, article,
		[]models.ArticleStatus{models.ArticlePending},
		map[string]interface{}{
			"status":      models.ArticleApproved,
			"approved_by": actor.User.ID,
			"approved_at": now,
		},
		models.ActionApprove, fmt.Sprintf("approved article %q", article.Title))
	if err != nil {
		return nil, err
	}

	article.Status = models.ArticleApproved
	article.ApprovedBy = &actor.User.ID
	article.ApprovedAt = &now
	s.publish(ctx, "articles.approved", article)
	return article, nil
}

// Reject sends a pending article back to its owner with a mandatory reason.
// Admin only.
func (s *ModerationService) Reject(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*models.Article, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins reject articles")
	}
	if reason == "" {
		return nil, NewValidationError("reason", "rejection reason is required")
	}

	article, err := s.repos.Articles.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load article: %w", err)
	}
	if article.Status != models.ArticlePending {
		return nil, NewInvalidTransitionError("reject", string(article.Status))
	}

	err = s.transition(ctx, actor, article,
		[]models.ArticleStatus{models.ArticlePending},
		map[string]interface{}{
			"status":          models.ArticleRejected,
			"rejection_notes": reason,
		},
		models.ActionReject, fmt.Sprintf("rejected article %q: %s", article.Title, reason))
	if err != nil {
		return nil, err
	}

	article.Status = models.ArticleRejected
	article.RejectionNotes = &reason
	s.publish(ctx, "articles.rejected", article)
	return article, nil
}

// transition applies a guarded status update plus its audit entry in one
// transaction. The status guard re-checks the expected statuses inside the
// transaction; zero affected rows means a concurrent actor moved the article
// first.
func (s *ModerationService) transition(ctx context.Context, actor Actor, article *models.Article, expected []models.ArticleStatus, updates map[string]interface{}, action models.AuditAction, description string) error {
	return s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		affected, err := r.Articles.UpdateStatusGuarded(ctx, article.ID, expected, updates)
		if err != nil {
			return fmt.Errorf("failed to apply transition: %w", err)
		}
		if affected == 0 {
			return NewInvalidTransitionError(string(action), string(article.Status))
		}
		return s.audit.Record(ctx, r.Audit, actor, action, models.ResourceArticle, article.ID.String(), description)
	})
}

func (s *ModerationService) publish(ctx context.Context, subject string, article *models.Article) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, subject, article); err != nil {
		s.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish article event")
	}
}
