package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

type contextKey string

const (
	ctxKeyRequestID contextKey = "request_id"
	ctxKeyClientIP  contextKey = "client_ip"
)

// WithRequestMeta attaches request correlation data used by audit entries
func WithRequestMeta(ctx context.Context, requestID, clientIP string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyRequestID, requestID)
	return context.WithValue(ctx, ctxKeyClientIP, clientIP)
}

func requestMeta(ctx context.Context) (requestID, clientIP string) {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		requestID = v
	}
	if v, ok := ctx.Value(ctxKeyClientIP).(string); ok {
		clientIP = v
	}
	return requestID, clientIP
}

// AuditRecorder appends audit entries. It is injected everywhere a mutation
// happens so tests can substitute it; it is never a package global.
type AuditRecorder interface {
	Record(ctx context.Context, repo repository.AuditRepository, actor Actor, action models.AuditAction, resource models.AuditResource, resourceID, description string) error
}

// AuditService is the gorm-backed audit recorder. Record is called with the
// repository bound to the enclosing transaction so the entry commits together
// with the mutation it describes.
type AuditService struct {
	repos  *repository.Repositories
	logger *logrus.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repos *repository.Repositories, logger *logrus.Logger) *AuditService {
	return &AuditService{repos: repos, logger: logger}
}

// Record appends one audit entry through the given (possibly transactional)
// audit repository
func (s *AuditService) Record(ctx context.Context, repo repository.AuditRepository, actor Actor, action models.AuditAction, resource models.AuditResource, resourceID, description string) error {
	requestID, clientIP := requestMeta(ctx)

	entry := &models.AuditLog{
		Action:      action,
		Resource:    resource,
		ResourceID:  resourceID,
		Description: description,
		RequestID:   requestID,
		IPAddress:   clientIP,
	}
	if actor.User != nil {
		entry.UserID = actor.User.ID
		entry.Username = actor.User.Name
		entry.Role = actor.User.Role
	}

	if err := repo.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"resource":    resource,
			"resource_id": resourceID,
		}).Error("Failed to append audit entry")
		return err
	}
	return nil
}

// List searches the audit trail (admin back office)
func (s *AuditService) List(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, int64, error) {
	return s.repos.Audit.List(ctx, filter)
}

// ResourceHistory returns the audit history of one resource
func (s *AuditService) ResourceHistory(ctx context.Context, resource models.AuditResource, resourceID string) ([]models.AuditLog, error) {
	return s.repos.Audit.GetResourceHistory(ctx, resource, resourceID)
}
