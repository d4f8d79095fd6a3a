package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// MediaService handles image uploads for businesses, products, articles and
// site branding. Bytes go through the storage provider; metadata lives in the
// database.
type MediaService struct {
	repos    *repository.Repositories
	provider storage.Provider
	audit    AuditRecorder
	maxSize  int64
	logger   *logrus.Logger
}

// UploadRequest carries an incoming file and its association
type UploadRequest struct {
	Content      io.Reader
	OriginalName string
	MimeType     string
	Size         int64
	EntityType   string
	EntityID     string
	MediaType    string
	Position     int
}

// NewMediaService creates a new media service
func NewMediaService(repos *repository.Repositories, provider storage.Provider, audit AuditRecorder, maxSizeBytes int64, logger *logrus.Logger) *MediaService {
	return &MediaService{
		repos:    repos,
		provider: provider,
		audit:    audit,
		maxSize:  maxSizeBytes,
		logger:   logger,
	}
}

// Upload validates, stores and registers an uploaded image. The entity
// association is descriptive metadata for gallery queries; the uploader is
// recorded and non-admins may only delete their own uploads.
func (s *MediaService) Upload(ctx context.Context, actor Actor, req UploadRequest) (*models.MediaFile, error) {
	if !allowedImageTypes[req.MimeType] {
		return nil, NewValidationError("file", fmt.Sprintf("unsupported content type %s", req.MimeType))
	}
	if s.maxSize > 0 && req.Size > s.maxSize {
		return nil, NewValidationError("file", fmt.Sprintf("file exceeds the %d byte limit", s.maxSize))
	}

	ext := strings.ToLower(filepath.Ext(req.OriginalName))
	filename := uuid.New().String() + ext
	path := fmt.Sprintf("%s/%s/%s", time.Now().Format("2006/01"), req.EntityType, filename)

	if err := s.provider.Store(ctx, path, req.Content); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	file := &models.MediaFile{
		Filename:     filename,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		Path:         path,
		EntityType:   req.EntityType,
		EntityID:     req.EntityID,
		MediaType:    req.MediaType,
		Position:     req.Position,
		UploadedBy:   actor.User.ID,
	}

	if err := s.repos.Media.Create(ctx, file); err != nil {
		// Best effort: don't leave the stored bytes behind when the metadata
		// insert fails.
		if delErr := s.provider.Delete(ctx, path); delErr != nil {
			s.logger.WithError(delErr).WithField("path", path).Error("Failed to clean up orphaned upload")
		}
		return nil, fmt.Errorf("failed to register upload: %w", err)
	}

	if err := s.audit.Record(ctx, s.repos.Audit, actor, models.ActionCreate, models.ResourceMedia, file.ID.String(), fmt.Sprintf("uploaded %s for %s %s", req.MediaType, req.EntityType, req.EntityID)); err != nil {
		s.logger.WithError(err).Warn("Failed to audit upload")
	}

	return file, nil
}

// Get loads upload metadata
func (s *MediaService) Get(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	file, err := s.repos.Media.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load media file: %w", err)
	}
	return file, nil
}

// Open streams a stored file's bytes
func (s *MediaService) Open(ctx context.Context, id uuid.UUID) (*models.MediaFile, io.ReadCloser, error) {
	file, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.provider.Open(ctx, file.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return file, reader, nil
}

// ListByEntity lists uploads attached to an entity, gallery-ordered
func (s *MediaService) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.MediaFile, error) {
	return s.repos.Media.ListByEntity(ctx, entityType, entityID)
}

// Delete removes an upload. The metadata row goes first; losing the stored
// bytes afterwards only orphans a file, never dangles a reference.
func (s *MediaService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	file, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && file.UploadedBy != actor.User.ID {
		return NewForbiddenError("upload belongs to another user")
	}

	if err := s.repos.Media.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("failed to delete media record: %w", err)
	}
	if err := s.provider.Delete(ctx, file.Path); err != nil {
		s.logger.WithError(err).WithField("path", file.Path).Error("Failed to delete stored file")
	}

	if err := s.audit.Record(ctx, s.repos.Audit, actor, models.ActionDelete, models.ResourceMedia, file.ID.String(), fmt.Sprintf("deleted upload %s", file.OriginalName)); err != nil {
		s.logger.WithError(err).Warn("Failed to audit media deletion")
	}
	return nil
}
