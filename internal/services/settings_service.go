package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/cache"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
)

// SettingsService manages the site-wide key-value settings (branding, theme,
// map defaults). Reads go through the Redis cache; writes invalidate it.
type SettingsService struct {
	txm    repository.TxManager
	repos  *repository.Repositories
	cache  *cache.SettingsCache
	audit  AuditRecorder
	logger *logrus.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(txm repository.TxManager, repos *repository.Repositories, settingsCache *cache.SettingsCache, audit AuditRecorder, logger *logrus.Logger) *SettingsService {
	return &SettingsService{
		txm:    txm,
		repos:  repos,
		cache:  settingsCache,
		audit:  audit,
		logger: logger,
	}
}

// Get returns a setting by key, cache-first
func (s *SettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	if cached := s.cache.Get(ctx, key); cached != nil {
		return cached, nil
	}

	setting, err := s.repos.Settings.GetByKey(ctx, key)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load setting: %w", err)
	}

	s.cache.Set(ctx, setting)
	return setting, nil
}

// GetValue returns a setting's raw value, or the given default when the key
// was never set
func (s *SettingsService) GetValue(ctx context.Context, key string, fallback datatypes.JSON) (datatypes.JSON, error) {
	setting, err := s.Get(ctx, key)
	if err != nil {
		if err == ErrNotFound {
			return fallback, nil
		}
		return nil, err
	}
	return setting.Value, nil
}

// List returns settings, optionally filtered by group
func (s *SettingsService) List(ctx context.Context, group string) ([]models.Setting, error) {
	return s.repos.Settings.List(ctx, group)
}

// Upsert sets a key's value. Admin only.
func (s *SettingsService) Upsert(ctx context.Context, actor Actor, key string, req models.UpsertSettingRequest) (*models.Setting, error) {
	if !actor.IsAdmin() {
		return nil, NewForbiddenError("only village admins change settings")
	}
	if key == "" {
		return nil, NewValidationError("key", "key is required")
	}

	setting := &models.Setting{
		Key:       key,
		Value:     req.Value,
		Group:     req.Group,
		UpdatedBy: &actor.User.ID,
	}

	err := s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Settings.Upsert(ctx, setting); err != nil {
			return fmt.Errorf("failed to upsert setting: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionSettingChange, models.ResourceSettings, key, fmt.Sprintf("set %s", key))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, key)
	return setting, nil
}

// Delete removes a setting so the site falls back to its built-in default.
// Admin only.
func (s *SettingsService) Delete(ctx context.Context, actor Actor, key string) error {
	if !actor.IsAdmin() {
		return NewForbiddenError("only village admins change settings")
	}

	if _, err := s.repos.Settings.GetByKey(ctx, key); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load setting: %w", err)
	}

	err := s.txm.Transaction(ctx, func(r *repository.Repositories) error {
		if err := r.Settings.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete setting: %w", err)
		}
		return s.audit.Record(ctx, r.Audit, actor, models.ActionSettingChange, models.ResourceSettings, key, fmt.Sprintf("cleared %s", key))
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, key)
	return nil
}
