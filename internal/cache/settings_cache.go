package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
)

const (
	settingsKeyPrefix = "umkm:settings:"
	settingsTTL       = 5 * time.Minute
)

// SettingsCache caches settings reads in Redis. All methods degrade to a
// cache miss when Redis is unconfigured or unavailable; callers always fall
// back to the database.
type SettingsCache struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewSettingsCache creates a settings cache; client may be nil
func NewSettingsCache(client *redis.Client, logger *logrus.Logger) *SettingsCache {
	return &SettingsCache{client: client, logger: logger}
}

// Get returns a cached setting or nil on miss
func (c *SettingsCache) Get(ctx context.Context, key string) *models.Setting {
	if c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, settingsKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).WithField("key", key).Warn("Settings cache read failed")
		}
		return nil
	}

	var setting models.Setting
	if err := json.Unmarshal(data, &setting); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Settings cache entry corrupt")
		return nil
	}
	return &setting
}

// Set stores a setting
func (c *SettingsCache) Set(ctx context.Context, setting *models.Setting) {
	if c.client == nil || setting == nil {
		return
	}

	data, err := json.Marshal(setting)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, settingsKeyPrefix+setting.Key, data, settingsTTL).Err(); err != nil {
		c.logger.WithError(err).WithField("key", setting.Key).Warn("Settings cache write failed")
	}
}

// Invalidate drops a cached setting after an upsert or delete
func (c *SettingsCache) Invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, settingsKeyPrefix+key).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Settings cache invalidation failed")
	}
}
