package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles all repositories bound to a single gorm handle. Inside
// a transaction every repository in the bundle shares the same tx, which is
// what guarantees audit entries commit together with the mutation they
// describe.
type Repositories struct {
	Users      UserRepository
	Sessions   SessionRepository
	Businesses BusinessRepository
	Articles   ArticleRepository
	Products   ProductRepository
	Categories CategoryRepository
	Media      MediaRepository
	Settings   SettingsRepository
	Audit      AuditRepository
	Analytics  AnalyticsRepository
}

// NewRepositories creates a repository bundle over a gorm handle
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(db),
		Sessions:   NewSessionRepository(db),
		Businesses: NewBusinessRepository(db),
		Articles:   NewArticleRepository(db),
		Products:   NewProductRepository(db),
		Categories: NewCategoryRepository(db),
		Media:      NewMediaRepository(db),
		Settings:   NewSettingsRepository(db),
		Audit:      NewAuditRepository(db),
		Analytics:  NewAnalyticsRepository(db),
	}
}

// TxManager runs a function against a transactional repository bundle
type TxManager interface {
	Transaction(ctx context.Context, fn func(r *Repositories) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a gorm-backed transaction manager
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Transaction(ctx context.Context, fn func(r *Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
