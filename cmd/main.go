package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/auth"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/cache"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/config"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/events"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/handlers"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/middleware"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/scheduler"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})
	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		logger.SetLevel(level)
	} else if cfg.IsProduction() {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Connect to PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis (optional; settings reads fall back to the database)
	redisClient := initRedis(cfg, logger)
	defer func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}()

	// Initialize NATS publisher (optional)
	var publisher *events.Publisher
	if cfg.NATS.Enabled {
		publisher, err = events.NewPublisher(events.Config{
			URL:           cfg.NATS.URL,
			MaxReconnects: cfg.NATS.MaxReconnects,
			ReconnectWait: time.Duration(cfg.NATS.ReconnectWait) * time.Second,
		}, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to NATS, domain events disabled")
			publisher = nil
		} else {
			logger.Info("NATS publisher initialized")
		}
	}
	defer func() {
		if publisher != nil {
			publisher.Close()
		}
	}()

	// Initialize upload storage
	provider, err := storage.NewLocalProvider(cfg.Storage.BasePath, logger)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Wire repositories and services
	repos := repository.NewRepositories(db)
	txm := repository.NewTxManager(db)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	settingsCache := cache.NewSettingsCache(redisClient, logger)

	accessService := services.NewAccessService(repos.Businesses, logger)
	auditService := services.NewAuditService(repos, logger)
	authService := services.NewAuthService(repos, txm, accessService, jwtService, auditService, logger)
	userService := services.NewUserService(txm, repos, auditService, logger)
	businessService := services.NewBusinessService(txm, repos, auditService, publisher, logger)
	moderationService := services.NewModerationService(txm, repos, auditService, publisher, logger)
	productService := services.NewProductService(txm, repos, auditService, logger)
	categoryService := services.NewCategoryService(txm, repos, auditService, logger)
	mediaService := services.NewMediaService(repos, provider, auditService, cfg.Storage.MaxUploadSize, logger)
	settingsService := services.NewSettingsService(txm, repos, settingsCache, auditService, logger)
	analyticsService := services.NewAnalyticsService(repos, logger)

	// Start the analytics retention scheduler
	cleanupScheduler := scheduler.NewCleanupScheduler(analyticsService, cfg.App.AnalyticsRetentionDays, logger)
	if err := cleanupScheduler.Start(); err != nil {
		logger.WithError(err).Warn("Failed to start cleanup scheduler (continuing without scheduled cleanup)")
	}
	defer cleanupScheduler.Stop()

	// Wire handlers
	authHandlers := handlers.NewAuthHandlers(authService, logger)
	userHandlers := handlers.NewUserHandlers(userService, logger)
	businessHandlers := handlers.NewBusinessHandlers(businessService, logger)
	articleHandlers := handlers.NewArticleHandlers(moderationService, logger)
	productHandlers := handlers.NewProductHandlers(productService, logger)
	categoryHandlers := handlers.NewCategoryHandlers(categoryService, logger)
	mediaHandlers := handlers.NewMediaHandlers(mediaService, logger)
	settingsHandlers := handlers.NewSettingsHandlers(settingsService, logger)
	auditHandlers := handlers.NewAuditHandlers(auditService, logger)
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsService, logger)
	publicHandlers := handlers.NewPublicHandlers(repos, productService, analyticsService, logger)

	router := setupRouter(cfg, logger, jwtService, authService, routerHandlers{
		auth:      authHandlers,
		users:     userHandlers,
		business:  businessHandlers,
		articles:  articleHandlers,
		products:  productHandlers,
		category:  categoryHandlers,
		media:     mediaHandlers,
		settings:  settingsHandlers,
		audit:     auditHandlers,
		analytics: analyticsHandlers,
		public:    publicHandlers,
	})

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down UMKM directory service...")

		cleanupScheduler.Stop()
		if publisher != nil {
			publisher.Close()
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}

		log.Println("UMKM directory service stopped")
		os.Exit(0)
	}()

	log.Printf("Starting UMKM directory service on %s", cfg.GetServerAddress())
	if err := router.Run(cfg.GetServerAddress()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Category{},
		&models.Business{},
		&models.Article{},
		&models.Product{},
		&models.MarketplaceLink{},
		&models.MediaFile{},
		&models.Setting{},
		&models.AuditLog{},
		&models.PageView{},
	)
}

// initRedis initializes the Redis client; nil means cache-off
func initRedis(cfg *config.Config, logger *logrus.Logger) *redis.Client {
	if cfg.Redis.URL == "" {
		logger.Warn("Redis URL not configured, settings cache disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.WithError(err).Warn("Failed to parse Redis URL, settings cache disabled")
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Failed to connect to Redis, settings cache disabled")
		return nil
	}

	logger.Info("Redis connection established")
	return client
}

type routerHandlers struct {
	auth      *handlers.AuthHandlers
	users     *handlers.UserHandlers
	business  *handlers.BusinessHandlers
	articles  *handlers.ArticleHandlers
	products  *handlers.ProductHandlers
	category  *handlers.CategoryHandlers
	media     *handlers.MediaHandlers
	settings  *handlers.SettingsHandlers
	audit     *handlers.AuditHandlers
	analytics *handlers.AnalyticsHandlers
	public    *handlers.PublicHandlers
}

// setupRouter configures the Gin router with middleware and routes
func setupRouter(cfg *config.Config, logger *logrus.Logger, jwtService *auth.JWTService, authService *services.AuthService, h routerHandlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SetupCORS(cfg.App.CORSOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "umkm-directory"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ready", "service": "umkm-directory"})
	})

	api := router.Group("/api/v1")

	// Auth
	api.POST("/auth/login", h.auth.Login)
	authed := api.Group("")
	authed.Use(middleware.AuthRequired(jwtService, authService, logger))
	authed.POST("/auth/logout", h.auth.Logout)
	authed.GET("/auth/me", h.auth.Me)

	// Public storefront: no auth, active/approved content only
	public := api.Group("/public")
	{
		public.GET("/home", h.public.Home)
		public.GET("/businesses", h.public.ListBusinesses)
		public.GET("/businesses/:slug", h.public.GetBusiness)
		public.GET("/businesses/:slug/products", h.public.ListBusinessProducts)
		public.GET("/articles", h.public.ListArticles)
		public.GET("/articles/:slug", h.public.GetArticle)
		public.POST("/links/:id/click", h.public.TrackLinkClick)
	}
	api.GET("/categories", h.category.List)
	api.GET("/settings", h.settings.List)
	api.GET("/settings/:key", h.settings.Get)
	api.GET("/media/:id", h.media.Download)
	api.GET("/media", h.media.ListByEntity)

	// Admin back office
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtService, authService, logger))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", h.users.List)
		admin.POST("/users", h.users.Create)
		admin.GET("/users/:id", h.users.Get)
		admin.PUT("/users/:id", h.users.Update)
		admin.DELETE("/users/:id", h.users.Delete)

		admin.GET("/businesses", h.business.List)
		admin.POST("/businesses", h.business.Create)
		admin.GET("/businesses/:id", h.business.Get)
		admin.PUT("/businesses/:id", h.business.Update)
		admin.PATCH("/businesses/:id/status", h.business.UpdateStatus)
		admin.DELETE("/businesses/:id", h.business.Delete)

		admin.POST("/categories", h.category.Create)
		admin.PUT("/categories/:id", h.category.Update)
		admin.DELETE("/categories/:id", h.category.Delete)

		admin.GET("/articles", h.articles.List)
		admin.POST("/articles", h.articles.Create)
		admin.GET("/articles/:id", h.articles.Get)
		admin.PUT("/articles/:id", h.articles.Update)
		admin.DELETE("/articles/:id", h.articles.Delete)
		admin.POST("/articles/:id/approve", h.articles.Approve)
		admin.POST("/articles/:id/reject", h.articles.Reject)

		admin.GET("/products", h.products.List)
		admin.POST("/products", h.products.Create)
		admin.GET("/products/:id", h.products.Get)
		admin.PUT("/products/:id", h.products.Update)
		admin.PUT("/products/:id/links", h.products.SetLinks)
		admin.DELETE("/products/:id", h.products.Delete)

		admin.POST("/media", h.media.Upload)
		admin.DELETE("/media/:id", h.media.Delete)

		admin.PUT("/settings/:key", h.settings.Upsert)
		admin.DELETE("/settings/:key", h.settings.Delete)

		admin.GET("/audit-logs", h.audit.List)
		admin.GET("/audit-logs/:resource/:id", h.audit.ResourceHistory)

		admin.GET("/analytics", h.analytics.Stats)
	}

	// Owner portal: auth plus the activation gate inside AuthRequired
	umkm := api.Group("/umkm")
	umkm.Use(middleware.AuthRequired(jwtService, authService, logger))
	{
		umkm.GET("/business", h.business.GetOwn)
		umkm.PUT("/business", h.business.UpdateOwn)

		umkm.GET("/articles", h.articles.List)
		umkm.POST("/articles", h.articles.Create)
		umkm.GET("/articles/:id", h.articles.Get)
		umkm.PUT("/articles/:id", h.articles.Update)
		umkm.DELETE("/articles/:id", h.articles.Delete)
		umkm.POST("/articles/:id/submit", h.articles.Submit)

		umkm.GET("/products", h.products.List)
		umkm.POST("/products", h.products.Create)
		umkm.GET("/products/:id", h.products.Get)
		umkm.PUT("/products/:id", h.products.Update)
		umkm.PUT("/products/:id/links", h.products.SetLinks)
		umkm.DELETE("/products/:id", h.products.Delete)

		umkm.POST("/media", h.media.Upload)
		umkm.DELETE("/media/:id", h.media.Delete)
	}

	return router
}
