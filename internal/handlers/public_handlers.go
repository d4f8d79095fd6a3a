package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/repository"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// PublicHandlers serves the unauthenticated village storefront: the business
// directory, approved articles and marketplace redirects. Only active
// businesses and approved articles are ever visible here.
type PublicHandlers struct {
	repos     *repository.Repositories
	products  *services.ProductService
	analytics *services.AnalyticsService
	logger    *logrus.Logger
}

// NewPublicHandlers creates new public handlers
func NewPublicHandlers(repos *repository.Repositories, products *services.ProductService, analytics *services.AnalyticsService, logger *logrus.Logger) *PublicHandlers {
	return &PublicHandlers{
		repos:     repos,
		products:  products,
		analytics: analytics,
		logger:    logger,
	}
}

// Home handles GET /api/v1/public/home: counts a homepage view
func (h *PublicHandlers) Home(c *gin.Context) {
	h.analytics.TrackView(c.Request.Context(), models.ViewTargetHome, "home")
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ListBusinesses handles GET /api/v1/public/businesses
func (h *PublicHandlers) ListBusinesses(c *gin.Context) {
	active := models.BusinessActive
	filter := models.BusinessFilter{
		Search: c.Query("search"),
		Status: &active,
	}
	filter.Page, filter.Limit = parsePagination(c)

	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
			return
		}
		filter.CategoryID = &id
	}

	businesses, total, err := h.repos.Businesses.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, businesses, total, filter.Page, filter.Limit)
}

// GetBusiness handles GET /api/v1/public/businesses/:slug and counts a view
func (h *PublicHandlers) GetBusiness(c *gin.Context) {
	business, err := h.repos.Businesses.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || !business.IsActive() {
		c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
		return
	}

	h.analytics.TrackView(c.Request.Context(), models.ViewTargetBusiness, business.ID.String())
	c.JSON(http.StatusOK, business)
}

// ListBusinessProducts handles GET /api/v1/public/businesses/:slug/products
func (h *PublicHandlers) ListBusinessProducts(c *gin.Context) {
	business, err := h.repos.Businesses.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || !business.IsActive() {
		c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
		return
	}

	filter := models.ProductFilter{BusinessID: &business.ID}
	filter.Page, filter.Limit = parsePagination(c)

	products, total, err := h.repos.Products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, total, filter.Page, filter.Limit)
}

// ListArticles handles GET /api/v1/public/articles: approved only
func (h *PublicHandlers) ListArticles(c *gin.Context) {
	approved := models.ArticleApproved
	filter := models.ArticleFilter{
		Search: c.Query("search"),
		Status: &approved,
	}
	filter.Page, filter.Limit = parsePagination(c)

	if raw := c.Query("businessId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid businessId"})
			return
		}
		filter.BusinessID = &id
	}

	articles, total, err := h.repos.Articles.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, articles, total, filter.Page, filter.Limit)
}

// GetArticle handles GET /api/v1/public/articles/:slug. Anything not approved
// is a 404 here, whatever its actual status.
func (h *PublicHandlers) GetArticle(c *gin.Context) {
	article, err := h.repos.Articles.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil || article.Status != models.ArticleApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	h.analytics.TrackView(c.Request.Context(), models.ViewTargetArticle, article.ID.String())
	c.JSON(http.StatusOK, article)
}

// TrackLinkClick handles POST /api/v1/public/links/:id/click and returns the
// marketplace URL to redirect to
func (h *PublicHandlers) TrackLinkClick(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	link, err := h.repos.Products.GetLink(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return
	}

	if err := h.products.TrackLinkClick(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).WithField("link_id", id).Warn("Failed to count marketplace click")
	}
	c.JSON(http.StatusOK, gin.H{"url": link.URL})
}
