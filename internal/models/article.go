package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArticleStatus represents the moderation status of an article
type ArticleStatus string

const (
	ArticleDraft    ArticleStatus = "draft"
	ArticlePending  ArticleStatus = "pending"
	ArticleApproved ArticleStatus = "approved"
	ArticleRejected ArticleStatus = "rejected"
)

// IsValid checks the status against the closed status set
func (s ArticleStatus) IsValid() bool {
	switch s {
	case ArticleDraft, ArticlePending, ArticleApproved, ArticleRejected:
		return true
	}
	return false
}

// IsEditableByOwner reports whether the owning business may still edit content.
// Approved articles are frozen for owners.
func (s ArticleStatus) IsEditableByOwner() bool {
	return s == ArticleDraft || s == ArticlePending || s == ArticleRejected
}

// IsSubmittable reports whether the article can be submitted for review
func (s ArticleStatus) IsSubmittable() bool {
	return s == ArticleDraft || s == ArticleRejected
}

// Article represents a news/promo post owned by a business, gated by moderation
type Article struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BusinessID uuid.UUID     `json:"businessId" gorm:"type:uuid;not null;index"`
	Business   *Business     `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	Title      string        `json:"title" gorm:"type:varchar(255);not null"`
	Slug       string        `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Content    string        `json:"content" gorm:"type:text;not null"`
	Status     ArticleStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`

	// Moderation outcome fields
	RejectionNotes *string    `json:"rejectionNotes,omitempty" gorm:"type:text"`
	ApprovedBy     *uuid.UUID `json:"approvedBy,omitempty" gorm:"type:uuid"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`

	CoverFileID *uuid.UUID `json:"coverFileId,omitempty" gorm:"type:uuid"`

	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Article) TableName() string {
	return "articles"
}

// CreateArticleRequest represents a request to create an article
type CreateArticleRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	// Admins may target any business; owners are pinned to their own
	BusinessID *uuid.UUID `json:"businessId,omitempty"`
	// When true the article is submitted for review immediately instead of
	// staying in draft
	Submit bool `json:"submit,omitempty"`
}

// UpdateArticleRequest represents a content edit (not a status transition)
type UpdateArticleRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// RejectArticleRequest carries the mandatory rejection reason
type RejectArticleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ArticleFilter represents filter criteria for article listings
type ArticleFilter struct {
	BusinessID *uuid.UUID
	Status     *ArticleStatus
	Search     string
	Page       int
	Limit      int
}
