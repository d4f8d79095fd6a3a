package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item listed under a business
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BusinessID  uuid.UUID `json:"businessId" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	// Price in Indonesian rupiah, whole units
	Price       int64      `json:"price" gorm:"not null;default:0"`
	IsAvailable bool       `json:"isAvailable" gorm:"default:true"`
	ImageFileID *uuid.UUID `json:"imageFileId,omitempty" gorm:"type:uuid"`

	MarketplaceLinks []MarketplaceLink `json:"marketplaceLinks,omitempty" gorm:"foreignKey:ProductID"`

	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// MarketplaceLink points a product at an external marketplace listing.
// Clicks is incremented from the public surface.
type MarketplaceLink struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID   uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Marketplace string    `json:"marketplace" gorm:"type:varchar(50);not null"`
	URL         string    `json:"url" gorm:"type:varchar(1000);not null"`
	Clicks      int64     `json:"clicks" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (MarketplaceLink) TableName() string {
	return "marketplace_links"
}

// CreateProductRequest represents a request to list a product
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	// Admins may target any business; owners are pinned to their own
	BusinessID       *uuid.UUID               `json:"businessId,omitempty"`
	MarketplaceLinks []MarketplaceLinkRequest `json:"marketplaceLinks,omitempty"`
}

// UpdateProductRequest represents a product update
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" binding:"omitempty,min=0"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

// MarketplaceLinkRequest represents a marketplace link on create/update
type MarketplaceLinkRequest struct {
	Marketplace string `json:"marketplace" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
}

// ProductFilter represents filter criteria for product listings
type ProductFilter struct {
	BusinessID *uuid.UUID
	Search     string
	Page       int
	Limit      int
}
