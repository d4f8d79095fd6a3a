package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessStatus represents the lifecycle status of a registered UMKM
type BusinessStatus string

const (
	BusinessActive    BusinessStatus = "active"
	BusinessInactive  BusinessStatus = "inactive"
	BusinessSuspended BusinessStatus = "suspended"
)

// IsValid checks the status against the closed status set
func (s BusinessStatus) IsValid() bool {
	switch s {
	case BusinessActive, BusinessInactive, BusinessSuspended:
		return true
	}
	return false
}

// Business represents a registered micro-enterprise (UMKM) in the village directory
type Business struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Status      BusinessStatus `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`

	// Owner relation is fixed at creation; exactly one owner account per business
	OwnerID    uuid.UUID `json:"ownerId" gorm:"type:uuid;uniqueIndex;not null"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:uuid;not null;index"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	// Contact and location
	Address   string   `json:"address" gorm:"type:text"`
	Phone     string   `json:"phone" gorm:"type:varchar(30)"`
	MapsURL   string   `json:"mapsUrl" gorm:"type:varchar(1000)"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	LogoFileID *uuid.UUID `json:"logoFileId,omitempty" gorm:"type:uuid"`

	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Business) TableName() string {
	return "businesses"
}

// IsActive reports whether the business allows owner portal access
func (b *Business) IsActive() bool {
	return b.Status == BusinessActive
}

// CreateBusinessRequest represents an admin request to register a business
type CreateBusinessRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId" binding:"required"`
	CategoryID  uuid.UUID `json:"categoryId" binding:"required"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	MapsURL     string    `json:"mapsUrl"`
}

// UpdateBusinessRequest represents a business profile update
type UpdateBusinessRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	Address     *string    `json:"address,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	MapsURL     *string    `json:"mapsUrl,omitempty"`
}

// UpdateBusinessStatusRequest represents an admin status transition
type UpdateBusinessStatusRequest struct {
	Status BusinessStatus `json:"status" binding:"required"`
}

// BusinessFilter represents filter criteria for directory listings
type BusinessFilter struct {
	CategoryID *uuid.UUID
	Status     *BusinessStatus
	Search     string
	Page       int
	Limit      int
}
