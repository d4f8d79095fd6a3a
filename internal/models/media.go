package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaFile represents an uploaded image stored through the storage provider.
// The provider write and the metadata insert are not transactional; a failed
// insert can leave an orphaned file on disk (cleaned up out of band).
type MediaFile struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Filename     string    `json:"filename" gorm:"not null"`
	OriginalName string    `json:"originalName" gorm:"not null"`
	MimeType     string    `json:"mimeType" gorm:"not null"`
	Size         int64     `json:"size" gorm:"not null"`
	Path         string    `json:"path" gorm:"not null;uniqueIndex"`

	// Entity association fields (for better querying)
	EntityType string `json:"entityType,omitempty" gorm:"index:idx_media_entity"` // business, product, article, settings
	EntityID   string `json:"entityId,omitempty" gorm:"index:idx_media_entity"`
	MediaType  string `json:"mediaType,omitempty"` // logo, gallery, cover, favicon
	Position   int    `json:"position" gorm:"default:0"`

	UploadedBy uuid.UUID `json:"uploadedBy" gorm:"type:uuid;index"`
	URL        string    `json:"url,omitempty" gorm:"-"`

	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (MediaFile) TableName() string {
	return "media_files"
}
