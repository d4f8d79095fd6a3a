package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Setting is a single key-value override for site branding, theming and map
// defaults. Values are stored as JSON so a key can hold a string, number or
// structured blob.
type Setting struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Key       string         `json:"key" gorm:"type:varchar(100);uniqueIndex;not null"`
	Value     datatypes.JSON `json:"value" gorm:"type:jsonb;not null"`
	Group     string         `json:"group" gorm:"type:varchar(50);index"` // branding, theme, maps, general
	UpdatedBy *uuid.UUID     `json:"updatedBy,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (Setting) TableName() string {
	return "settings"
}

// Well-known setting keys used by the public site
const (
	SettingSiteName      = "site_name"
	SettingSiteTagline   = "site_tagline"
	SettingLogoURL       = "logo_url"
	SettingFaviconURL    = "favicon_url"
	SettingPrimaryColor  = "primary_color"
	SettingMapCenterLat  = "map_center_lat"
	SettingMapCenterLng  = "map_center_lng"
	SettingMapZoom       = "map_zoom"
	SettingContactEmail  = "contact_email"
	SettingContactPhone  = "contact_phone"
)

// UpsertSettingRequest represents a set operation on a settings key
type UpsertSettingRequest struct {
	Value datatypes.JSON `json:"value" binding:"required"`
	Group string         `json:"group,omitempty"`
}
