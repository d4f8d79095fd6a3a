package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditAction represents the type of action performed
type AuditAction string

const (
	// Authentication actions
	ActionLogin       AuditAction = "LOGIN"
	ActionLogout      AuditAction = "LOGOUT"
	ActionLoginFailed AuditAction = "LOGIN_FAILED"

	// CRUD actions
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"

	// Moderation workflow actions
	ActionSubmit  AuditAction = "SUBMIT"
	ActionApprove AuditAction = "APPROVE"
	ActionReject  AuditAction = "REJECT"

	// Configuration actions
	ActionSettingChange AuditAction = "SETTING_CHANGE"
	ActionStatusChange  AuditAction = "STATUS_CHANGE"
)

// AuditResource represents the type of resource being audited
type AuditResource string

const (
	ResourceUser     AuditResource = "USER"
	ResourceBusiness AuditResource = "BUSINESS"
	ResourceArticle  AuditResource = "ARTICLE"
	ResourceProduct  AuditResource = "PRODUCT"
	ResourceCategory AuditResource = "CATEGORY"
	ResourceMedia    AuditResource = "MEDIA"
	ResourceSettings AuditResource = "SETTINGS"
	ResourceAuth     AuditResource = "AUTH"
)

// AuditLog represents a single append-only audit trail entry. Entries are
// immutable once created.
type AuditLog struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`

	// Actor info
	UserID   uuid.UUID `json:"userId" gorm:"type:uuid;index"`
	Username string    `json:"username" gorm:"type:varchar(255)"`
	Role     UserRole  `json:"role" gorm:"type:varchar(50)"`

	// Action details
	Action     AuditAction   `json:"action" gorm:"type:varchar(50);not null;index"`
	Resource   AuditResource `json:"resource" gorm:"type:varchar(50);not null;index"`
	ResourceID string        `json:"resourceId" gorm:"type:varchar(255);index"`

	// Additional context
	Description string         `json:"description" gorm:"type:text"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	IPAddress   string         `json:"ipAddress" gorm:"type:varchar(45)"`
	RequestID   string         `json:"requestId" gorm:"type:varchar(100);index"`

	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate hook to set timestamp
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return nil
}

// AuditLogFilter represents filter criteria for searching audit logs
type AuditLogFilter struct {
	UserID     *uuid.UUID
	Action     AuditAction
	Resource   AuditResource
	ResourceID string
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}
