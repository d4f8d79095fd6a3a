package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole represents the role assigned to a platform user
type UserRole string

const (
	RoleVillageAdmin  UserRole = "village_admin"
	RoleBusinessOwner UserRole = "business_owner"
)

// IsValid checks the role against the closed role set
func (r UserRole) IsValid() bool {
	return r == RoleVillageAdmin || r == RoleBusinessOwner
}

// User represents a platform account (village admin back office or UMKM owner portal)
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(50);not null;index"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`

	// Business owned by this user (nil for village admins, at most one for owners)
	Business *Business `json:"business,omitempty" gorm:"foreignKey:OwnerID"`

	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Session represents an issued login session backing a JWT
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	IsActive  bool      `json:"isActive" gorm:"default:true;index"`
	IPAddress string    `json:"ipAddress" gorm:"type:varchar(45)"`
	UserAgent string    `json:"userAgent" gorm:"type:text"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (Session) TableName() string {
	return "sessions"
}

// LoginRequest represents a login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// CreateUserRequest represents an admin request to create a platform account
type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     UserRole `json:"role" binding:"required"`
}

// UpdateUserRequest represents an admin request to update an account
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	IsActive *bool   `json:"isActive,omitempty"`
}
