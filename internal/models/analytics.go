package models

import (
	"time"

	"github.com/google/uuid"
)

// PageViewTarget represents the kind of page a view counter tracks
type PageViewTarget string

const (
	ViewTargetHome     PageViewTarget = "home"
	ViewTargetBusiness PageViewTarget = "business"
	ViewTargetArticle  PageViewTarget = "article"
	ViewTargetProduct  PageViewTarget = "product"
)

// PageView is a daily view counter bucket per target. One row per
// (target_type, target_id, day).
type PageView struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TargetType PageViewTarget `json:"targetType" gorm:"type:varchar(30);not null;uniqueIndex:idx_page_views_bucket"`
	TargetID   string         `json:"targetId" gorm:"type:varchar(255);not null;uniqueIndex:idx_page_views_bucket"`
	Day        time.Time      `json:"day" gorm:"type:date;not null;uniqueIndex:idx_page_views_bucket"`
	Count      int64          `json:"count" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (PageView) TableName() string {
	return "page_views"
}

// ViewStats is an aggregated view report for the admin dashboard
type ViewStats struct {
	TotalViews  int64            `json:"totalViews"`
	ByDay       []DailyViewCount `json:"byDay"`
	TopTargets  []TargetViews    `json:"topTargets"`
	TotalClicks int64            `json:"totalClicks"`
}

// DailyViewCount is a per-day total
type DailyViewCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// TargetViews is a per-target total
type TargetViews struct {
	TargetType PageViewTarget `json:"targetType"`
	TargetID   string         `json:"targetId"`
	Count      int64          `json:"count"`
}
