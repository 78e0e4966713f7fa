package model

import (
	"time"

	"gorm.io/datatypes"
)

// 社媒平台常量
const (
	PlatformInstagram = "instagram"
	PlatformFacebook  = "facebook"
	PlatformTiktok    = "tiktok"
	PlatformWhatsapp  = "whatsapp"
)

// 连接状态常量
const (
	ConnectionStatusConnected = "connected"
	ConnectionStatusFailed    = "failed"
	ConnectionStatusPending   = "pending"
)

// SocialConnection 社媒账号连接
type SocialConnection struct {
	TenantModel

	Platform string `gorm:"size:30;not null;index" json:"platform"`
	Handle   string `gorm:"size:100;not null" json:"handle"`
	Url      string `gorm:"size:255" json:"url"`

	Status        string     `gorm:"size:20;default:'pending'" json:"status"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
	LastError     string     `gorm:"size:255" json:"last_error"`

	// 平台侧自定义配置 (发帖时段、默认话题标签等)
	Settings datatypes.JSON `json:"settings"`
}

func (SocialConnection) TableName() string { return "social_connections" }

// ContentPlan 社媒内容排期
type ContentPlan struct {
	TenantModel

	Title       string     `gorm:"size:255;not null" json:"title"`
	Platform    string     `gorm:"size:30;index" json:"platform"`
	Caption     string     `gorm:"type:text" json:"caption"`
	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at"`

	// draft / scheduled / posted
	Status string `gorm:"size:20;default:'draft'" json:"status"`

	ProductID int64 `gorm:"index" json:"product_id"` // 可关联推广商品
}

func (ContentPlan) TableName() string { return "content_plans" }
