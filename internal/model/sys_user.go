package model

import "time"

// 用户状态常量
const (
	UserStatusActive   = 1 // 正常
	UserStatusDisabled = 2 // 已禁用
)

// SysUser 登录账号
// 身份标识 UserKey 与 Business.OwnerID 一致，作为租户解析的入口
type SysUser struct {
	BaseModel

	// 对外身份标识 (uuid)，JWT 的 subject
	UserKey string `gorm:"size:64;uniqueIndex;not null" json:"user_key"`

	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // 哈希密码

	// 平台级超管标记，独立于商家内角色
	IsPlatformAdmin bool `gorm:"default:false" json:"is_platform_admin"`

	Status      int        `gorm:"default:1;comment:状态 1-正常 2-禁用" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (SysUser) TableName() string { return "sys_users" }
