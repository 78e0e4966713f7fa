package model

import "time"

// ==================== 角色常量 ====================

// 商家内角色: owner (店主), admin (管理员), staff (店员)
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// ValidRoles 返回所有合法角色
func ValidRoles() []string {
	return []string{RoleOwner, RoleAdmin, RoleStaff}
}

// IsValidRole 校验角色是否合法
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// ==================== 权限表 ====================

// Permissions 角色权限集
type Permissions struct {
	ManageUsers    bool `json:"manage_users"`
	ManageProducts bool `json:"manage_products"`
	ManageOrders   bool `json:"manage_orders"`
	ViewAnalytics  bool `json:"view_analytics"`
	ChangeSettings bool `json:"change_settings"`
}

// 权限键常量，路由守卫使用
const (
	PermManageUsers    = "manage_users"
	PermManageProducts = "manage_products"
	PermManageOrders   = "manage_orders"
	PermViewAnalytics  = "view_analytics"
	PermChangeSettings = "change_settings"
)

// DefaultPermissions 按角色返回默认权限
// 未知角色/空角色全部为 false
func DefaultPermissions(role string) Permissions {
	switch role {
	case RoleOwner:
		return Permissions{
			ManageUsers:    true,
			ManageProducts: true,
			ManageOrders:   true,
			ViewAnalytics:  true,
			ChangeSettings: true,
		}
	case RoleAdmin:
		return Permissions{
			ManageUsers:    true,
			ManageProducts: true,
			ManageOrders:   true,
			ViewAnalytics:  true,
		}
	case RoleStaff:
		return Permissions{
			ManageProducts: true,
			ManageOrders:   true,
		}
	default:
		return Permissions{}
	}
}

// Has 按权限键查表
func (p Permissions) Has(key string) bool {
	switch key {
	case PermManageUsers:
		return p.ManageUsers
	case PermManageProducts:
		return p.ManageProducts
	case PermManageOrders:
		return p.ManageOrders
	case PermViewAnalytics:
		return p.ViewAnalytics
	case PermChangeSettings:
		return p.ChangeSettings
	default:
		return false
	}
}

// ==================== 商家模型 ====================

// Business 商家资料 (租户)
// 主键 OwnerID 即注册用户的身份标识，一个用户一个商家
type Business struct {
	// 用户身份即租户 ID
	OwnerID string `gorm:"primaryKey;size:64" json:"owner_id"`

	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	Slug        string `gorm:"size:100;uniqueIndex" json:"slug"` // 店铺前台路径
	Description string `gorm:"type:text" json:"description"`
	LogoUrl     string `gorm:"size:255" json:"logo_url"`
	Phone       string `gorm:"size:30" json:"phone"`
	Email       string `gorm:"size:100" json:"email"`
	Currency    string `gorm:"size:10;default:'KES'" json:"currency"`

	// 角色为空时按 owner 处理
	Role string `gorm:"size:20;default:'owner'" json:"role"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Business) TableName() string { return "businesses" }

// EffectiveRole 角色缺省规则: 记录未设置角色时视为 owner
func (b *Business) EffectiveRole() string {
	if b.Role == "" {
		return RoleOwner
	}
	return b.Role
}
