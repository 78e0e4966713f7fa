package model

// TenantContext 会话解析出的租户身份
// 每个有效会话一份，登出即清除；路由守卫和数据访问层都只认它
type TenantContext struct {
	// 当前作用的租户 ID (商家 OwnerID)；管理员切换租户后指向被切换的商家
	TenantID string `json:"tenant_id"`

	DisplayName string `json:"display_name"`

	// 商家内角色，记录未设置时解析阶段已补为 owner
	Role string `json:"role"`

	// 角色为 owner/admin，或平台超管身份
	IsAdmin bool `json:"is_admin"`
}

// Permissions 当前角色的权限集
func (tc *TenantContext) Permissions() Permissions {
	if tc == nil {
		return Permissions{}
	}
	return DefaultPermissions(tc.Role)
}

// HasPermission 按权限键查当前角色权限表
// 路由守卫的唯一权限判定入口
func (tc *TenantContext) HasPermission(key string) bool {
	return tc.Permissions().Has(key)
}
