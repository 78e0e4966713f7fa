package dto

// UpdateBusinessRequest 商家资料更新
type UpdateBusinessRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Currency    *string `json:"currency" binding:"omitempty,max=10"`
	LogoBase64  string  `json:"logo_base64"`
}

// BusinessListQuery 商家列表查询参数 (平台管理员)
type BusinessListQuery struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

// SetTenantRequest 平台管理员切换当前租户
// tenant_id 为空表示回到平台视角
type SetTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

// SetRoleRequest 调整商家账号角色
type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=owner admin staff"`
}

// SetActiveRequest 商家启停
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
