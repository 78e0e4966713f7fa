package dto

// CreateCustomerRequest 新建客户
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Phone string `json:"phone" binding:"max=32"`
	Email string `json:"email" binding:"omitempty,email"`
	Note  string `json:"note"`
}

// UpdateCustomerRequest 更新客户
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
	Note  *string `json:"note"`
}

// CustomerListQuery 客户列表查询参数
type CustomerListQuery struct {
	Keyword  string `form:"keyword"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}
