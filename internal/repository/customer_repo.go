package repository

import (
	"context"

	"gorm.io/gorm"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// CustomerRepository 客户仓储
type CustomerRepository interface {
	TenantRepository[model.Customer]

	Search(ctx context.Context, actor Actor, keyword string, page, pageSize int) ([]model.Customer, int64, error)
}

// ==================== 仓储实现 ====================

type customerRepo struct {
	TenantRepository[model.Customer]
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepo{
		TenantRepository: NewTenantRepository[model.Customer](db),
		db:               db,
	}
}

// Search 按姓名/电话模糊搜索
func (r *customerRepo) Search(ctx context.Context, actor Actor, keyword string, page, pageSize int) ([]model.Customer, int64, error) {
	return r.Fetch(ctx, actor, QueryOptions{
		Page:     page,
		PageSize: pageSize,
		Scope: func(db *gorm.DB) *gorm.DB {
			like := "%" + keyword + "%"
			return db.Where("name LIKE ? OR phone LIKE ?", like, like)
		},
	})
}
