package repository

import (
	"context"

	"gorm.io/gorm"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储
// 租户 CRUD 由泛型基座提供，这里只补充商品特有的查询
type ProductRepository interface {
	TenantRepository[model.Product]

	SearchByName(ctx context.Context, actor Actor, keyword string, page, pageSize int) ([]model.Product, int64, error)
	ListLowStock(ctx context.Context, businessID string) ([]model.Product, error)
	ListActiveByBusiness(ctx context.Context, businessID string, page, pageSize int) ([]model.Product, int64, error)
	AdjustStock(ctx context.Context, id int64, delta int) error
	InventoryStats(ctx context.Context, businessID string) (*InventoryStats, error)
}

// InventoryStats 库存统计
// 金额为最小货币单位 (分)
type InventoryStats struct {
	TotalProducts    int64 `json:"total_products"`
	ActiveProducts   int64 `json:"active_products"`
	LowStockCount    int64 `json:"low_stock_count"`
	InventoryValue   int64 `json:"inventory_value"`   // Σ cost × stock
	PotentialRevenue int64 `json:"potential_revenue"` // Σ price × stock
}

// ==================== 仓储实现 ====================

type productRepo struct {
	TenantRepository[model.Product]
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{
		TenantRepository: NewTenantRepository[model.Product](db),
		db:               db,
	}
}

func (r *productRepo) SearchByName(ctx context.Context, actor Actor, keyword string, page, pageSize int) ([]model.Product, int64, error) {
	return r.Fetch(ctx, actor, QueryOptions{
		Page:     page,
		PageSize: pageSize,
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("name LIKE ?", "%"+keyword+"%")
		},
	})
}

// ListLowStock 低库存商品 (定时巡检用，按商家直查，不走 Actor)
func (r *productRepo) ListLowStock(ctx context.Context, businessID string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND state = ? AND stock < low_stock_threshold", businessID, model.ProductStateActive).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

// ListActiveByBusiness 店铺前台商品列表 (公开访问，无 Actor)
func (r *productRepo) ListActiveByBusiness(ctx context.Context, businessID string, page, pageSize int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("business_id = ? AND state = ?", businessID, model.ProductStateActive)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&products).Error

	return products, total, err
}

// AdjustStock 原子增减库存，下单扣减时防止负库存
func (r *productRepo) AdjustStock(ctx context.Context, id int64, delta int) error {
	query := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}

	result := query.Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) InventoryStats(ctx context.Context, businessID string) (*InventoryStats, error) {
	stats := &InventoryStats{}

	base := r.db.WithContext(ctx).Model(&model.Product{}).Where("business_id = ?", businessID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("state = ?", model.ProductStateActive).
		Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("state = ? AND stock < low_stock_threshold", model.ProductStateActive).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	type sums struct {
		InventoryValue   int64
		PotentialRevenue int64
	}
	var s sums
	err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(cost_amount * stock), 0) as inventory_value, COALESCE(SUM(price_amount * stock), 0) as potential_revenue").
		Scan(&s).Error
	if err != nil {
		return nil, err
	}

	stats.InventoryValue = s.InventoryValue
	stats.PotentialRevenue = s.PotentialRevenue
	return stats, nil
}
