package repository

import (
	"context"

	"gorm.io/gorm"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// OrderRepository 订单仓储
type OrderRepository interface {
	TenantRepository[model.Order]

	// CreateWithItems 订单与订单行在同一事务内落库
	CreateWithItems(ctx context.Context, actor Actor, order *model.Order) error
	// MarkPaid 置为已付款并累计客户消费，同一事务内完成
	MarkPaid(ctx context.Context, actor Actor, id int64, customerID int64, amount int64) error
	GetWithItems(ctx context.Context, actor Actor, id int64) (*model.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*model.Order, error)
	ListByStatus(ctx context.Context, actor Actor, status string, page, pageSize int) ([]model.Order, int64, error)
	RevenueByStatus(ctx context.Context, businessID string) (map[string]int64, error)
	CountByStatus(ctx context.Context, businessID string) (map[string]int64, error)
}

// ==================== 仓储实现 ====================

type orderRepo struct {
	TenantRepository[model.Order]
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{
		TenantRepository: NewTenantRepository[model.Order](db),
		db:               db,
	}
}

func (r *orderRepo) CreateWithItems(ctx context.Context, actor Actor, order *model.Order) error {
	if actor.TenantID == "" {
		return ErrNotAuthenticated
	}
	order.SetBusinessID(actor.TenantID)

	// Items 随主表一起 Create，gorm 自动回填 OrderID
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// MarkPaid 状态写入与消费累计任一失败都整体回滚
func (r *orderRepo) MarkPaid(ctx context.Context, actor Actor, id int64, customerID int64, amount int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.TenantRepository.WithTx(tx).Update(ctx, actor, id, map[string]interface{}{
			"status": model.OrderStatusPaid,
		}); err != nil {
			return err
		}
		if customerID <= 0 {
			return nil
		}
		return tx.Model(&model.Customer{}).
			Where("id = ?", customerID).
			Updates(map[string]interface{}{
				"total_spent": gorm.Expr("total_spent + ?", amount),
				"order_count": gorm.Expr("order_count + 1"),
			}).Error
	})
}

func (r *orderRepo) GetWithItems(ctx context.Context, actor Actor, id int64) (*model.Order, error) {
	order, err := r.GetByID(ctx, actor, id)
	if err != nil || order == nil {
		return order, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("id ASC").
		Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// GetByOrderNo 按订单号查 (前台订单查询，公开访问)
func (r *orderRepo) GetByOrderNo(ctx context.Context, orderNo string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_no = ?", orderNo).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByStatus(ctx context.Context, actor Actor, status string, page, pageSize int) ([]model.Order, int64, error) {
	opts := QueryOptions{Page: page, PageSize: pageSize}
	if status != "" {
		opts.Filters = map[string]interface{}{"status": status}
	}
	return r.Fetch(ctx, actor, opts)
}

func (r *orderRepo) RevenueByStatus(ctx context.Context, businessID string) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, COALESCE(SUM(total_amount), 0) as total").
		Where("business_id = ?", businessID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	revenue := make(map[string]int64)
	for _, r := range rows {
		revenue[r.Status] = r.Total
	}
	return revenue, nil
}

func (r *orderRepo) CountByStatus(ctx context.Context, businessID string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Where("business_id = ?", businessID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
