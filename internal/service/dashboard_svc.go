package service

import (
	"context"

	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
)

// ==================== 看板服务 ====================

// DashboardStats 运营总览
// 所有金额为最小货币单位 (分)
type DashboardStats struct {
	Inventory *repository.InventoryStats `json:"inventory"`

	// 整体毛利率 (0~1)，按库存口径估算
	ProfitMargin float64 `json:"profit_margin"`

	TotalOrders   int64            `json:"total_orders"`
	PendingOrders int64            `json:"pending_orders"`
	OrdersByState map[string]int64 `json:"orders_by_state"`

	// 已支付及之后状态的收入合计
	TotalRevenue    int64            `json:"total_revenue"`
	RevenueByState  map[string]int64 `json:"revenue_by_state"`
	TotalCustomers  int64            `json:"total_customers"`
	UpcomingContent int64            `json:"upcoming_content"`
}

type DashboardService struct {
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	contentSvc   *ContentService
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	contentSvc *ContentService,
) *DashboardService {
	return &DashboardService{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		contentSvc:   contentSvc,
	}
}

// Stats 汇总当前租户的运营数据
func (s *DashboardService) Stats(ctx context.Context, tc *model.TenantContext) (*DashboardStats, error) {
	if tc == nil || tc.TenantID == "" {
		return nil, repository.ErrNotAuthenticated
	}
	businessID := tc.TenantID

	inventory, err := s.productRepo.InventoryStats(ctx, businessID)
	if err != nil {
		return nil, err
	}

	counts, err := s.orderRepo.CountByStatus(ctx, businessID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.RevenueByStatus(ctx, businessID)
	if err != nil {
		return nil, err
	}

	profitMargin := 0.0
	if inventory.PotentialRevenue > 0 {
		profitMargin = float64(inventory.PotentialRevenue-inventory.InventoryValue) /
			float64(inventory.PotentialRevenue)
	}

	stats := &DashboardStats{
		Inventory:      inventory,
		ProfitMargin:   profitMargin,
		OrdersByState:  counts,
		RevenueByState: revenue,
		PendingOrders:  counts[model.OrderStatusPending],
	}
	for _, c := range counts {
		stats.TotalOrders += c
	}
	// 取消和待支付不计入收入
	for _, status := range []string{model.OrderStatusPaid, model.OrderStatusShipped, model.OrderStatusDelivered} {
		stats.TotalRevenue += revenue[status]
	}

	_, totalCustomers, err := s.customerRepo.Fetch(ctx, Actor(tc), repository.QueryOptions{
		Columns:  []string{"id"},
		PageSize: 1,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = totalCustomers

	upcoming, err := s.contentSvc.ListUpcoming(ctx, tc)
	if err != nil {
		return nil, err
	}
	stats.UpcomingContent = int64(len(upcoming))

	return stats, nil
}
