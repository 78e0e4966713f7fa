package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 错误定义 ====================

var (
	ErrOrderNotFound      = errors.New("订单不存在")
	ErrInvalidTransition  = errors.New("非法的订单状态流转")
	ErrProductUnavailable = errors.New("商品不存在或已下架")
)

// ==================== 订单服务 ====================

type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	notifier     notify.Notifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	notifier notify.Notifier,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

func (s *OrderService) List(ctx context.Context, tc *model.TenantContext, q dto.OrderListQuery) ([]model.Order, int64, error) {
	return s.orderRepo.ListByStatus(ctx, Actor(tc), q.Status, q.Page, q.PageSize)
}

func (s *OrderService) Get(ctx context.Context, tc *model.TenantContext, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, Actor(tc), id)
	if err != nil {
		notifyFailed(s.notifier, "查看订单", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Create 后台手工建单
// 单价按商品当前价快照；库存同步扣减，不足直接拒单
func (s *OrderService) Create(ctx context.Context, tc *model.TenantContext, req dto.CreateOrderRequest) (*model.Order, error) {
	actor := Actor(tc)

	var customerName, phone string
	if req.CustomerID > 0 {
		customer, err := s.customerRepo.GetByID(ctx, actor, req.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}
		customerName = customer.Name
		phone = customer.Phone
	}

	order, err := s.buildOrder(ctx, actor, req.Items)
	if err != nil {
		return nil, err
	}
	order.CustomerID = req.CustomerID
	order.CustomerName = customerName
	order.Phone = phone
	order.Note = req.Note

	if err := s.orderRepo.CreateWithItems(ctx, actor, order); err != nil {
		s.restock(ctx, order.Items)
		notifyFailed(s.notifier, "创建订单", err)
		return nil, err
	}
	notifyDone(s.notifier, "订单已创建", order.OrderNo)
	return order, nil
}

// UpdateStatus 订单状态流转
// 付款时状态与客户消费累计同事务落库；取消时回补库存
func (s *OrderService) UpdateStatus(ctx context.Context, tc *model.TenantContext, id int64, status string) (*model.Order, error) {
	order, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	actor := Actor(tc)
	switch status {
	case model.OrderStatusPaid:
		if err := s.orderRepo.MarkPaid(ctx, actor, id, order.CustomerID, order.TotalAmount); err != nil {
			notifyFailed(s.notifier, "更新订单状态", err)
			return nil, err
		}
	default:
		if err := s.orderRepo.Update(ctx, actor, id, map[string]interface{}{"status": status}); err != nil {
			notifyFailed(s.notifier, "更新订单状态", err)
			return nil, err
		}
		if status == model.OrderStatusCancelled {
			s.restock(ctx, order.Items)
		}
	}

	notifyDone(s.notifier, "订单状态已更新", status)
	return s.Get(ctx, tc, id)
}

// ==================== 店铺前台 ====================

// Checkout 店铺前台结算下单
// 不信任前端金额，按商品当前价重新核价；客户按手机号归并
func (s *OrderService) Checkout(ctx context.Context, businessID string, req dto.CheckoutRequest) (*model.Order, error) {
	// 前台没有登录态，以目标商家身份落库
	actor := repository.Actor{TenantID: businessID}

	order, err := s.buildOrder(ctx, actor, req.Items)
	if err != nil {
		return nil, err
	}

	addr, err := json.Marshal(req.Address)
	if err != nil {
		s.restock(ctx, order.Items)
		return nil, err
	}

	order.CustomerID = s.upsertCustomer(ctx, actor, req.CustomerName, req.Phone)
	order.CustomerName = req.CustomerName
	order.Phone = req.Phone
	order.ShippingAddress = datatypes.JSON(addr)
	order.Note = req.Note

	if err := s.orderRepo.CreateWithItems(ctx, actor, order); err != nil {
		s.restock(ctx, order.Items)
		notifyFailed(s.notifier, "下单", err)
		return nil, err
	}
	notifyDone(s.notifier, "下单成功", order.OrderNo)
	return order, nil
}

// GetByOrderNo 前台按订单号查单
func (s *OrderService) GetByOrderNo(ctx context.Context, orderNo string) (*model.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ==================== 内部方法 ====================

// buildOrder 核价并扣库存，生成待落库订单
// 任何一行失败都会回补此前已扣的库存
func (s *OrderService) buildOrder(ctx context.Context, actor repository.Actor, items []dto.OrderItemInput) (*model.Order, error) {
	order := &model.Order{
		OrderNo: uuid.New().String(),
		Status:  model.OrderStatusPending,
	}

	for _, input := range items {
		product, err := s.productRepo.GetByID(ctx, actor, input.ProductID)
		if err != nil || product == nil {
			s.restock(ctx, order.Items)
			return nil, ErrProductUnavailable
		}
		if product.State != model.ProductStateActive {
			s.restock(ctx, order.Items)
			return nil, ErrProductUnavailable
		}

		if err := s.productRepo.AdjustStock(ctx, product.ID, -input.Quantity); err != nil {
			s.restock(ctx, order.Items)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrStockExhausted, product.Name)
			}
			return nil, err
		}

		line := product.PriceAmount * int64(input.Quantity)
		order.Items = append(order.Items, model.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			UnitPrice:  product.PriceAmount,
			Quantity:   input.Quantity,
			LineAmount: line,
		})
		order.TotalAmount += line
	}

	return order, nil
}

// restock 回补库存，尽力执行
func (s *OrderService) restock(ctx context.Context, items []model.OrderItem) {
	for _, item := range items {
		_ = s.productRepo.AdjustStock(ctx, item.ProductID, item.Quantity)
	}
}

// upsertCustomer 按手机号归并客户，找不到就新建；失败不阻塞下单
func (s *OrderService) upsertCustomer(ctx context.Context, actor repository.Actor, name, phone string) int64 {
	if phone == "" {
		return 0
	}

	existing, _, err := s.customerRepo.Search(ctx, actor, phone, 1, 1)
	if err == nil && len(existing) > 0 {
		return existing[0].ID
	}

	customer := &model.Customer{Name: name, Phone: phone}
	if err := s.customerRepo.Insert(ctx, actor, customer); err != nil {
		return 0
	}
	return customer.ID
}
