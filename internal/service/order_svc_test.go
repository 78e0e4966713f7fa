package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 测试辅助 ====================

func setupOrderTestSvc(t *testing.T) (*OrderService, repository.ProductRepository, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Customer{}, &model.Order{}, &model.OrderItem{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		productRepo,
		repository.NewCustomerRepository(db),
		notify.NewMemoryNotifier(10),
	)
	return svc, productRepo, db
}

func ownerContext(tenantID string) *model.TenantContext {
	return &model.TenantContext{TenantID: tenantID, Role: model.RoleOwner, IsAdmin: true}
}

func seedActiveProduct(t *testing.T, repo repository.ProductRepository, name string, price int64, stock int) *model.Product {
	p := &model.Product{
		Name:        name,
		PriceAmount: price,
		Stock:       stock,
		State:       model.ProductStateActive,
	}
	if err := repo.Insert(context.Background(), repository.Actor{TenantID: "biz_a"}, p); err != nil {
		t.Fatalf("插入商品失败: %v", err)
	}
	return p
}

// ==================== 建单 ====================

func TestOrderCreateSnapshotsPrice(t *testing.T) {
	svc, productRepo, _ := setupOrderTestSvc(t)
	ctx := context.Background()
	tc := ownerContext("biz_a")

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 10)

	order, err := svc.Create(ctx, tc, dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{{ProductID: bag.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if order.TotalAmount != 300000 {
		t.Errorf("total = %d, want 300000", order.TotalAmount)
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.OrderNo == "" {
		t.Error("order_no 不应为空")
	}

	// 库存同步扣减
	got, err := productRepo.GetByID(ctx, repository.Actor{TenantID: "biz_a"}, bag.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.Stock != 8 {
		t.Errorf("stock = %d, want 8", got.Stock)
	}

	// 改价后历史订单金额不变
	if err := productRepo.Update(ctx, repository.Actor{TenantID: "biz_a"}, bag.ID, map[string]interface{}{"price_amount": 999}); err != nil {
		t.Fatalf("改价失败: %v", err)
	}
	reloaded, err := svc.Get(ctx, tc, order.ID)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if reloaded.Items[0].UnitPrice != 150000 {
		t.Errorf("unit_price = %d, 应保持下单时快照", reloaded.Items[0].UnitPrice)
	}
}

func TestOrderCreateStockExhausted(t *testing.T) {
	svc, productRepo, _ := setupOrderTestSvc(t)
	ctx := context.Background()
	tc := ownerContext("biz_a")

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 5)
	cup := seedActiveProduct(t, productRepo, "陶瓷杯", 60000, 1)

	_, err := svc.Create(ctx, tc, dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{
			{ProductID: bag.ID, Quantity: 2},
			{ProductID: cup.ID, Quantity: 3}, // 超出库存
		},
	})
	if !errors.Is(err, ErrStockExhausted) {
		t.Fatalf("err = %v, want ErrStockExhausted", err)
	}

	// 失败时已扣的第一行要回补
	got, err := productRepo.GetByID(ctx, repository.Actor{TenantID: "biz_a"}, bag.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.Stock != 5 {
		t.Errorf("stock = %d, 拒单后库存应回补到 5", got.Stock)
	}
}

func TestOrderCreateRejectsInactiveProduct(t *testing.T) {
	svc, productRepo, _ := setupOrderTestSvc(t)
	ctx := context.Background()

	draft := &model.Product{Name: "草稿品", PriceAmount: 10000, Stock: 10, State: model.ProductStateDraft}
	if err := productRepo.Insert(ctx, repository.Actor{TenantID: "biz_a"}, draft); err != nil {
		t.Fatalf("插入商品失败: %v", err)
	}

	_, err := svc.Create(ctx, ownerContext("biz_a"), dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{{ProductID: draft.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrProductUnavailable) {
		t.Errorf("err = %v, want ErrProductUnavailable", err)
	}
}

// ==================== 状态流转 ====================

func TestOrderStatusFlow(t *testing.T) {
	svc, productRepo, _ := setupOrderTestSvc(t)
	ctx := context.Background()
	tc := ownerContext("biz_a")

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 10)
	order, err := svc.Create(ctx, tc, dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{{ProductID: bag.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	// pending 不能直接 delivered
	if _, err := svc.UpdateStatus(ctx, tc, order.ID, model.OrderStatusDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}

	for _, status := range []string{model.OrderStatusPaid, model.OrderStatusShipped, model.OrderStatusDelivered} {
		updated, err := svc.UpdateStatus(ctx, tc, order.ID, status)
		if err != nil {
			t.Fatalf("流转到 %s 失败: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %s, want %s", updated.Status, status)
		}
	}
}

func TestOrderCancelRestocks(t *testing.T) {
	svc, productRepo, _ := setupOrderTestSvc(t)
	ctx := context.Background()
	tc := ownerContext("biz_a")

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 10)
	order, err := svc.Create(ctx, tc, dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{{ProductID: bag.ID, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, tc, order.ID, model.OrderStatusCancelled); err != nil {
		t.Fatalf("取消失败: %v", err)
	}

	got, err := productRepo.GetByID(ctx, repository.Actor{TenantID: "biz_a"}, bag.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.Stock != 10 {
		t.Errorf("stock = %d, 取消订单后库存应回补", got.Stock)
	}
}

func TestOrderPaidRecordsPurchase(t *testing.T) {
	svc, productRepo, db := setupOrderTestSvc(t)
	ctx := context.Background()
	tc := ownerContext("biz_a")

	customerRepo := repository.NewCustomerRepository(db)
	customer := &model.Customer{Name: "王小姐", Phone: "0712000001"}
	if err := customerRepo.Insert(ctx, repository.Actor{TenantID: "biz_a"}, customer); err != nil {
		t.Fatalf("插入客户失败: %v", err)
	}

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 10)
	order, err := svc.Create(ctx, tc, dto.CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []dto.OrderItemInput{{ProductID: bag.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, tc, order.ID, model.OrderStatusPaid); err != nil {
		t.Fatalf("UpdateStatus 失败: %v", err)
	}

	got, err := customerRepo.GetByID(ctx, repository.Actor{TenantID: "biz_a"}, customer.ID)
	if err != nil {
		t.Fatalf("GetByID 失败: %v", err)
	}
	if got.TotalSpent != 300000 || got.OrderCount != 1 {
		t.Errorf("total_spent = %d, order_count = %d, want 300000, 1", got.TotalSpent, got.OrderCount)
	}
}

func TestOrderPaidRollsBackOnPurchaseFailure(t *testing.T) {
	svc, productRepo, db := setupOrderTestSvc(t)
	ctx := context.Background()
	tc := ownerContext("biz_a")

	customerRepo := repository.NewCustomerRepository(db)
	customer := &model.Customer{Name: "王小姐", Phone: "0712000001"}
	if err := customerRepo.Insert(ctx, repository.Actor{TenantID: "biz_a"}, customer); err != nil {
		t.Fatalf("插入客户失败: %v", err)
	}

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 10)
	order, err := svc.Create(ctx, tc, dto.CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []dto.OrderItemInput{{ProductID: bag.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	// 消费累计写不进去时，状态流转要整体回滚
	if err := db.Migrator().DropTable(&model.Customer{}); err != nil {
		t.Fatalf("删表失败: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, tc, order.ID, model.OrderStatusPaid); err == nil {
		t.Fatal("消费累计失败时 UpdateStatus 应报错")
	}

	reloaded, err := svc.Get(ctx, tc, order.ID)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if reloaded.Status != model.OrderStatusPending {
		t.Errorf("status = %s, 付款失败后应保持 pending", reloaded.Status)
	}
}

// ==================== 店铺前台结算 ====================

func TestCheckout(t *testing.T) {
	svc, productRepo, db := setupOrderTestSvc(t)
	ctx := context.Background()

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 10)

	req := dto.CheckoutRequest{
		CustomerName: "王小姐",
		Phone:        "0712000001",
		Address: dto.ShippingAddress{
			Recipient: "王小姐",
			Phone:     "0712000001",
			Line1:     "Moi Avenue 12",
			City:      "Nairobi",
		},
		Items: []dto.OrderItemInput{{ProductID: bag.ID, Quantity: 2}},
	}

	order, err := svc.Checkout(ctx, "biz_a", req)
	if err != nil {
		t.Fatalf("Checkout 失败: %v", err)
	}
	if order.BusinessID != "biz_a" {
		t.Errorf("business_id = %s, want biz_a", order.BusinessID)
	}
	if order.TotalAmount != 300000 {
		t.Errorf("total = %d, 应按当前价核算", order.TotalAmount)
	}
	if order.CustomerID == 0 {
		t.Error("应按手机号自动建档客户")
	}

	// 同手机号再次下单归并到同一客户
	again, err := svc.Checkout(ctx, "biz_a", req)
	if err != nil {
		t.Fatalf("Checkout 失败: %v", err)
	}
	if again.CustomerID != order.CustomerID {
		t.Errorf("customer_id = %d, want %d", again.CustomerID, order.CustomerID)
	}

	var customerCount int64
	db.Model(&model.Customer{}).Count(&customerCount)
	if customerCount != 1 {
		t.Errorf("customers = %d, want 1", customerCount)
	}

	// 前台查单
	tracked, err := svc.GetByOrderNo(ctx, order.OrderNo)
	if err != nil {
		t.Fatalf("GetByOrderNo 失败: %v", err)
	}
	if tracked.TotalAmount != order.TotalAmount {
		t.Errorf("tracked = %+v", tracked)
	}
}

func TestCheckoutOtherTenantProduct(t *testing.T) {
	svc, productRepo, _ := setupOrderTestSvc(t)
	ctx := context.Background()

	bag := seedActiveProduct(t, productRepo, "帆布包", 150000, 10)

	// 商品属于 biz_a，向 biz_b 的店铺结算应拒绝
	_, err := svc.Checkout(ctx, "biz_b", dto.CheckoutRequest{
		CustomerName: "王小姐",
		Phone:        "0712000001",
		Address:      dto.ShippingAddress{Recipient: "王小姐", Phone: "0712000001", Line1: "x"},
		Items:        []dto.OrderItemInput{{ProductID: bag.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrProductUnavailable) {
		t.Errorf("err = %v, want ErrProductUnavailable", err)
	}
}
