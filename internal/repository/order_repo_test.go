package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"baseti_shopapp_v1_202609/internal/model"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Order{}, &model.OrderItem{}); err != nil {
		t.Fatalf("迁移订单表失败: %v", err)
	}
	return db
}

func TestCreateWithItems(t *testing.T) {
	repo := NewOrderRepository(setupOrderTestDB(t))
	ctx := context.Background()
	actor := Actor{TenantID: "biz_a"}

	order := &model.Order{
		OrderNo:      "no-1001",
		CustomerName: "王小姐",
		Status:       model.OrderStatusPending,
		TotalAmount:  210000,
		Items: []model.OrderItem{
			{ProductID: 1, Name: "帆布包", UnitPrice: 150000, Quantity: 1, LineAmount: 150000},
			{ProductID: 2, Name: "陶瓷杯", UnitPrice: 60000, Quantity: 1, LineAmount: 60000},
		},
	}
	order.BusinessID = "biz_forged"

	if err := repo.CreateWithItems(ctx, actor, order); err != nil {
		t.Fatalf("CreateWithItems 失败: %v", err)
	}
	if order.BusinessID != "biz_a" {
		t.Errorf("business_id = %s, want biz_a", order.BusinessID)
	}

	got, err := repo.GetWithItems(ctx, actor, order.ID)
	if err != nil {
		t.Fatalf("GetWithItems 失败: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Items[0].OrderID != order.ID {
		t.Errorf("order_id 未回填: %d", got.Items[0].OrderID)
	}
}

func TestGetByOrderNo(t *testing.T) {
	repo := NewOrderRepository(setupOrderTestDB(t))
	ctx := context.Background()

	order := &model.Order{
		OrderNo:     "no-2001",
		Status:      model.OrderStatusPending,
		TotalAmount: 60000,
		Items: []model.OrderItem{
			{ProductID: 2, Name: "陶瓷杯", UnitPrice: 60000, Quantity: 1, LineAmount: 60000},
		},
	}
	if err := repo.CreateWithItems(ctx, Actor{TenantID: "biz_a"}, order); err != nil {
		t.Fatalf("CreateWithItems 失败: %v", err)
	}

	got, err := repo.GetByOrderNo(ctx, "no-2001")
	if err != nil {
		t.Fatalf("GetByOrderNo 失败: %v", err)
	}
	if got.TotalAmount != 60000 || len(got.Items) != 1 {
		t.Errorf("got = %+v, 订单内容不符", got)
	}

	if _, err := repo.GetByOrderNo(ctx, "no-missing"); err == nil {
		t.Error("不存在的订单号应报错")
	}
}

func TestOrderAggregates(t *testing.T) {
	repo := NewOrderRepository(setupOrderTestDB(t))
	ctx := context.Background()
	actor := Actor{TenantID: "biz_a"}

	orders := []struct {
		no     string
		status string
		amount int64
	}{
		{"no-1", model.OrderStatusPending, 10000},
		{"no-2", model.OrderStatusPaid, 20000},
		{"no-3", model.OrderStatusPaid, 30000},
		{"no-4", model.OrderStatusDelivered, 40000},
	}
	for _, o := range orders {
		order := &model.Order{OrderNo: o.no, Status: o.status, TotalAmount: o.amount}
		if err := repo.CreateWithItems(ctx, actor, order); err != nil {
			t.Fatalf("插入订单失败: %v", err)
		}
	}
	// 其他租户的订单不参与统计
	other := &model.Order{OrderNo: "no-x", Status: model.OrderStatusPaid, TotalAmount: 99999}
	if err := repo.CreateWithItems(ctx, Actor{TenantID: "biz_b"}, other); err != nil {
		t.Fatalf("插入订单失败: %v", err)
	}

	revenue, err := repo.RevenueByStatus(ctx, "biz_a")
	if err != nil {
		t.Fatalf("RevenueByStatus 失败: %v", err)
	}
	if revenue[model.OrderStatusPaid] != 50000 {
		t.Errorf("paid revenue = %d, want 50000", revenue[model.OrderStatusPaid])
	}
	if revenue[model.OrderStatusDelivered] != 40000 {
		t.Errorf("delivered revenue = %d, want 40000", revenue[model.OrderStatusDelivered])
	}

	counts, err := repo.CountByStatus(ctx, "biz_a")
	if err != nil {
		t.Fatalf("CountByStatus 失败: %v", err)
	}
	if counts[model.OrderStatusPaid] != 2 || counts[model.OrderStatusPending] != 1 {
		t.Errorf("counts = %v, 状态分布不符", counts)
	}

	rows, total, err := repo.ListByStatus(ctx, actor, model.OrderStatusPaid, 1, 20)
	if err != nil {
		t.Fatalf("ListByStatus 失败: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("total = %d, len = %d, want 2, 2", total, len(rows))
	}
}
