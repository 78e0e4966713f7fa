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

func setupProductTestSvc(t *testing.T) (*ProductService, *notify.MemoryNotifier) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}

	notifier := notify.NewMemoryNotifier(10)
	return NewProductService(repository.NewProductRepository(db), nil, notifier), notifier
}

// ==================== 操作通知 ====================

func TestProductCreateNotifies(t *testing.T) {
	svc, notifier := setupProductTestSvc(t)

	_, err := svc.Create(context.Background(), ownerContext("biz_a"), dto.CreateProductRequest{
		Name:        "帆布包",
		PriceAmount: 150000,
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	last, ok := notifier.Last()
	if !ok || last.Title != "商品已创建" || last.Variant != notify.VariantDefault {
		t.Errorf("通知 = %+v, want 商品已创建", last)
	}
}

func TestProductUpdateOtherTenantNotifiesAccessDenied(t *testing.T) {
	svc, notifier := setupProductTestSvc(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerContext("biz_a"), dto.CreateProductRequest{
		Name:        "帆布包",
		PriceAmount: 150000,
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	notifier.Drain()

	// biz_b 的 staff 改 biz_a 的商品，要拒绝并发 destructive 通知
	intruder := &model.TenantContext{TenantID: "biz_b", Role: model.RoleStaff}
	name := "改名"
	_, err = svc.Update(ctx, intruder, created.ID, dto.UpdateProductRequest{Name: &name})
	if !errors.Is(err, repository.ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}

	last, ok := notifier.Last()
	if !ok || last.Variant != notify.VariantDestructive || last.Title != "Access Denied" {
		t.Errorf("通知 = %+v, want destructive Access Denied", last)
	}

	// 原行内容不受影响
	got, err := svc.Get(ctx, ownerContext("biz_a"), created.ID)
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got.Name != "帆布包" {
		t.Errorf("name = %s, 越权更新不应生效", got.Name)
	}
}

func TestProductDeleteOtherTenantNotifiesAccessDenied(t *testing.T) {
	svc, notifier := setupProductTestSvc(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerContext("biz_a"), dto.CreateProductRequest{
		Name:        "陶瓷杯",
		PriceAmount: 60000,
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	notifier.Drain()

	intruder := &model.TenantContext{TenantID: "biz_b", Role: model.RoleStaff}
	if err := svc.Delete(ctx, intruder, created.ID); !errors.Is(err, repository.ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}

	last, ok := notifier.Last()
	if !ok || last.Variant != notify.VariantDestructive {
		t.Errorf("通知 = %+v, want destructive", last)
	}
}
