package service

import (
	"errors"
	"testing"

	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/pkg/localstore"
	"baseti_shopapp_v1_202609/pkg/notify"
)

func newTestCartService() (*CartService, *localstore.MemStore, *notify.MemoryNotifier) {
	store := localstore.NewMemStore()
	notifier := notify.NewMemoryNotifier(10)
	return NewCartService(store, notifier), store, notifier
}

func sampleItem() model.CartItem {
	return model.CartItem{
		ProductID:  1,
		Name:       "帆布包",
		UnitPrice:  150000,
		BusinessID: "biz_a",
	}
}

func TestCartAddItem(t *testing.T) {
	svc, _, notifier := newTestCartService()

	cart, err := svc.AddItem("dev-1", sampleItem())
	if err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Errorf("cart = %+v, want 数量 1 的单行", cart.Items)
	}

	last, ok := notifier.Last()
	if !ok || last.Title != "已加入购物车" {
		t.Errorf("通知 = %+v", last)
	}

	// 同商品再次加购: 合并行，数量 +1
	cart, err = svc.AddItem("dev-1", sampleItem())
	if err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("同商品应合并为一行, got %d 行", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", cart.Items[0].Quantity)
	}

	last, _ = notifier.Last()
	if last.Title != "已更新数量" {
		t.Errorf("通知 = %+v", last)
	}
}

func TestCartTotals(t *testing.T) {
	svc, _, _ := newTestCartService()

	if _, err := svc.AddItem("dev-1", sampleItem()); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	cup := model.CartItem{ProductID: 2, Name: "陶瓷杯", UnitPrice: 60000, BusinessID: "biz_a"}
	if _, err := svc.AddItem("dev-1", cup); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	cart, err := svc.UpdateQuantity("dev-1", 2, 3)
	if err != nil {
		t.Fatalf("UpdateQuantity 失败: %v", err)
	}

	if cart.TotalItems() != 4 {
		t.Errorf("total_items = %d, want 4", cart.TotalItems())
	}
	// 150000*1 + 60000*3
	if cart.Subtotal() != 330000 {
		t.Errorf("subtotal = %d, want 330000", cart.Subtotal())
	}
}

func TestCartQuantityFloor(t *testing.T) {
	svc, _, _ := newTestCartService()

	if _, err := svc.AddItem("dev-1", sampleItem()); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}

	// 数量下限 1: 传 0 或负数不做变更
	cart, err := svc.UpdateQuantity("dev-1", 1, 0)
	if err != nil {
		t.Fatalf("UpdateQuantity 失败: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", cart.Items[0].Quantity)
	}

	cart, err = svc.UpdateQuantity("dev-1", 1, -3)
	if err != nil {
		t.Fatalf("UpdateQuantity 失败: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", cart.Items[0].Quantity)
	}
}

func TestCartRemoveItem(t *testing.T) {
	svc, _, _ := newTestCartService()

	if _, err := svc.AddItem("dev-1", sampleItem()); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}

	cart, err := svc.RemoveItem("dev-1", 1)
	if err != nil {
		t.Fatalf("RemoveItem 失败: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart = %+v, want 空", cart.Items)
	}

	if _, err := svc.RemoveItem("dev-1", 999); !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("err = %v, want ErrCartItemNotFound", err)
	}
	if _, err := svc.UpdateQuantity("dev-1", 999, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("err = %v, want ErrCartItemNotFound", err)
	}
}

func TestCartPersistence(t *testing.T) {
	svc, store, _ := newTestCartService()

	if _, err := svc.AddItem("dev-1", sampleItem()); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	if _, err := svc.UpdateQuantity("dev-1", 1, 5); err != nil {
		t.Fatalf("UpdateQuantity 失败: %v", err)
	}

	// 同一存储上重建服务，相当于进程重启后恢复
	revived := NewCartService(store, notify.NewMemoryNotifier(10))
	cart := revived.Get("dev-1")
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
		t.Errorf("cart = %+v, 重启后购物车应原样恢复", cart.Items)
	}
}

func TestCartDeviceScoping(t *testing.T) {
	svc, _, _ := newTestCartService()

	if _, err := svc.AddItem("dev-1", sampleItem()); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}

	other := svc.Get("dev-2")
	if len(other.Items) != 0 {
		t.Errorf("设备间购物车应互不可见, got %+v", other.Items)
	}
}

func TestCartCorruptDataResets(t *testing.T) {
	svc, store, _ := newTestCartService()

	if err := store.Set("dev-1:cart", "{not json"); err != nil {
		t.Fatalf("写入损坏数据失败: %v", err)
	}

	cart := svc.Get("dev-1")
	if len(cart.Items) != 0 {
		t.Errorf("损坏数据应按空车处理, got %+v", cart.Items)
	}

	// 损坏后仍可正常加购
	cart, err := svc.AddItem("dev-1", sampleItem())
	if err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("cart = %+v", cart.Items)
	}
}

func TestCartClear(t *testing.T) {
	svc, _, notifier := newTestCartService()

	if _, err := svc.AddItem("dev-1", sampleItem()); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	if err := svc.Clear("dev-1"); err != nil {
		t.Fatalf("Clear 失败: %v", err)
	}

	cart := svc.Get("dev-1")
	if len(cart.Items) != 0 {
		t.Errorf("cart = %+v, want 空", cart.Items)
	}

	last, ok := notifier.Last()
	if !ok || last.Title != "已清空购物车" {
		t.Errorf("清空后应发通知, got %+v", last)
	}
}
