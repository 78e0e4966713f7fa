package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/pkg/localstore"
	"baseti_shopapp_v1_202609/pkg/logger"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 错误定义 ====================

var (
	ErrCartItemNotFound = errors.New("购物车中不存在该商品")
	ErrEmptyCart        = errors.New("购物车为空")
)

// 持久化键：每台设备一个命名空间，键名固定为 cart
const cartStorageKey = "cart"

// ==================== 购物车服务 ====================

// CartService 设备侧购物车
// 每次变更同步落盘；读档解析失败按空车处理，不报错给调用方
type CartService struct {
	store    localstore.Store
	notifier notify.Notifier
	mu       sync.Mutex
}

func NewCartService(store localstore.Store, notifier notify.Notifier) *CartService {
	return &CartService{
		store:    store,
		notifier: notifier,
	}
}

func cartKey(deviceID string) string {
	return deviceID + ":" + cartStorageKey
}

// load 读档。缺失或损坏都返回空车
func (s *CartService) load(deviceID string) *model.Cart {
	cart := &model.Cart{Items: []model.CartItem{}}
	raw, ok := s.store.Get(cartKey(deviceID))
	if !ok || raw == "" {
		return cart
	}
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		logger.Warn("购物车数据损坏，重置为空车",
			zap.String("device_id", deviceID),
			zap.Error(err))
		return &model.Cart{Items: []model.CartItem{}}
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

// save 同步落盘，写完才返回
func (s *CartService) save(deviceID string, cart *model.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.store.Set(cartKey(deviceID), string(raw))
}

// Get 当前购物车快照
func (s *CartService) Get(deviceID string) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(deviceID)
}

// AddItem 加购
// 同商品已在车中则数量 +1，否则以数量 1 追加
func (s *CartService) AddItem(deviceID string, item model.CartItem) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(deviceID)
	if idx := cart.Find(item.ProductID); idx >= 0 {
		cart.Items[idx].Quantity++
		s.notifier.Notify(notify.Success("已更新数量",
			fmt.Sprintf("%s ×%d", cart.Items[idx].Name, cart.Items[idx].Quantity)))
	} else {
		item.Quantity = 1
		cart.Items = append(cart.Items, item)
		s.notifier.Notify(notify.Success("已加入购物车", item.Name))
	}

	if err := s.save(deviceID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem 整行移除
func (s *CartService) RemoveItem(deviceID string, productID int64) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(deviceID)
	idx := cart.Find(productID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}
	removed := cart.Items[idx]
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	s.notifier.Notify(notify.Success("已移除", removed.Name))

	if err := s.save(deviceID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity 改数量
// 数量下限 1；传入小于 1 的值不做任何变更，原样返回
func (s *CartService) UpdateQuantity(deviceID string, productID int64, quantity int) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(deviceID)
	if quantity < 1 {
		return cart, nil
	}
	idx := cart.Find(productID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}
	cart.Items[idx].Quantity = quantity

	if err := s.save(deviceID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear 清空购物车
func (s *CartService) Clear(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := &model.Cart{Items: []model.CartItem{}}
	if err := s.save(deviceID, cart); err != nil {
		return err
	}
	s.notifier.Notify(notify.Success("已清空购物车", ""))
	return nil
}
