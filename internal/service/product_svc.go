package service

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 错误定义 ====================

var (
	ErrProductNotFound = errors.New("商品不存在")
	ErrInvalidPrice    = errors.New("价格不能为负数")
	ErrStockExhausted  = errors.New("库存不足")
)

// ==================== 商品服务 ====================

type ProductService struct {
	productRepo repository.ProductRepository
	Storage     *StorageService
	notifier    notify.Notifier
}

func NewProductService(productRepo repository.ProductRepository, storage *StorageService, notifier notify.Notifier) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		Storage:     storage,
		notifier:    notifier,
	}
}

// List 商品列表，支持关键字与状态过滤
func (s *ProductService) List(ctx context.Context, tc *model.TenantContext, q dto.ProductListQuery) ([]model.Product, int64, error) {
	if q.Keyword != "" {
		return s.productRepo.SearchByName(ctx, Actor(tc), q.Keyword, q.Page, q.PageSize)
	}

	opts := repository.QueryOptions{
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.State != "" {
		opts.Filters = map[string]interface{}{"state": q.State}
	}
	return s.productRepo.Fetch(ctx, Actor(tc), opts)
}

// Get 商品详情
func (s *ProductService) Get(ctx context.Context, tc *model.TenantContext, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, Actor(tc), id)
	if err != nil {
		notifyFailed(s.notifier, "查看商品", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 新建商品
// 带图时先传图再入库，传图失败直接报错不写半条数据
func (s *ProductService) Create(ctx context.Context, tc *model.TenantContext, req dto.CreateProductRequest) (*model.Product, error) {
	if req.PriceAmount < 0 || req.CostAmount < 0 {
		return nil, ErrInvalidPrice
	}

	state := req.State
	if state == "" {
		state = model.ProductStateDraft
	}
	threshold := req.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}

	product := &model.Product{
		Name:              req.Name,
		Description:       req.Description,
		PriceAmount:       req.PriceAmount,
		CostAmount:        req.CostAmount,
		Stock:             req.Stock,
		LowStockThreshold: threshold,
		State:             state,
		Tags:              pq.StringArray(req.Tags),
	}

	if req.ImageBase64 != "" {
		url, err := s.Storage.SaveBase64(ctx, req.ImageBase64, "product")
		if err != nil {
			notifyFailed(s.notifier, "上传商品图片", err)
			return nil, err
		}
		product.ImageUrl = url
	}

	if err := s.productRepo.Insert(ctx, Actor(tc), product); err != nil {
		notifyFailed(s.notifier, "创建商品", err)
		return nil, err
	}
	notifyDone(s.notifier, "商品已创建", product.Name)
	return product, nil
}

// Update 更新商品，零值字段跳过
func (s *ProductService) Update(ctx context.Context, tc *model.TenantContext, id int64, req dto.UpdateProductRequest) (*model.Product, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PriceAmount != nil {
		if *req.PriceAmount < 0 {
			return nil, ErrInvalidPrice
		}
		fields["price_amount"] = *req.PriceAmount
	}
	if req.CostAmount != nil {
		if *req.CostAmount < 0 {
			return nil, ErrInvalidPrice
		}
		fields["cost_amount"] = *req.CostAmount
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.LowStockThreshold != nil {
		fields["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.State != nil {
		fields["state"] = *req.State
	}
	if req.Tags != nil {
		fields["tags"] = pq.StringArray(req.Tags)
	}

	if len(fields) > 0 {
		if err := s.productRepo.Update(ctx, Actor(tc), id, fields); err != nil {
			notifyFailed(s.notifier, "更新商品", err)
			return nil, err
		}
		notifyDone(s.notifier, "商品已更新", "")
	}
	return s.Get(ctx, tc, id)
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, tc *model.TenantContext, id int64) error {
	if err := s.productRepo.Delete(ctx, Actor(tc), id); err != nil {
		notifyFailed(s.notifier, "删除商品", err)
		return err
	}
	notifyDone(s.notifier, "商品已删除", "")
	return nil
}

// AdjustStock 库存增减
// 先做归属校验再走原子增减，扣到负数时报库存不足
func (s *ProductService) AdjustStock(ctx context.Context, tc *model.TenantContext, id int64, delta int) (*model.Product, error) {
	if _, err := s.Get(ctx, tc, id); err != nil {
		return nil, err
	}

	if err := s.productRepo.AdjustStock(ctx, id, delta); err != nil {
		if errors.Is(err, repository.ErrNotFound) && delta < 0 {
			notifyFailed(s.notifier, "调整库存", ErrStockExhausted)
			return nil, ErrStockExhausted
		}
		notifyFailed(s.notifier, "调整库存", err)
		return nil, err
	}
	notifyDone(s.notifier, "库存已调整", "")
	return s.Get(ctx, tc, id)
}

// UploadImage 更换商品主图，旧图尽力删除
func (s *ProductService) UploadImage(ctx context.Context, tc *model.TenantContext, id int64, base64Data string) (*model.Product, error) {
	product, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.SaveBase64(ctx, base64Data, "product")
	if err != nil {
		notifyFailed(s.notifier, "上传商品图片", err)
		return nil, err
	}

	oldURL := product.ImageUrl
	if err := s.productRepo.Update(ctx, Actor(tc), id, map[string]interface{}{"image_url": url}); err != nil {
		notifyFailed(s.notifier, "更新商品主图", err)
		return nil, err
	}
	notifyDone(s.notifier, "商品主图已更新", "")
	if oldURL != "" {
		_ = s.Storage.Delete(ctx, oldURL)
	}
	return s.Get(ctx, tc, id)
}

// GetPublic 店铺前台商品详情，只露出在售商品
func (s *ProductService) GetPublic(ctx context.Context, businessID string, id int64) (*model.Product, error) {
	actor := repository.Actor{TenantID: businessID}
	product, err := s.productRepo.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.State != model.ProductStateActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListPublic 店铺前台商品列表
func (s *ProductService) ListPublic(ctx context.Context, businessID string, page, pageSize int) ([]model.Product, int64, error) {
	return s.productRepo.ListActiveByBusiness(ctx, businessID, page, pageSize)
}

// InventoryStats 当前租户库存统计
func (s *ProductService) InventoryStats(ctx context.Context, tc *model.TenantContext) (*repository.InventoryStats, error) {
	if tc == nil || tc.TenantID == "" {
		return nil, repository.ErrNotAuthenticated
	}
	return s.productRepo.InventoryStats(ctx, tc.TenantID)
}
