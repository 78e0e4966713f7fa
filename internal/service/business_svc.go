package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/utils"
)

// ==================== 错误定义 ====================

var (
	ErrBusinessNotFound = errors.New("商家不存在")
	ErrSlugTaken        = errors.New("店铺路径已被占用")
	ErrInvalidSlug      = errors.New("店铺路径只能包含小写字母、数字和连字符")
)

// ==================== 商家服务 ====================

type BusinessService struct {
	businessRepo repository.BusinessRepository
	storage      *StorageService
}

func NewBusinessService(businessRepo repository.BusinessRepository, storage *StorageService) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		storage:      storage,
	}
}

// GetProfile 当前租户的商家资料
func (s *BusinessService) GetProfile(ctx context.Context, tc *model.TenantContext) (*model.Business, error) {
	if tc == nil || tc.TenantID == "" {
		return nil, repository.ErrNotAuthenticated
	}
	business, err := s.businessRepo.GetByOwnerID(ctx, tc.TenantID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

// UpdateProfile 更新商家资料
// 改 slug 时查重；改了资料要踢掉前台缓存
func (s *BusinessService) UpdateProfile(ctx context.Context, tc *model.TenantContext, req dto.UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.GetProfile(ctx, tc)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.DisplayName != nil {
		fields["display_name"] = *req.DisplayName
	}
	if req.Slug != nil && *req.Slug != business.Slug {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))
		if !isValidSlug(slug) {
			return nil, ErrInvalidSlug
		}
		taken, err := s.businessRepo.ExistsBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlugTaken
		}
		fields["slug"] = slug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.LogoBase64 != "" {
		url, err := s.storage.SaveBase64(ctx, req.LogoBase64, "logo")
		if err != nil {
			return nil, err
		}
		fields["logo_url"] = url
	}

	if len(fields) > 0 {
		if err := s.businessRepo.UpdateFields(ctx, tc.TenantID, fields); err != nil {
			return nil, err
		}
		utils.DeleteCache(storefrontCacheKey(business.Slug))
	}
	return s.GetProfile(ctx, tc)
}

// ==================== 店铺前台 ====================

func storefrontCacheKey(slug string) string {
	return "storefront:" + slug
}

// GetBySlug 店铺前台按路径查商家，带 10 分钟缓存
func (s *BusinessService) GetBySlug(ctx context.Context, slug string) (*model.Business, error) {
	if cached, ok := utils.GetCache(storefrontCacheKey(slug)); ok {
		var business model.Business
		if err := json.Unmarshal([]byte(cached), &business); err == nil {
			return &business, nil
		}
	}

	business, err := s.businessRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, ErrBusinessNotFound
	}

	if raw, err := json.Marshal(business); err == nil {
		utils.SetCache(storefrontCacheKey(slug), string(raw))
	}
	return business, nil
}

// ==================== 平台管理 ====================

// ListBusinesses 商家列表 (平台管理员)
func (s *BusinessService) ListBusinesses(ctx context.Context, q dto.BusinessListQuery) ([]model.Business, int64, error) {
	return s.businessRepo.List(ctx, q.Keyword, q.Page, q.PageSize)
}

// SetRole 调整商家账号角色 (平台管理员)
func (s *BusinessService) SetRole(ctx context.Context, ownerID, role string) error {
	if !model.IsValidRole(role) {
		return errors.New("非法角色: " + role)
	}
	business, err := s.businessRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return err
	}
	if business == nil {
		return ErrBusinessNotFound
	}
	return s.businessRepo.UpdateFields(ctx, ownerID, map[string]interface{}{"role": role})
}

// SetActive 商家启停 (平台管理员)，停用后前台立即不可见
func (s *BusinessService) SetActive(ctx context.Context, ownerID string, isActive bool) error {
	business, err := s.businessRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return err
	}
	if business == nil {
		return ErrBusinessNotFound
	}
	if err := s.businessRepo.UpdateFields(ctx, ownerID, map[string]interface{}{"is_active": isActive}); err != nil {
		return err
	}
	utils.DeleteCache(storefrontCacheKey(business.Slug))
	return nil
}

func isValidSlug(slug string) bool {
	if slug == "" || len(slug) > 100 {
		return false
	}
	for _, c := range slug {
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' {
			continue
		}
		return false
	}
	return true
}
