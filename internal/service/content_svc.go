package service

import (
	"context"
	"errors"
	"time"

	"baseti_shopapp_v1_202609/internal/api/dto"
	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// ==================== 错误定义 ====================

var (
	ErrPlanNotFound      = errors.New("内容排期不存在")
	ErrInvalidSchedule   = errors.New("排期时间格式错误")
	ErrScheduleWithoutAt = errors.New("排期状态必须设置排期时间")
)

// ==================== 内容排期服务 ====================

type ContentService struct {
	planRepo    repository.ContentPlanRepository
	productRepo repository.ProductRepository
	ai          *AIService
	notifier    notify.Notifier
}

func NewContentService(
	planRepo repository.ContentPlanRepository,
	productRepo repository.ProductRepository,
	ai *AIService,
	notifier notify.Notifier,
) *ContentService {
	return &ContentService{
		planRepo:    planRepo,
		productRepo: productRepo,
		ai:          ai,
		notifier:    notifier,
	}
}

func (s *ContentService) List(ctx context.Context, tc *model.TenantContext, page, pageSize int) ([]model.ContentPlan, int64, error) {
	return s.planRepo.Fetch(ctx, Actor(tc), repository.QueryOptions{
		Page:     page,
		PageSize: pageSize,
	})
}

// ListUpcoming 未来 7 天内待发布的排期
func (s *ContentService) ListUpcoming(ctx context.Context, tc *model.TenantContext) ([]model.ContentPlan, error) {
	return s.planRepo.ListUpcoming(ctx, Actor(tc), 7*24*time.Hour)
}

func (s *ContentService) Get(ctx context.Context, tc *model.TenantContext, id int64) (*model.ContentPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, Actor(tc), id)
	if err != nil {
		notifyFailed(s.notifier, "查看内容排期", err)
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *ContentService) Create(ctx context.Context, tc *model.TenantContext, req dto.CreateContentPlanRequest) (*model.ContentPlan, error) {
	plan := &model.ContentPlan{
		Title:     req.Title,
		Platform:  req.Platform,
		Caption:   req.Caption,
		ProductID: req.ProductID,
		Status:    "draft",
	}

	if req.ScheduledAt != "" {
		at, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return nil, ErrInvalidSchedule
		}
		plan.ScheduledAt = &at
		plan.Status = "scheduled"
	}

	if err := s.planRepo.Insert(ctx, Actor(tc), plan); err != nil {
		notifyFailed(s.notifier, "创建内容排期", err)
		return nil, err
	}
	notifyDone(s.notifier, "内容排期已创建", plan.Title)
	return plan, nil
}

func (s *ContentService) Update(ctx context.Context, tc *model.TenantContext, id int64, req dto.UpdateContentPlanRequest) (*model.ContentPlan, error) {
	plan, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Platform != nil {
		fields["platform"] = *req.Platform
	}
	if req.Caption != nil {
		fields["caption"] = *req.Caption
	}
	if req.ProductID != nil {
		fields["product_id"] = *req.ProductID
	}
	if req.ScheduledAt != nil {
		if *req.ScheduledAt == "" {
			fields["scheduled_at"] = nil
		} else {
			at, err := time.Parse(time.RFC3339, *req.ScheduledAt)
			if err != nil {
				return nil, ErrInvalidSchedule
			}
			fields["scheduled_at"] = &at
		}
	}
	if req.Status != nil {
		if *req.Status == "scheduled" && plan.ScheduledAt == nil && fields["scheduled_at"] == nil {
			return nil, ErrScheduleWithoutAt
		}
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.planRepo.Update(ctx, Actor(tc), id, fields); err != nil {
			notifyFailed(s.notifier, "更新内容排期", err)
			return nil, err
		}
		notifyDone(s.notifier, "内容排期已更新", "")
	}
	return s.Get(ctx, tc, id)
}

func (s *ContentService) Delete(ctx context.Context, tc *model.TenantContext, id int64) error {
	if err := s.planRepo.Delete(ctx, Actor(tc), id); err != nil {
		notifyFailed(s.notifier, "删除内容排期", err)
		return err
	}
	notifyDone(s.notifier, "内容排期已删除", "")
	return nil
}

// GenerateCaption 按商品生成社媒文案
func (s *ContentService) GenerateCaption(ctx context.Context, tc *model.TenantContext, req dto.GenerateCaptionRequest) (*dto.GeneratedCaption, error) {
	product, err := s.productRepo.GetByID(ctx, Actor(tc), req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.ai.GenerateCaption(ctx, product.Name, product.Description, req.Platform, req.Instruction)
}
