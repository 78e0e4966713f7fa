package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 社媒连接 ====================

// SocialConnectionRepository 社媒连接仓储
type SocialConnectionRepository interface {
	TenantRepository[model.SocialConnection]

	// ListDueForCheck 取出最久未巡检的连接 (健康检查任务用)
	ListDueForCheck(ctx context.Context, olderThan time.Time, limit int) ([]model.SocialConnection, error)
	MarkChecked(ctx context.Context, id int64, status, lastError string) error
}

type socialConnectionRepo struct {
	TenantRepository[model.SocialConnection]
	db *gorm.DB
}

// NewSocialConnectionRepository 创建社媒连接仓储
func NewSocialConnectionRepository(db *gorm.DB) SocialConnectionRepository {
	return &socialConnectionRepo{
		TenantRepository: NewTenantRepository[model.SocialConnection](db),
		db:               db,
	}
}

func (r *socialConnectionRepo) ListDueForCheck(ctx context.Context, olderThan time.Time, limit int) ([]model.SocialConnection, error) {
	var connections []model.SocialConnection
	err := r.db.WithContext(ctx).
		Where("last_checked_at IS NULL OR last_checked_at < ?", olderThan).
		Order("last_checked_at ASC NULLS FIRST").
		Limit(limit).
		Find(&connections).Error
	return connections, err
}

func (r *socialConnectionRepo) MarkChecked(ctx context.Context, id int64, status, lastError string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.SocialConnection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"last_error":      lastError,
			"last_checked_at": &now,
		}).Error
}

// ==================== 内容排期 ====================

// ContentPlanRepository 内容排期仓储
type ContentPlanRepository interface {
	TenantRepository[model.ContentPlan]

	ListUpcoming(ctx context.Context, actor Actor, within time.Duration) ([]model.ContentPlan, error)
}

type contentPlanRepo struct {
	TenantRepository[model.ContentPlan]
	db *gorm.DB
}

// NewContentPlanRepository 创建内容排期仓储
func NewContentPlanRepository(db *gorm.DB) ContentPlanRepository {
	return &contentPlanRepo{
		TenantRepository: NewTenantRepository[model.ContentPlan](db),
		db:               db,
	}
}

func (r *contentPlanRepo) ListUpcoming(ctx context.Context, actor Actor, within time.Duration) ([]model.ContentPlan, error) {
	now := time.Now()
	until := now.Add(within)

	plans, _, err := r.Fetch(ctx, actor, QueryOptions{
		OrderBy:   "scheduled_at",
		Ascending: true,
		Scope: func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ? AND scheduled_at BETWEEN ? AND ?", "scheduled", now, until)
		},
	})
	return plans, err
}
