package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 接口定义 ====================

// BusinessRepository 商家资料仓储
// 商家表本身不是租户行 (它就是租户)，不走泛型仓储
type BusinessRepository interface {
	Create(ctx context.Context, business *model.Business) error
	GetByOwnerID(ctx context.Context, ownerID string) (*model.Business, error)
	GetBySlug(ctx context.Context, slug string) (*model.Business, error)
	Update(ctx context.Context, business *model.Business) error
	UpdateFields(ctx context.Context, ownerID string, fields map[string]interface{}) error
	List(ctx context.Context, keyword string, page, pageSize int) ([]model.Business, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// ==================== 仓储实现 ====================

type businessRepo struct {
	db *gorm.DB
}

// NewBusinessRepository 创建商家仓储
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, business *model.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

// GetByOwnerID 按用户身份查商家资料，查不到返回 (nil, nil)
func (r *businessRepo) GetByOwnerID(ctx context.Context, ownerID string) (*model.Business, error) {
	var business model.Business
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

func (r *businessRepo) GetBySlug(ctx context.Context, slug string) (*model.Business, error) {
	var business model.Business
	err := r.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}

func (r *businessRepo) Update(ctx context.Context, business *model.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

func (r *businessRepo) UpdateFields(ctx context.Context, ownerID string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("owner_id = ?", ownerID).
		Updates(fields).Error
}

func (r *businessRepo) List(ctx context.Context, keyword string, page, pageSize int) ([]model.Business, int64, error) {
	var businesses []model.Business
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Business{})
	if keyword != "" {
		query = query.Where("display_name LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&businesses).Error

	return businesses, total, err
}

func (r *businessRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Business{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}
