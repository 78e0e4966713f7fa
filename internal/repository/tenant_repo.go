package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"baseti_shopapp_v1_202609/internal/model"
)

// ==================== 访问者 ====================

// Actor 数据访问的执行者身份
// TenantID 为空且非管理员时，所有租户操作都会被拒绝；
// 管理员选中了某个租户 (impersonation) 时，查询同样套用租户过滤
type Actor struct {
	TenantID string
	IsAdmin  bool
}

// ==================== 查询选项 ====================

// QueryOptions 列表查询选项
type QueryOptions struct {
	Columns   []string               // 投影，空则查全部列
	Filters   map[string]interface{} // 等值过滤
	OrderBy   string                 // 排序列，默认 created_at
	Ascending bool                   // 默认降序
	Page      int
	PageSize  int

	// 任意查询组合的逃生口
	Scope func(*gorm.DB) *gorm.DB
}

// ==================== 接口定义 ====================

// TenantRepository 租户隔离的泛型仓储
// 所有操作自动注入/校验 business_id，调用方不可能忘掉租户过滤
type TenantRepository[T model.TenantOwned] interface {
	Fetch(ctx context.Context, actor Actor, opts QueryOptions) ([]T, int64, error)
	Insert(ctx context.Context, actor Actor, row *T) error
	Update(ctx context.Context, actor Actor, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, actor Actor, id int64) error
	GetByID(ctx context.Context, actor Actor, id int64) (*T, error)

	// 事务
	WithTx(tx *gorm.DB) TenantRepository[T]
	Transaction(ctx context.Context, fn func(txRepo TenantRepository[T]) error) error
}

// ==================== 仓储实现 ====================

type tenantRepo[T model.TenantOwned] struct {
	db *gorm.DB
}

// NewTenantRepository 创建泛型租户仓储
func NewTenantRepository[T model.TenantOwned](db *gorm.DB) TenantRepository[T] {
	return &tenantRepo[T]{db: db}
}

// Fetch 列表查询
// 租户过滤规则: actor.TenantID 非空时恒定追加 business_id 条件；
// 管理员未选租户时不过滤 (平台视角)
func (r *tenantRepo[T]) Fetch(ctx context.Context, actor Actor, opts QueryOptions) ([]T, int64, error) {
	rows := make([]T, 0)
	var total int64

	if actor.TenantID == "" && !actor.IsAdmin {
		return rows, 0, ErrNotAuthenticated
	}

	query := r.db.WithContext(ctx).Model(new(T))

	if len(opts.Columns) > 0 {
		query = query.Select(opts.Columns)
	}
	if actor.TenantID != "" {
		query = query.Where("business_id = ?", actor.TenantID)
	}
	if len(opts.Filters) > 0 {
		query = query.Where(opts.Filters)
	}
	if opts.Scope != nil {
		query = query.Scopes(opts.Scope)
	}

	if err := query.Count(&total).Error; err != nil {
		return rows, 0, err
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}
	query = query.Order(orderBy + " " + direction)

	if opts.PageSize > 0 {
		page := opts.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(opts.PageSize).Offset((page - 1) * opts.PageSize)
	}

	if err := query.Find(&rows).Error; err != nil {
		// 出错时固定返回空切片而不是 nil
		return make([]T, 0), 0, err
	}
	return rows, total, nil
}

// Insert 插入并盖章 business_id
// 无条件覆盖调用方传入的 BusinessID，阻断归属伪造
func (r *tenantRepo[T]) Insert(ctx context.Context, actor Actor, row *T) error {
	if actor.TenantID == "" {
		return ErrNotAuthenticated
	}
	if settable, ok := any(row).(model.TenantSettable); ok {
		settable.SetBusinessID(actor.TenantID)
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// Update 按 id 更新
// 非管理员走单次条件写 (id + business_id)，影响行数为 0 视为越权；
// 管理员只按 id 过滤，查不到按不存在处理
func (r *tenantRepo[T]) Update(ctx context.Context, actor Actor, id int64, fields map[string]interface{}) error {
	query := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id)

	if !actor.IsAdmin {
		if actor.TenantID == "" {
			return ErrNotAuthenticated
		}
		query = query.Where("business_id = ?", actor.TenantID)
	}

	// business_id 不可被更新语句改写；剥离后没有字段可更新时按 no-op 处理
	delete(fields, "business_id")
	if len(fields) == 0 {
		return nil
	}

	result := query.Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if actor.IsAdmin {
			return ErrNotFound
		}
		return ErrAccessDenied
	}
	return nil
}

// Delete 按 id 删除，归属校验同 Update
func (r *tenantRepo[T]) Delete(ctx context.Context, actor Actor, id int64) error {
	query := r.db.WithContext(ctx).Where("id = ?", id)

	if !actor.IsAdmin {
		if actor.TenantID == "" {
			return ErrNotAuthenticated
		}
		query = query.Where("business_id = ?", actor.TenantID)
	}

	result := query.Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if actor.IsAdmin {
			return ErrNotFound
		}
		return ErrAccessDenied
	}
	return nil
}

// GetByID 单行查询
// 非管理员在查询层面直接套租户过滤；查不到统一报越权，不暴露行是否存在。
// 管理员查不到返回 (nil, nil)，由调用方自行处理空结果
func (r *tenantRepo[T]) GetByID(ctx context.Context, actor Actor, id int64) (*T, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)

	if !actor.IsAdmin {
		if actor.TenantID == "" {
			return nil, ErrNotAuthenticated
		}
		query = query.Where("business_id = ?", actor.TenantID)
	}

	var row T
	err := query.First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if actor.IsAdmin {
				return nil, nil
			}
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	return &row, nil
}

func (r *tenantRepo[T]) WithTx(tx *gorm.DB) TenantRepository[T] {
	return &tenantRepo[T]{db: tx}
}

func (r *tenantRepo[T]) Transaction(ctx context.Context, fn func(txRepo TenantRepository[T]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
