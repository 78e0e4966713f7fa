package model

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TenantModel 租户数据基类
// 所有归属于某个商家的业务表都内嵌它，business_id 即租户隔离键
type TenantModel struct {
	BaseModel
	BusinessID string `gorm:"size:64;index;not null;comment:归属商家ID" json:"business_id"`
}

// GetBusinessID 返回行的归属商家 ID
func (m TenantModel) GetBusinessID() string { return m.BusinessID }

// SetBusinessID 覆写行的归属商家 ID
// 插入时由仓储统一盖章，调用方传入的值一律作废
func (m *TenantModel) SetBusinessID(id string) { m.BusinessID = id }

// TenantOwned 租户行约束接口
// 泛型仓储只接受实现了该接口的模型
type TenantOwned interface {
	GetBusinessID() string
}

// TenantSettable 可盖章的租户行 (指针实现)
type TenantSettable interface {
	SetBusinessID(string)
}
