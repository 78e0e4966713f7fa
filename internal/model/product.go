package model

import "github.com/lib/pq"

// 商品状态常量
const (
	ProductStateActive   = "active"   // 在售
	ProductStateInactive = "inactive" // 下架
	ProductStateDraft    = "draft"    // 草稿
)

// 低库存默认阈值
const DefaultLowStockThreshold = 5

// Product 商品
type Product struct {
	TenantModel

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	SKU         string `gorm:"size:100;index" json:"sku"`
	Category    string `gorm:"size:100;index" json:"category"`

	// 价格以最小货币单位存储 (分)，避免浮点误差
	PriceAmount int64 `gorm:"not null;default:0" json:"price_amount"`
	CostAmount  int64 `gorm:"not null;default:0;comment:进货成本" json:"cost_amount"`

	Stock             int `gorm:"default:0" json:"stock"`
	LowStockThreshold int `gorm:"default:5" json:"low_stock_threshold"`

	State    string         `gorm:"size:20;default:'draft';index" json:"state"`
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags"`
	ImageUrl string         `gorm:"size:255" json:"image_url"`
}

func (Product) TableName() string { return "products" }

// Margin 毛利率 (0~1)，售价为 0 时返回 0
func (p *Product) Margin() float64 {
	if p.PriceAmount == 0 {
		return 0
	}
	return float64(p.PriceAmount-p.CostAmount) / float64(p.PriceAmount)
}

// IsLowStock 是否低于库存阈值
func (p *Product) IsLowStock() bool {
	threshold := p.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return p.Stock < threshold
}
