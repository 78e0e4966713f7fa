package model

import "gorm.io/datatypes"

// 订单状态常量
const (
	OrderStatusPending   = "pending"   // 待支付
	OrderStatusPaid      = "paid"      // 已支付
	OrderStatusShipped   = "shipped"   // 已发货
	OrderStatusDelivered = "delivered" // 已送达
	OrderStatusCancelled = "cancelled" // 已取消
)

// 合法的状态流转
// pending -> paid / cancelled
// paid -> shipped / cancelled
// shipped -> delivered
var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusDelivered},
}

// CanTransition 校验订单状态流转是否合法
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order 订单
type Order struct {
	TenantModel

	// 对外订单号 (uuid)，区别于自增主键
	OrderNo string `gorm:"size:64;uniqueIndex;not null" json:"order_no"`

	CustomerID   int64  `gorm:"index" json:"customer_id"` // 可为 0 (店铺前台游客下单)
	CustomerName string `gorm:"size:100" json:"customer_name"`
	Phone        string `gorm:"size:30" json:"phone"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	// 金额快照 (分)
	TotalAmount int64 `gorm:"not null;default:0" json:"total_amount"`

	// 收货地址 JSON 快照
	ShippingAddress datatypes.JSON `json:"shipping_address"`

	Note string `gorm:"type:text" json:"note"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单行
// 商品名/单价为下单时快照，商品后续改价不影响历史订单
type OrderItem struct {
	BaseModel

	OrderID   int64 `gorm:"index;not null" json:"order_id"`
	ProductID int64 `gorm:"index" json:"product_id"`

	Name       string `gorm:"size:255" json:"name"`
	UnitPrice  int64  `gorm:"not null" json:"unit_price"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	LineAmount int64  `gorm:"not null" json:"line_amount"`
}

func (OrderItem) TableName() string { return "order_items" }
