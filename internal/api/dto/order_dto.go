package dto

// OrderItemInput 下单商品行
type OrderItemInput struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest 后台手工建单
type CreateOrderRequest struct {
	CustomerID int64            `json:"customer_id"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Note       string           `json:"note"`
}

// UpdateOrderStatusRequest 订单状态流转
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}

// OrderListQuery 订单列表查询参数
type OrderListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid shipped delivered cancelled"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	Recipient string `json:"recipient" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	ZipCode   string `json:"zip_code"`
}

// CheckoutRequest 店铺前台结算
// 购物车内容由前端随请求提交，服务端按当前价重新核价
type CheckoutRequest struct {
	CustomerName string           `json:"customer_name" binding:"required,max=100"`
	Phone        string           `json:"phone" binding:"required,max=32"`
	Address      ShippingAddress  `json:"address" binding:"required"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Note         string           `json:"note"`
}

// CheckoutResponse 结算结果
type CheckoutResponse struct {
	OrderNo     string `json:"order_no"`
	TotalAmount int64  `json:"total_amount"`
	Status      string `json:"status"`
}
