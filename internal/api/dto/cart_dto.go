package dto

import "baseti_shopapp_v1_202609/internal/model"

// AddCartItemRequest 加购
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// UpdateCartQuantityRequest 改数量，小于 1 不生效
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartResponse 购物车视图，合计由服务端现算
type CartResponse struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
	Subtotal   int64            `json:"subtotal"`
}

// NewCartResponse 由购物车构造响应
func NewCartResponse(cart *model.Cart) CartResponse {
	return CartResponse{
		Items:      cart.Items,
		TotalItems: cart.TotalItems(),
		Subtotal:   cart.Subtotal(),
	}
}
