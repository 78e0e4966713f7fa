package model

// CartItem 购物车行
// 名称/单价为加购时的快照；BusinessID 标记行所属商家，结算时校验同店
type CartItem struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"` // 分
	Quantity   int    `json:"quantity"`   // 恒 >= 1，移除整行走 RemoveItem
	ImageUrl   string `json:"image_url,omitempty"`
	BusinessID string `json:"business_id"`
}

// Cart 设备侧购物车
// 不绑定登录态；每个 product_id 至多一行
type Cart struct {
	Items []CartItem `json:"items"`
}

// TotalItems 商品总件数 (Σ quantity)，每次现算，不缓存
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal 小计 (Σ unit_price × quantity)，每次现算
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal
}

// Find 按商品查行，返回下标，不存在时 -1
func (c *Cart) Find(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
