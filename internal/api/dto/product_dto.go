package dto

// CreateProductRequest 新建商品
type CreateProductRequest struct {
	Name              string   `json:"name" binding:"required,max=200"`
	Description       string   `json:"description"`
	PriceAmount       int64    `json:"price_amount" binding:"required,min=0"` // 分
	CostAmount        int64    `json:"cost_amount" binding:"min=0"`
	Stock             int      `json:"stock" binding:"min=0"`
	LowStockThreshold int      `json:"low_stock_threshold"`
	State             string   `json:"state" binding:"omitempty,oneof=active inactive draft"`
	Tags              []string `json:"tags"`
	ImageBase64       string   `json:"image_base64"` // 可选，创建时直接带主图
}

// UpdateProductRequest 更新商品，仅提交需要变更的字段
type UpdateProductRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	PriceAmount       *int64   `json:"price_amount"`
	CostAmount        *int64   `json:"cost_amount"`
	Stock             *int     `json:"stock"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	State             *string  `json:"state" binding:"omitempty,oneof=active inactive draft"`
	Tags              []string `json:"tags"`
}

// AdjustStockRequest 库存增减，delta 可为负
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// UploadImageRequest 商品主图上传 (Base64)
type UploadImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	Keyword  string `form:"keyword"`
	State    string `form:"state" binding:"omitempty,oneof=active inactive draft"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
}
