package dto

// CreateConnectionRequest 绑定社媒账号
type CreateConnectionRequest struct {
	Platform string `json:"platform" binding:"required,oneof=instagram facebook tiktok whatsapp"`
	Handle   string `json:"handle" binding:"required,max=100"`
	Url      string `json:"url" binding:"omitempty,url"`
	Settings string `json:"settings" binding:"omitempty,json"`
}

// UpdateConnectionRequest 更新社媒连接
type UpdateConnectionRequest struct {
	Handle   *string `json:"handle"`
	Url      *string `json:"url" binding:"omitempty,url"`
	Settings *string `json:"settings" binding:"omitempty,json"`
}

// CreateContentPlanRequest 新建内容排期
type CreateContentPlanRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Platform    string `json:"platform" binding:"omitempty,oneof=instagram facebook tiktok whatsapp"`
	Caption     string `json:"caption"`
	ScheduledAt string `json:"scheduled_at" binding:"omitempty"` // RFC3339
	ProductID   int64  `json:"product_id"`
}

// UpdateContentPlanRequest 更新内容排期
type UpdateContentPlanRequest struct {
	Title       *string `json:"title"`
	Platform    *string `json:"platform" binding:"omitempty,oneof=instagram facebook tiktok whatsapp"`
	Caption     *string `json:"caption"`
	ScheduledAt *string `json:"scheduled_at"`
	Status      *string `json:"status" binding:"omitempty,oneof=draft scheduled posted"`
	ProductID   *int64  `json:"product_id"`
}

// GenerateCaptionRequest 生成社媒文案
type GenerateCaptionRequest struct {
	ProductID   int64  `json:"product_id" binding:"required"`
	Platform    string `json:"platform" binding:"required,oneof=instagram facebook tiktok whatsapp"`
	Instruction string `json:"instruction"` // 附加要求，如语气/话题标签
}

// GeneratedCaption AI 文案生成结果
type GeneratedCaption struct {
	Title    string   `json:"title"`
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}
