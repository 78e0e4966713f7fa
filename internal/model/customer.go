package model

// Customer 商家客户
type Customer struct {
	TenantModel

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:30;index" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Note  string `gorm:"type:text" json:"note"`

	// 累计消费 (分)，下单时累加
	TotalSpent int64 `gorm:"default:0" json:"total_spent"`
	OrderCount int   `gorm:"default:0" json:"order_count"`
}

func (Customer) TableName() string { return "customers" }
