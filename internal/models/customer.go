package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 顾客表，按 (store_id, phone) 去重
type Customer struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                           // 主键
	StoreID         uint           `gorm:"uniqueIndex:idx_customers_store_phone;not null" json:"store_id"` // 门店ID
	Phone           string         `gorm:"uniqueIndex:idx_customers_store_phone;not null" json:"phone"`    // 手机号（去重键，已归一化）
	FirstName       string         `gorm:"default:''" json:"first_name"`                                   // 名
	LastName        string         `gorm:"default:''" json:"last_name"`                                    // 姓
	Email           string         `gorm:"index" json:"email"`                                             // 邮箱
	AddressLine1    string         `gorm:"default:''" json:"address_line1"`                                // 地址1
	AddressLine2    string         `gorm:"default:''" json:"address_line2"`                                // 地址2
	City            string         `gorm:"default:''" json:"city"`                                         // 城市
	State           string         `gorm:"default:''" json:"state"`                                        // 州/省
	Postcode        string         `gorm:"default:''" json:"postcode"`                                     // 邮编
	Country         string         `gorm:"default:''" json:"country"`                                      // 国家
	TotalSpent      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_spent"`       // 累计消费
	OrdersCount     int            `gorm:"not null;default:0" json:"orders_count"`                         // 订单数
	LastOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"last_order_amount"` // 最近一单金额
	LastOrderDate   *time.Time     `gorm:"index" json:"last_order_date"`                                   // 最近下单时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                        // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
