package models

import (
	"time"
)

// LoyaltyCard 会员卡表，每 (customer, store) 一张，首次合格消费时懒创建
type LoyaltyCard struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                                // 主键
	StoreID    uint      `gorm:"uniqueIndex:idx_loyalty_cards_store_customer;not null" json:"store_id"`    // 门店ID
	CustomerID uint      `gorm:"uniqueIndex:idx_loyalty_cards_store_customer;not null" json:"customer_id"` // 顾客ID
	Stamps     int       `gorm:"not null;default:0" json:"stamps"`                                    // 印花数（单调递增，可超出阈值）
	Points     int64     `gorm:"not null;default:0" json:"points"`                                    // 积分（单调递增）
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                             // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (LoyaltyCard) TableName() string {
	return "loyalty_cards"
}
