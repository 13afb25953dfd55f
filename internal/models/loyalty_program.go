package models

import (
	"time"

	"gorm.io/gorm"
)

// LoyaltyStampCard 印花卡计划配置（每店至多一条生效）
type LoyaltyStampCard struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                             // 主键
	StoreID          uint           `gorm:"index;not null" json:"store_id"`                                   // 门店ID
	PromotionName    string         `gorm:"not null" json:"promotion_name"`                                   // 活动名称
	Tagline          string         `gorm:"default:''" json:"tagline"`                                        // 宣传语
	MinSpendPerStamp Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_spend_per_stamp"` // 单枚印花最低消费
	TotalStamps      int            `gorm:"not null;default:10" json:"total_stamps"`                          // 集满阈值
	Reward           string         `gorm:"default:''" json:"reward"`                                         // 奖励描述
	Terms            string         `gorm:"default:''" json:"terms"`                                          // 条款
	IsActive         bool           `gorm:"not null;default:false" json:"is_active"`                          // 是否生效
	StartDate        *time.Time     `gorm:"index" json:"start_date"`                                          // 生效时间
	EndDate          *time.Time     `gorm:"index" json:"end_date"`                                            // 失效时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                          // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                   // 软删除时间
}

// TableName 指定表名
func (LoyaltyStampCard) TableName() string {
	return "loyalty_stamp_cards"
}

// LoyaltyPointsConfig 积分计划配置（每店至多一条生效）
type LoyaltyPointsConfig struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                    // 主键
	StoreID           uint           `gorm:"index;not null" json:"store_id"`                          // 门店ID
	PointsPerRM       Money          `gorm:"type:decimal(20,2);not null;default:1" json:"points_per_rm"` // 每 RM 积分数
	RewardDescription string         `gorm:"default:''" json:"reward_description"`                    // 奖励描述
	Terms             string         `gorm:"default:''" json:"terms"`                                 // 条款
	MinSpend          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_spend"`  // 最低消费门槛
	IsActive          bool           `gorm:"not null;default:false" json:"is_active"`                 // 是否生效
	StartDate         *time.Time     `gorm:"index" json:"start_date"`                                 // 生效时间
	EndDate           *time.Time     `gorm:"index" json:"end_date"`                                   // 失效时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (LoyaltyPointsConfig) TableName() string {
	return "loyalty_points_configs"
}
