package models

import (
	"time"

	"gorm.io/gorm"
)

// LuckyDrawCampaign 抽奖活动表
type LuckyDrawCampaign struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                   // 主键
	StoreID       uint           `gorm:"index;not null" json:"store_id"`                         // 门店ID
	Name          string         `gorm:"not null" json:"name"`                                   // 活动名称
	Description   string         `gorm:"default:''" json:"description"`                          // 活动描述
	MinSpend      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_spend"` // 参与最低累计消费
	WinnerMessage string         `gorm:"default:''" json:"winner_message"`                       // 中奖消息模板
	StartDate     *time.Time     `gorm:"index" json:"start_date"`                                // 开始时间
	EndDate       *time.Time     `gorm:"index" json:"end_date"`                                  // 结束时间
	IsEnded       bool           `gorm:"not null;default:false" json:"is_ended"`                 // 是否已结束（单向置位）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	Prizes []LuckyDrawPrize `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"prizes,omitempty"` // 奖品
}

// TableName 指定表名
func (LuckyDrawCampaign) TableName() string {
	return "lucky_draw_campaigns"
}

// LuckyDrawPrize 抽奖奖品表
type LuckyDrawPrize struct {
	ID                uint      `gorm:"primarykey" json:"id"`                          // 主键
	CampaignID        uint      `gorm:"index;not null" json:"campaign_id"`             // 活动ID
	Name              string    `gorm:"not null" json:"name"`                          // 奖品名称
	Description       string    `gorm:"default:''" json:"description"`                 // 奖品描述
	Quantity          int       `gorm:"not null" json:"quantity"`                      // 总量（创建后不变）
	RemainingQuantity int       `gorm:"not null" json:"remaining_quantity"`            // 剩余量（单调递减，受条件更新保护）
	Probability       float64   `gorm:"not null" json:"probability"`                   // 中奖概率（0-100，同活动合计 100）
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt         time.Time `gorm:"index" json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (LuckyDrawPrize) TableName() string {
	return "lucky_draw_prizes"
}

// LuckyDrawEntry 抽奖记录表（一次成功抽奖一条，不可变）
type LuckyDrawEntry struct {
	ID         uint      `gorm:"primarykey" json:"id"`              // 主键
	CampaignID uint      `gorm:"index;not null" json:"campaign_id"` // 活动ID
	CustomerID uint      `gorm:"index;not null" json:"customer_id"` // 顾客ID
	PrizeID    uint      `gorm:"index;not null" json:"prize_id"`    // 奖品ID
	IsWinner   bool      `gorm:"not null;default:true" json:"is_winner"` // 是否中奖
	CreatedAt  time.Time `gorm:"index" json:"created_at"`           // 抽奖时间
}

// TableName 指定表名
func (LuckyDrawEntry) TableName() string {
	return "lucky_draw_entries"
}
