package models

import (
	"time"

	"gorm.io/gorm"
)

// Store 商家门店表
type Store struct {
	ID               uint           `gorm:"primarykey" json:"id"`                          // 主键
	Name             string         `gorm:"not null" json:"name"`                          // 门店名称
	URL              string         `gorm:"default:''" json:"url"`                         // 门店网址（会员卡链接前缀）
	WebhookAPIKey    string         `gorm:"uniqueIndex;not null" json:"-"`                 // WooCommerce 插件回调密钥
	OnSendAPIKey     string         `gorm:"default:''" json:"-"`                           // OnSend WhatsApp API 密钥
	WhatsAppInterval int            `gorm:"not null;default:30" json:"whatsapp_interval"`  // 群发间隔（秒，30 或 60）
	WooCommerceURL   string         `gorm:"default:''" json:"woocommerce_url"`             // WooCommerce 站点地址
	ConsumerKey      string         `gorm:"default:''" json:"-"`                           // WooCommerce consumer key
	ConsumerSecret   string         `gorm:"default:''" json:"-"`                           // WooCommerce consumer secret
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
