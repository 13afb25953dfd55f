package models

import (
	"time"

	"gorm.io/gorm"
)

// WhatsAppFlow 跟进消息流程表
type WhatsAppFlow struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	StoreID   uint           `gorm:"index;not null" json:"store_id"`         // 门店ID
	Name      string         `gorm:"not null" json:"name"`                   // 流程名称
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"` // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	Steps []WhatsAppFlowStep `gorm:"foreignKey:FlowID;constraint:OnDelete:CASCADE" json:"steps,omitempty"` // 步骤
}

// TableName 指定表名
func (WhatsAppFlow) TableName() string {
	return "whatsapp_flows"
}

// WhatsAppFlowStep 跟进流程步骤表
type WhatsAppFlowStep struct {
	ID         uint      `gorm:"primarykey" json:"id"`             // 主键
	FlowID     uint      `gorm:"index;not null" json:"flow_id"`    // 流程ID
	StepOrder  int       `gorm:"not null" json:"step_order"`       // 步骤顺序
	DelayHours int       `gorm:"not null;default:0" json:"delay_hours"` // 延迟小时数
	Message    string    `gorm:"not null" json:"message"`          // 消息模板
	CreatedAt  time.Time `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`          // 更新时间
}

// TableName 指定表名
func (WhatsAppFlowStep) TableName() string {
	return "whatsapp_flow_steps"
}

// WhatsAppJob 待发送消息任务表
type WhatsAppJob struct {
	ID           uint       `gorm:"primarykey" json:"id"`                        // 主键
	StoreID      uint       `gorm:"index;not null" json:"store_id"`              // 门店ID
	CustomerID   uint       `gorm:"index;not null" json:"customer_id"`           // 顾客ID
	FlowID       *uint      `gorm:"index" json:"flow_id,omitempty"`              // 来源流程ID（群发为空）
	Status       string     `gorm:"index;not null;default:'pending'" json:"status"` // pending/scheduled/sent/failed
	Message      string     `gorm:"not null" json:"message"`                     // 渲染后的消息内容
	ScheduledFor time.Time  `gorm:"index;not null" json:"scheduled_for"`         // 计划发送时间
	SentAt       *time.Time `json:"sent_at,omitempty"`                           // 实际发送时间
	ErrorMessage string     `gorm:"default:''" json:"error_message,omitempty"`   // 失败原因
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt    time.Time  `gorm:"index" json:"updated_at"`                     // 更新时间
}

// TableName 指定表名
func (WhatsAppJob) TableName() string {
	return "whatsapp_jobs"
}
