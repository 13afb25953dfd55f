package repository

import (
	"errors"

	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// WhatsAppFlowRepository 跟进流程数据访问接口
type WhatsAppFlowRepository interface {
	List(filter FlowListFilter) ([]models.WhatsAppFlow, int64, error)
	GetWithSteps(id uint) (*models.WhatsAppFlow, error)
	ListActiveWithSteps(storeID uint) ([]models.WhatsAppFlow, error)
	CreateWithSteps(flow *models.WhatsAppFlow) error
	Update(flow *models.WhatsAppFlow) error
	ReplaceSteps(flowID uint, steps []models.WhatsAppFlowStep) error
	Delete(id uint) error
}

// GormWhatsAppFlowRepository GORM 实现
type GormWhatsAppFlowRepository struct {
	db *gorm.DB
}

// NewWhatsAppFlowRepository 创建跟进流程仓库
func NewWhatsAppFlowRepository(db *gorm.DB) *GormWhatsAppFlowRepository {
	return &GormWhatsAppFlowRepository{db: db}
}

// List 流程列表
func (r *GormWhatsAppFlowRepository) List(filter FlowListFilter) ([]models.WhatsAppFlow, int64, error) {
	var flows []models.WhatsAppFlow

	query := r.db.Model(&models.WhatsAppFlow{})
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.WithSteps {
		query = query.Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&flows).Error; err != nil {
		return nil, 0, err
	}
	return flows, total, nil
}

// GetWithSteps 根据 ID 获取流程及步骤，步骤按顺序排列
func (r *GormWhatsAppFlowRepository) GetWithSteps(id uint) (*models.WhatsAppFlow, error) {
	var flow models.WhatsAppFlow
	if err := r.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		First(&flow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flow, nil
}

// ListActiveWithSteps 门店启用中的流程及步骤
func (r *GormWhatsAppFlowRepository) ListActiveWithSteps(storeID uint) ([]models.WhatsAppFlow, error) {
	var flows []models.WhatsAppFlow
	if err := r.db.
		Where("store_id = ? AND is_active = ?", storeID, true).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

// CreateWithSteps 创建流程与步骤，同一事务落库
func (r *GormWhatsAppFlowRepository) CreateWithSteps(flow *models.WhatsAppFlow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(flow).Error
	})
}

// Update 更新流程基础字段
func (r *GormWhatsAppFlowRepository) Update(flow *models.WhatsAppFlow) error {
	return r.db.Omit("Steps").Save(flow).Error
}

// ReplaceSteps 整体替换流程步骤
func (r *GormWhatsAppFlowRepository) ReplaceSteps(flowID uint, steps []models.WhatsAppFlowStep) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flow_id = ?", flowID).Delete(&models.WhatsAppFlowStep{}).Error; err != nil {
			return err
		}
		if len(steps) == 0 {
			return nil
		}
		for i := range steps {
			steps[i].ID = 0
			steps[i].FlowID = flowID
		}
		return tx.Create(&steps).Error
	})
}

// Delete 删除流程
func (r *GormWhatsAppFlowRepository) Delete(id uint) error {
	return r.db.Delete(&models.WhatsAppFlow{}, id).Error
}
