package repository

import (
	"errors"
	"time"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// WhatsAppJobRepository 消息任务数据访问接口
type WhatsAppJobRepository interface {
	List(filter JobListFilter) ([]models.WhatsAppJob, int64, error)
	GetByID(id uint) (*models.WhatsAppJob, error)
	Create(job *models.WhatsAppJob) error
	CreateBatch(jobs []models.WhatsAppJob) error
	ListDue(now time.Time, limit int) ([]models.WhatsAppJob, error)
	MarkScheduled(id uint) error
	MarkSent(id uint, sentAt time.Time) error
	MarkFailed(id uint, reason string) error
}

// GormWhatsAppJobRepository GORM 实现
type GormWhatsAppJobRepository struct {
	db *gorm.DB
}

// NewWhatsAppJobRepository 创建消息任务仓库
func NewWhatsAppJobRepository(db *gorm.DB) *GormWhatsAppJobRepository {
	return &GormWhatsAppJobRepository{db: db}
}

// List 消息任务列表
func (r *GormWhatsAppJobRepository) List(filter JobListFilter) ([]models.WhatsAppJob, int64, error) {
	var jobs []models.WhatsAppJob

	query := r.db.Model(&models.WhatsAppJob{})
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.FlowID > 0 {
		query = query.Where("flow_id = ?", filter.FlowID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("scheduled_for DESC").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// GetByID 根据 ID 获取消息任务
func (r *GormWhatsAppJobRepository) GetByID(id uint) (*models.WhatsAppJob, error) {
	var job models.WhatsAppJob
	if err := r.db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// Create 创建消息任务
func (r *GormWhatsAppJobRepository) Create(job *models.WhatsAppJob) error {
	return r.db.Create(job).Error
}

// CreateBatch 批量创建消息任务
func (r *GormWhatsAppJobRepository) CreateBatch(jobs []models.WhatsAppJob) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.Create(&jobs).Error
}

// ListDue 到期待发送的任务，按计划时间升序
func (r *GormWhatsAppJobRepository) ListDue(now time.Time, limit int) ([]models.WhatsAppJob, error) {
	var jobs []models.WhatsAppJob
	query := r.db.
		Where("status = ? AND scheduled_for <= ?", constants.JobStatusPending, now).
		Order("scheduled_for ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkScheduled 标记任务已入队，防止下个轮询周期重复投递
func (r *GormWhatsAppJobRepository) MarkScheduled(id uint) error {
	result := r.db.Model(&models.WhatsAppJob{}).
		Where("id = ? AND status = ?", id, constants.JobStatusPending).
		Update("status", constants.JobStatusScheduled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkSent 标记任务发送成功
func (r *GormWhatsAppJobRepository) MarkSent(id uint, sentAt time.Time) error {
	return r.db.Model(&models.WhatsAppJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  constants.JobStatusSent,
			"sent_at": sentAt,
		}).Error
}

// MarkFailed 标记任务发送失败并记录原因
func (r *GormWhatsAppJobRepository) MarkFailed(id uint, reason string) error {
	return r.db.Model(&models.WhatsAppJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        constants.JobStatusFailed,
			"error_message": reason,
		}).Error
}
