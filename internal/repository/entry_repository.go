package repository

import (
	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// EntryRepository 抽奖记录数据访问接口
type EntryRepository interface {
	List(filter EntryListFilter) ([]models.LuckyDrawEntry, int64, error)
	Create(entry *models.LuckyDrawEntry) error
	CountByCampaign(campaignID uint) (int64, error)
	WithTx(tx *gorm.DB) EntryRepository
}

// GormEntryRepository GORM 实现
type GormEntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository 创建抽奖记录仓库
func NewEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEntryRepository) WithTx(tx *gorm.DB) EntryRepository {
	if tx == nil {
		return r
	}
	return &GormEntryRepository{db: tx}
}

// List 抽奖记录列表
func (r *GormEntryRepository) List(filter EntryListFilter) ([]models.LuckyDrawEntry, int64, error) {
	var entries []models.LuckyDrawEntry

	query := r.db.Model(&models.LuckyDrawEntry{})
	if filter.CampaignID > 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Create 写入抽奖记录
func (r *GormEntryRepository) Create(entry *models.LuckyDrawEntry) error {
	return r.db.Create(entry).Error
}

// CountByCampaign 统计活动抽奖次数
func (r *GormEntryRepository) CountByCampaign(campaignID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.LuckyDrawEntry{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
