package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository 抽奖活动数据访问接口
type CampaignRepository interface {
	List(filter CampaignListFilter) ([]models.LuckyDrawCampaign, int64, error)
	GetByID(id uint) (*models.LuckyDrawCampaign, error)
	GetWithPrizes(id uint) (*models.LuckyDrawCampaign, error)
	CreateWithPrizes(campaign *models.LuckyDrawCampaign) error
	Update(campaign *models.LuckyDrawCampaign) error
	End(id uint) error
	Delete(id uint) error
}

// GormCampaignRepository GORM 实现
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建抽奖活动仓库
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// List 活动列表
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.LuckyDrawCampaign, int64, error) {
	var campaigns []models.LuckyDrawCampaign

	query := r.db.Model(&models.LuckyDrawCampaign{})
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.OnlyRunning {
		query = query.Where("is_ended = ?", false)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ?", like)
	}
	if filter.WithPrizes {
		query = query.Preload("Prizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// GetByID 根据 ID 获取活动
func (r *GormCampaignRepository) GetByID(id uint) (*models.LuckyDrawCampaign, error) {
	var campaign models.LuckyDrawCampaign
	if err := r.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// GetWithPrizes 根据 ID 获取活动及奖品，奖品按创建顺序排列
func (r *GormCampaignRepository) GetWithPrizes(id uint) (*models.LuckyDrawCampaign, error) {
	var campaign models.LuckyDrawCampaign
	if err := r.db.
		Preload("Prizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// CreateWithPrizes 创建活动与奖品，同一事务落库
func (r *GormCampaignRepository) CreateWithPrizes(campaign *models.LuckyDrawCampaign) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(campaign).Error
	})
}

// Update 更新活动
func (r *GormCampaignRepository) Update(campaign *models.LuckyDrawCampaign) error {
	return r.db.Save(campaign).Error
}

// End 结束活动，单向置位
func (r *GormCampaignRepository) End(id uint) error {
	result := r.db.Model(&models.LuckyDrawCampaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_ended": true,
			"end_date": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除活动
func (r *GormCampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.LuckyDrawCampaign{}, id).Error
}
