package repository

import (
	"errors"

	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// PrizeRepository 奖品数据访问接口
type PrizeRepository interface {
	GetByID(id uint) (*models.LuckyDrawPrize, error)
	ListByCampaign(campaignID uint) ([]models.LuckyDrawPrize, error)
	TryDecrement(prizeID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PrizeRepository
}

// GormPrizeRepository GORM 实现
type GormPrizeRepository struct {
	db *gorm.DB
}

// NewPrizeRepository 创建奖品仓库
func NewPrizeRepository(db *gorm.DB) *GormPrizeRepository {
	return &GormPrizeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPrizeRepository) WithTx(tx *gorm.DB) PrizeRepository {
	if tx == nil {
		return r
	}
	return &GormPrizeRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPrizeRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 根据 ID 获取奖品
func (r *GormPrizeRepository) GetByID(id uint) (*models.LuckyDrawPrize, error) {
	var prize models.LuckyDrawPrize
	if err := r.db.First(&prize, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prize, nil
}

// ListByCampaign 活动奖品列表，按创建顺序排列
func (r *GormPrizeRepository) ListByCampaign(campaignID uint) ([]models.LuckyDrawPrize, error) {
	var prizes []models.LuckyDrawPrize
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&prizes).Error; err != nil {
		return nil, err
	}
	return prizes, nil
}

// TryDecrement 条件扣减剩余库存。
// 仅在 remaining_quantity > 0 时扣减一件，返回受影响行数，
// 返回 0 表示库存已被并发抽干。
func (r *GormPrizeRepository) TryDecrement(prizeID uint) (int64, error) {
	if prizeID == 0 {
		return 0, errors.New("invalid prize id")
	}
	result := r.db.Model(&models.LuckyDrawPrize{}).
		Where("id = ? AND remaining_quantity > 0", prizeID).
		Update("remaining_quantity", gorm.Expr("remaining_quantity - 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
