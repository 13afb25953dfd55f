package repository

import (
	"errors"

	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// LoyaltyCardRepository 会员卡数据访问接口
type LoyaltyCardRepository interface {
	GetByStoreCustomer(storeID, customerID uint) (*models.LoyaltyCard, error)
	GetOrCreate(storeID, customerID uint) (*models.LoyaltyCard, error)
	IncrementStamps(cardID uint, delta int) error
	AddPoints(cardID uint, delta int64) error
	WithTx(tx *gorm.DB) LoyaltyCardRepository
}

// GormLoyaltyCardRepository GORM 实现
type GormLoyaltyCardRepository struct {
	db *gorm.DB
}

// NewLoyaltyCardRepository 创建会员卡仓库
func NewLoyaltyCardRepository(db *gorm.DB) *GormLoyaltyCardRepository {
	return &GormLoyaltyCardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLoyaltyCardRepository) WithTx(tx *gorm.DB) LoyaltyCardRepository {
	if tx == nil {
		return r
	}
	return &GormLoyaltyCardRepository{db: tx}
}

// GetByStoreCustomer 根据门店与顾客获取会员卡
func (r *GormLoyaltyCardRepository) GetByStoreCustomer(storeID, customerID uint) (*models.LoyaltyCard, error) {
	var card models.LoyaltyCard
	if err := r.db.Where("store_id = ? AND customer_id = ?", storeID, customerID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// GetOrCreate 获取会员卡，不存在则创建空卡
func (r *GormLoyaltyCardRepository) GetOrCreate(storeID, customerID uint) (*models.LoyaltyCard, error) {
	if storeID == 0 || customerID == 0 {
		return nil, errors.New("invalid loyalty card owner")
	}
	card, err := r.GetByStoreCustomer(storeID, customerID)
	if err != nil {
		return nil, err
	}
	if card != nil {
		return card, nil
	}
	card = &models.LoyaltyCard{StoreID: storeID, CustomerID: customerID}
	if err := r.db.Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// IncrementStamps 原子累加印花
func (r *GormLoyaltyCardRepository) IncrementStamps(cardID uint, delta int) error {
	if cardID == 0 || delta <= 0 {
		return errors.New("invalid stamp increment params")
	}
	return r.db.Model(&models.LoyaltyCard{}).
		Where("id = ?", cardID).
		Update("stamps", gorm.Expr("stamps + ?", delta)).Error
}

// AddPoints 原子累加积分
func (r *GormLoyaltyCardRepository) AddPoints(cardID uint, delta int64) error {
	if cardID == 0 || delta <= 0 {
		return errors.New("invalid points increment params")
	}
	return r.db.Model(&models.LoyaltyCard{}).
		Where("id = ?", cardID).
		Update("points", gorm.Expr("points + ?", delta)).Error
}
