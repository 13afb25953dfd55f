package repository

import (
	"errors"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// Program 门店当前生效的会员计划，Kind 决定哪个分支非空
type Program struct {
	Kind   string                      // stamps / points / none
	Stamps *models.LoyaltyStampCard    // Kind 为 stamps 时非空
	Points *models.LoyaltyPointsConfig // Kind 为 points 时非空
}

// LoyaltyProgramRepository 会员计划配置数据访问接口
type LoyaltyProgramRepository interface {
	GetActiveProgram(storeID uint) (Program, error)
	GetStampCard(id uint) (*models.LoyaltyStampCard, error)
	GetPointsConfig(id uint) (*models.LoyaltyPointsConfig, error)
	ListStampCards(storeID uint) ([]models.LoyaltyStampCard, error)
	ListPointsConfigs(storeID uint) ([]models.LoyaltyPointsConfig, error)
	CreateStampCard(card *models.LoyaltyStampCard) error
	CreatePointsConfig(config *models.LoyaltyPointsConfig) error
	UpdateStampCard(card *models.LoyaltyStampCard) error
	UpdatePointsConfig(config *models.LoyaltyPointsConfig) error
	ActivateStampCard(storeID, id uint) error
	ActivatePointsConfig(storeID, id uint) error
	DeactivateAll(storeID uint) error
}

// GormLoyaltyProgramRepository GORM 实现
type GormLoyaltyProgramRepository struct {
	db *gorm.DB
}

// NewLoyaltyProgramRepository 创建会员计划仓库
func NewLoyaltyProgramRepository(db *gorm.DB) *GormLoyaltyProgramRepository {
	return &GormLoyaltyProgramRepository{db: db}
}

// GetActiveProgram 获取门店当前生效的会员计划。
// 印花卡优先于积分，两者都未配置时返回 none。
func (r *GormLoyaltyProgramRepository) GetActiveProgram(storeID uint) (Program, error) {
	var stamp models.LoyaltyStampCard
	err := r.db.Where("store_id = ? AND is_active = ?", storeID, true).
		Order("updated_at DESC").First(&stamp).Error
	if err == nil {
		return Program{Kind: constants.ProgramKindStamps, Stamps: &stamp}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Program{}, err
	}

	var points models.LoyaltyPointsConfig
	err = r.db.Where("store_id = ? AND is_active = ?", storeID, true).
		Order("updated_at DESC").First(&points).Error
	if err == nil {
		return Program{Kind: constants.ProgramKindPoints, Points: &points}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Program{}, err
	}

	return Program{Kind: constants.ProgramKindNone}, nil
}

// GetStampCard 根据 ID 获取印花卡配置
func (r *GormLoyaltyProgramRepository) GetStampCard(id uint) (*models.LoyaltyStampCard, error) {
	var card models.LoyaltyStampCard
	if err := r.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

// GetPointsConfig 根据 ID 获取积分配置
func (r *GormLoyaltyProgramRepository) GetPointsConfig(id uint) (*models.LoyaltyPointsConfig, error) {
	var config models.LoyaltyPointsConfig
	if err := r.db.First(&config, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// ListStampCards 门店的印花卡配置列表
func (r *GormLoyaltyProgramRepository) ListStampCards(storeID uint) ([]models.LoyaltyStampCard, error) {
	var cards []models.LoyaltyStampCard
	if err := r.db.Where("store_id = ?", storeID).Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ListPointsConfigs 门店的积分配置列表
func (r *GormLoyaltyProgramRepository) ListPointsConfigs(storeID uint) ([]models.LoyaltyPointsConfig, error) {
	var configs []models.LoyaltyPointsConfig
	if err := r.db.Where("store_id = ?", storeID).Order("created_at DESC").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// CreateStampCard 创建印花卡配置
func (r *GormLoyaltyProgramRepository) CreateStampCard(card *models.LoyaltyStampCard) error {
	return r.db.Create(card).Error
}

// CreatePointsConfig 创建积分配置
func (r *GormLoyaltyProgramRepository) CreatePointsConfig(config *models.LoyaltyPointsConfig) error {
	return r.db.Create(config).Error
}

// UpdateStampCard 更新印花卡配置
func (r *GormLoyaltyProgramRepository) UpdateStampCard(card *models.LoyaltyStampCard) error {
	return r.db.Save(card).Error
}

// UpdatePointsConfig 更新积分配置
func (r *GormLoyaltyProgramRepository) UpdatePointsConfig(config *models.LoyaltyPointsConfig) error {
	return r.db.Save(config).Error
}

// ActivateStampCard 启用指定印花卡配置，同时停用门店其余计划
func (r *GormLoyaltyProgramRepository) ActivateStampCard(storeID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deactivateAllPrograms(tx, storeID); err != nil {
			return err
		}
		result := tx.Model(&models.LoyaltyStampCard{}).
			Where("id = ? AND store_id = ?", id, storeID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ActivatePointsConfig 启用指定积分配置，同时停用门店其余计划
func (r *GormLoyaltyProgramRepository) ActivatePointsConfig(storeID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deactivateAllPrograms(tx, storeID); err != nil {
			return err
		}
		result := tx.Model(&models.LoyaltyPointsConfig{}).
			Where("id = ? AND store_id = ?", id, storeID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeactivateAll 停用门店的全部会员计划
func (r *GormLoyaltyProgramRepository) DeactivateAll(storeID uint) error {
	return deactivateAllPrograms(r.db, storeID)
}

func deactivateAllPrograms(tx *gorm.DB, storeID uint) error {
	if err := tx.Model(&models.LoyaltyStampCard{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Update("is_active", false).Error; err != nil {
		return err
	}
	return tx.Model(&models.LoyaltyPointsConfig{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Update("is_active", false).Error
}
