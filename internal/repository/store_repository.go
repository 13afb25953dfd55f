package repository

import (
	"errors"
	"strings"

	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// StoreRepository 门店数据访问接口
type StoreRepository interface {
	List(page, pageSize int) ([]models.Store, int64, error)
	GetByID(id uint) (*models.Store, error)
	GetByWebhookAPIKey(key string) (*models.Store, error)
	Create(store *models.Store) error
	Update(store *models.Store) error
	Delete(id uint) error
}

// GormStoreRepository GORM 实现
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建门店仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// List 门店列表
func (r *GormStoreRepository) List(page, pageSize int) ([]models.Store, int64, error) {
	var stores []models.Store
	query := r.db.Model(&models.Store{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)
	if err := query.Order("created_at DESC").Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// GetByID 根据 ID 获取门店
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetByWebhookAPIKey 根据回调密钥获取门店
func (r *GormStoreRepository) GetByWebhookAPIKey(key string) (*models.Store, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	var store models.Store
	if err := r.db.Where("webhook_api_key = ?", key).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// Create 创建门店
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}

// Update 更新门店
func (r *GormStoreRepository) Update(store *models.Store) error {
	return r.db.Save(store).Error
}

// Delete 删除门店
func (r *GormStoreRepository) Delete(id uint) error {
	return r.db.Delete(&models.Store{}, id).Error
}
