package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/loopiify-next/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository 顾客数据访问接口
type CustomerRepository interface {
	List(filter CustomerListFilter) ([]models.Customer, int64, error)
	GetByID(id uint) (*models.Customer, error)
	GetByStorePhone(storeID uint, phone string) (*models.Customer, error)
	ListEligible(storeID uint, minSpend models.Money) ([]models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	ApplyOrderAggregates(customerID uint, amount models.Money, orderDate time.Time) error
	WithTx(tx *gorm.DB) CustomerRepository
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// List 顾客列表
func (r *GormCustomerRepository) List(filter CustomerListFilter) ([]models.Customer, int64, error) {
	var customers []models.Customer

	query := r.db.Model(&models.Customer{})
	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("phone LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like, like)
	}
	if filter.MinSpend != nil {
		query = query.Where("total_spent >= ?", *filter.MinSpend)
	}
	if filter.OrderedFrom != nil {
		query = query.Where("last_order_date >= ?", *filter.OrderedFrom)
	}
	if filter.OrderedTo != nil {
		query = query.Where("last_order_date <= ?", *filter.OrderedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("last_order_date DESC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// GetByID 根据 ID 获取顾客
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByStorePhone 根据门店与手机号获取顾客
func (r *GormCustomerRepository) GetByStorePhone(storeID uint, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("store_id = ? AND phone = ?", storeID, phone).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// ListEligible 按累计消费门槛筛选顾客，按最近下单时间倒序
func (r *GormCustomerRepository) ListEligible(storeID uint, minSpend models.Money) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.
		Where("store_id = ? AND total_spent >= ?", storeID, minSpend).
		Order("last_order_date DESC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Create 创建顾客
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update 更新顾客
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// ApplyOrderAggregates 累加一笔已完成订单的消费统计
func (r *GormCustomerRepository) ApplyOrderAggregates(customerID uint, amount models.Money, orderDate time.Time) error {
	if customerID == 0 {
		return errors.New("invalid customer id")
	}
	return r.db.Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"total_spent":       gorm.Expr("total_spent + ?", amount),
			"orders_count":      gorm.Expr("orders_count + 1"),
			"last_order_amount": amount,
			"last_order_date":   orderDate,
		}).Error
}
