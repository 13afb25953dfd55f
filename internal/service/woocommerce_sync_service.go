package service

import (
	"context"
	"strings"

	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/whatsapp"
	"github.com/loopiify-next/internal/woocommerce"
)

// SyncResult WooCommerce 历史订单同步结果
type SyncResult struct {
	Pages            int `json:"pages"`
	Orders           int `json:"orders"`
	CustomersCreated int `json:"customers_created"`
	CustomersUpdated int `json:"customers_updated"`
	Skipped          int `json:"skipped"`
}

// WooCommerceSyncService 从 WooCommerce REST API 分页导入历史订单。
// 导入只重建顾客画像与消费统计，不触发累计和通知。
type WooCommerceSyncService struct {
	storeRepo    repository.StoreRepository
	customerRepo repository.CustomerRepository
	client       woocommerce.OrderLister
}

// NewWooCommerceSyncService 创建同步服务
func NewWooCommerceSyncService(
	storeRepo repository.StoreRepository,
	customerRepo repository.CustomerRepository,
	client woocommerce.OrderLister,
) *WooCommerceSyncService {
	return &WooCommerceSyncService{
		storeRepo:    storeRepo,
		customerRepo: customerRepo,
		client:       client,
	}
}

// SyncStore 同步一个门店的全部已完成订单
func (s *WooCommerceSyncService) SyncStore(ctx context.Context, storeID uint) (*SyncResult, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	creds := woocommerce.Credentials{
		BaseURL:        store.WooCommerceURL,
		ConsumerKey:    store.ConsumerKey,
		ConsumerSecret: store.ConsumerSecret,
	}

	result := &SyncResult{}
	for page := 1; ; page++ {
		orders, err := s.client.ListCompletedOrders(ctx, creds, page)
		if err != nil {
			return nil, err
		}
		if len(orders) == 0 {
			break
		}
		result.Pages++
		result.Orders += len(orders)

		for i := range orders {
			if err := s.importOrder(store, &orders[i], result); err != nil {
				return nil, err
			}
		}
		if len(orders) < s.client.PageSize() {
			break
		}
	}

	logger.Infow("woocommerce_sync_completed",
		"store_id", store.ID,
		"pages", result.Pages,
		"orders", result.Orders,
		"customers_created", result.CustomersCreated,
		"customers_updated", result.CustomersUpdated,
		"skipped", result.Skipped,
	)
	return result, nil
}

// importOrder 导入单笔订单，无法关联手机号的订单跳过
func (s *WooCommerceSyncService) importOrder(store *models.Store, order *woocommerce.Order, result *SyncResult) error {
	phone := whatsapp.NormalizePhone(order.Billing.Phone)
	if phone == "" {
		result.Skipped++
		return nil
	}
	total, err := models.NewMoneyFromString(strings.TrimSpace(order.Total))
	if err != nil {
		result.Skipped++
		return nil
	}

	customer, err := s.customerRepo.GetByStorePhone(store.ID, phone)
	if err != nil {
		return err
	}
	if customer == nil {
		customer = &models.Customer{
			StoreID:      store.ID,
			Phone:        phone,
			FirstName:    strings.TrimSpace(order.Billing.FirstName),
			LastName:     strings.TrimSpace(order.Billing.LastName),
			Email:        strings.TrimSpace(order.Billing.Email),
			AddressLine1: strings.TrimSpace(order.Billing.Address1),
			AddressLine2: strings.TrimSpace(order.Billing.Address2),
			City:         strings.TrimSpace(order.Billing.City),
			State:        strings.TrimSpace(order.Billing.State),
			Postcode:     strings.TrimSpace(order.Billing.Postcode),
			Country:      strings.TrimSpace(order.Billing.Country),
		}
		if err := s.customerRepo.Create(customer); err != nil {
			return err
		}
		result.CustomersCreated++
	} else {
		result.CustomersUpdated++
	}
	return s.customerRepo.ApplyOrderAggregates(customer.ID, total, order.DateCreated.Time)
}
