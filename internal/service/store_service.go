package service

import (
	"strings"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/repository"

	"github.com/google/uuid"
)

// StoreCreateInput 创建门店参数
type StoreCreateInput struct {
	Name             string `json:"name" binding:"required"`
	URL              string `json:"url"`
	OnSendAPIKey     string `json:"onsend_api_key"`
	WhatsAppInterval int    `json:"whatsapp_interval"`
	WooCommerceURL   string `json:"woocommerce_url"`
	ConsumerKey      string `json:"consumer_key"`
	ConsumerSecret   string `json:"consumer_secret"`
}

// StoreUpdateInput 更新门店参数，nil 字段保持不变
type StoreUpdateInput struct {
	Name             *string `json:"name"`
	URL              *string `json:"url"`
	OnSendAPIKey     *string `json:"onsend_api_key"`
	WhatsAppInterval *int    `json:"whatsapp_interval"`
	WooCommerceURL   *string `json:"woocommerce_url"`
	ConsumerKey      *string `json:"consumer_key"`
	ConsumerSecret   *string `json:"consumer_secret"`
}

// StoreService 门店管理服务
type StoreService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService 创建门店服务
func NewStoreService(storeRepo repository.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// Create 创建门店并生成回调密钥
func (s *StoreService) Create(input StoreCreateInput) (*models.Store, error) {
	interval := input.WhatsAppInterval
	if interval == 0 {
		interval = constants.BlastIntervalShortSeconds
	}
	if err := validateInterval(interval); err != nil {
		return nil, err
	}
	store := &models.Store{
		Name:             strings.TrimSpace(input.Name),
		URL:              strings.TrimSpace(input.URL),
		WebhookAPIKey:    uuid.NewString(),
		OnSendAPIKey:     strings.TrimSpace(input.OnSendAPIKey),
		WhatsAppInterval: interval,
		WooCommerceURL:   strings.TrimSpace(input.WooCommerceURL),
		ConsumerKey:      strings.TrimSpace(input.ConsumerKey),
		ConsumerSecret:   strings.TrimSpace(input.ConsumerSecret),
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	logger.Infow("store_created", "store_id", store.ID, "name", store.Name)
	return store, nil
}

// Update 更新门店配置
func (s *StoreService) Update(id uint, input StoreUpdateInput) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	if input.Name != nil {
		store.Name = strings.TrimSpace(*input.Name)
	}
	if input.URL != nil {
		store.URL = strings.TrimSpace(*input.URL)
	}
	if input.OnSendAPIKey != nil {
		store.OnSendAPIKey = strings.TrimSpace(*input.OnSendAPIKey)
	}
	if input.WhatsAppInterval != nil {
		if err := validateInterval(*input.WhatsAppInterval); err != nil {
			return nil, err
		}
		store.WhatsAppInterval = *input.WhatsAppInterval
	}
	if input.WooCommerceURL != nil {
		store.WooCommerceURL = strings.TrimSpace(*input.WooCommerceURL)
	}
	if input.ConsumerKey != nil {
		store.ConsumerKey = strings.TrimSpace(*input.ConsumerKey)
	}
	if input.ConsumerSecret != nil {
		store.ConsumerSecret = strings.TrimSpace(*input.ConsumerSecret)
	}
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// RotateWebhookKey 轮换回调密钥，旧密钥立即失效
func (s *StoreService) RotateWebhookKey(id uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	store.WebhookAPIKey = uuid.NewString()
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	logger.Infow("store_webhook_key_rotated", "store_id", store.ID)
	return store, nil
}

// List 门店列表
func (s *StoreService) List(page, pageSize int) ([]models.Store, int64, error) {
	return s.storeRepo.List(page, pageSize)
}

// Get 门店详情
func (s *StoreService) Get(id uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// Delete 删除门店
func (s *StoreService) Delete(id uint) error {
	return s.storeRepo.Delete(id)
}

// Authenticate 根据回调密钥识别门店
func (s *StoreService) Authenticate(webhookKey string) (*models.Store, error) {
	store, err := s.storeRepo.GetByWebhookAPIKey(webhookKey)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrWebhookKeyInvalid
	}
	return store, nil
}

func validateInterval(seconds int) error {
	if seconds != constants.BlastIntervalShortSeconds && seconds != constants.BlastIntervalLongSeconds {
		return ErrIntervalNotAllowed
	}
	return nil
}
