package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/queue"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/whatsapp"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeSender 记录发送调用的假 OnSend 客户端
type fakeSender struct {
	sent []whatsapp.Message
	keys []string
	fail bool
}

func (f *fakeSender) Send(_ context.Context, apiKey string, msg whatsapp.Message) error {
	if f.fail {
		return errors.New("onsend unavailable")
	}
	f.keys = append(f.keys, apiKey)
	f.sent = append(f.sent, msg)
	return nil
}

type serviceTestEnv struct {
	db           *gorm.DB
	sender       *fakeSender
	storeRepo    *repository.GormStoreRepository
	customerRepo *repository.GormCustomerRepository
	cardRepo     *repository.GormLoyaltyCardRepository
	programRepo  *repository.GormLoyaltyProgramRepository
	campaignRepo *repository.GormCampaignRepository
	prizeRepo    *repository.GormPrizeRepository
	entryRepo    *repository.GormEntryRepository
	flowRepo     *repository.GormWhatsAppFlowRepository
	jobRepo      *repository.GormWhatsAppJobRepository
	notification *NotificationService
}

// serviceTestDBSeq 为每个测试生成独立的内存数据库，避免用例间状态泄漏
var serviceTestDBSeq atomic.Int64

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", serviceTestDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Store{},
		&models.Customer{},
		&models.LoyaltyCard{},
		&models.LoyaltyStampCard{},
		&models.LoyaltyPointsConfig{},
		&models.LuckyDrawCampaign{},
		&models.LuckyDrawPrize{},
		&models.LuckyDrawEntry{},
		&models.WhatsAppFlow{},
		&models.WhatsAppFlowStep{},
		&models.WhatsAppJob{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	env := &serviceTestEnv{
		db:           db,
		sender:       &fakeSender{},
		storeRepo:    repository.NewStoreRepository(db),
		customerRepo: repository.NewCustomerRepository(db),
		cardRepo:     repository.NewLoyaltyCardRepository(db),
		programRepo:  repository.NewLoyaltyProgramRepository(db),
		campaignRepo: repository.NewCampaignRepository(db),
		prizeRepo:    repository.NewPrizeRepository(db),
		entryRepo:    repository.NewEntryRepository(db),
		flowRepo:     repository.NewWhatsAppFlowRepository(db),
		jobRepo:      repository.NewWhatsAppJobRepository(db),
	}

	// 队列未启用时通知走同步发送，测试里直接断言 fakeSender
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	env.notification = NewNotificationService(env.storeRepo, env.customerRepo, env.jobRepo, queueClient, env.sender)
	return env
}

func (env *serviceTestEnv) createStore(t *testing.T, name string) *models.Store {
	t.Helper()
	store := &models.Store{
		Name:             name,
		WebhookAPIKey:    name + "-webhook-key",
		OnSendAPIKey:     name + "-onsend-key",
		WhatsAppInterval: 30,
	}
	if err := env.storeRepo.Create(store); err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	return store
}

func (env *serviceTestEnv) createCustomer(t *testing.T, storeID uint, phone string, totalSpent int64) *models.Customer {
	t.Helper()
	now := time.Now()
	customer := &models.Customer{
		StoreID:       storeID,
		Phone:         phone,
		FirstName:     "Mei",
		LastName:      "Ling",
		TotalSpent:    models.NewMoneyFromDecimal(decimal.NewFromInt(totalSpent)),
		LastOrderDate: &now,
	}
	if err := env.customerRepo.Create(customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}
