package main

import (
	"time"

	"github.com/loopiify-next/internal/config"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示门店
	store := models.Store{
		Name:             "Kopi Corner",
		URL:              "https://kopicorner.example.my",
		WebhookAPIKey:    uuid.NewString(),
		WhatsAppInterval: 30,
	}
	var existingStore models.Store
	if err := models.DB.Where("name = ?", store.Name).First(&existingStore).Error; err != nil {
		if err := models.DB.Create(&store).Error; err != nil {
			stdLog.Fatalf("Failed to create store: %v", err)
		}
		stdLog.Printf("Created store: %s (webhook key %s)", store.Name, store.WebhookAPIKey)
	} else {
		store = existingStore
		stdLog.Printf("Store already exists: %s", store.Name)
	}

	// 演示顾客
	now := time.Now()
	customers := []models.Customer{
		{
			StoreID:       store.ID,
			Phone:         "60123400001",
			FirstName:     "Mei",
			LastName:      "Ling",
			Email:         "mei@example.my",
			TotalSpent:    money("320.00"),
			OrdersCount:   6,
			LastOrderDate: timePtr(now.Add(-24 * time.Hour)),
		},
		{
			StoreID:       store.ID,
			Phone:         "60123400002",
			FirstName:     "Ahmad",
			LastName:      "Faiz",
			Email:         "ahmad@example.my",
			TotalSpent:    money("150.50"),
			OrdersCount:   3,
			LastOrderDate: timePtr(now.Add(-72 * time.Hour)),
		},
		{
			StoreID:       store.ID,
			Phone:         "60123400003",
			FirstName:     "Priya",
			LastName:      "Nair",
			Email:         "priya@example.my",
			TotalSpent:    money("45.00"),
			OrdersCount:   1,
			LastOrderDate: timePtr(now.Add(-240 * time.Hour)),
		},
	}
	for _, customer := range customers {
		var existing models.Customer
		if err := models.DB.Where("store_id = ? AND phone = ?", customer.StoreID, customer.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&customer).Error; err != nil {
				stdLog.Printf("Failed to create customer %s: %v", customer.Phone, err)
			} else {
				stdLog.Printf("Created customer: %s %s", customer.FirstName, customer.LastName)
			}
		} else {
			stdLog.Printf("Customer already exists: %s", customer.Phone)
		}
	}

	// 印花卡计划（默认生效）
	var stampCount int64
	models.DB.Model(&models.LoyaltyStampCard{}).Where("store_id = ?", store.ID).Count(&stampCount)
	if stampCount == 0 {
		stampCard := models.LoyaltyStampCard{
			StoreID:          store.ID,
			PromotionName:    "咖啡集章卡",
			Tagline:          "集满十杯，免费一杯",
			MinSpendPerStamp: money("15.00"),
			TotalStamps:      10,
			Reward:           "免费咖啡一杯",
			IsActive:         true,
		}
		if err := models.DB.Create(&stampCard).Error; err != nil {
			stdLog.Printf("Failed to create stamp card: %v", err)
		} else {
			stdLog.Printf("Created stamp card: %s", stampCard.PromotionName)
		}
	}

	// 积分计划（默认不生效，与印花卡互斥）
	var pointsCount int64
	models.DB.Model(&models.LoyaltyPointsConfig{}).Where("store_id = ?", store.ID).Count(&pointsCount)
	if pointsCount == 0 {
		pointsConfig := models.LoyaltyPointsConfig{
			StoreID:           store.ID,
			PointsPerRM:       money("2.00"),
			RewardDescription: "每 RM1 得 2 分",
		}
		if err := models.DB.Create(&pointsConfig).Error; err != nil {
			stdLog.Printf("Failed to create points config: %v", err)
		}
	}

	// 抽奖活动及奖品
	var campaignCount int64
	models.DB.Model(&models.LuckyDrawCampaign{}).Where("store_id = ?", store.ID).Count(&campaignCount)
	if campaignCount == 0 {
		campaign := models.LuckyDrawCampaign{
			StoreID:     store.ID,
			Name:        "周年庆幸运抽奖",
			Description: "累计消费满 RM100 即可参与",
			MinSpend:    money("100.00"),
			Prizes: []models.LuckyDrawPrize{
				{Name: "礼品盒", Quantity: 5, RemainingQuantity: 5, Probability: 10},
				{Name: "九折券", Quantity: 50, RemainingQuantity: 50, Probability: 40},
				{Name: "免费饮品券", Quantity: 100, RemainingQuantity: 100, Probability: 50},
			},
		}
		if err := models.DB.Create(&campaign).Error; err != nil {
			stdLog.Printf("Failed to create campaign: %v", err)
		} else {
			stdLog.Printf("Created campaign: %s", campaign.Name)
		}
	}

	// 跟进流程
	var flowCount int64
	models.DB.Model(&models.WhatsAppFlow{}).Where("store_id = ?", store.ID).Count(&flowCount)
	if flowCount == 0 {
		flow := models.WhatsAppFlow{
			StoreID:  store.ID,
			Name:     "新客欢迎流程",
			IsActive: true,
			Steps: []models.WhatsAppFlowStep{
				{StepOrder: 1, DelayHours: 0, Message: "Hi {first_name}, thanks for your order!"},
				{StepOrder: 2, DelayHours: 48, Message: "Hi {first_name}, show this message for 10% off your next visit!"},
			},
		}
		if err := models.DB.Create(&flow).Error; err != nil {
			stdLog.Printf("Failed to create flow: %v", err)
		} else {
			stdLog.Printf("Created flow: %s", flow.Name)
		}
	}

	stdLog.Printf("Seed completed")
}

func money(value string) models.Money {
	d, _ := decimal.NewFromString(value)
	return models.NewMoneyFromDecimal(d)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
