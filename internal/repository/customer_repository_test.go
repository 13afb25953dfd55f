package repository

import (
	"testing"
	"time"

	"github.com/loopiify-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCustomerRepositoryTest(t *testing.T) (*GormCustomerRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		t.Fatalf("migrate customer failed: %v", err)
	}
	return NewCustomerRepository(db), db
}

func createCustomer(t *testing.T, repo *GormCustomerRepository, storeID uint, phone string, totalSpent int64, lastOrder time.Time) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		StoreID:       storeID,
		Phone:         phone,
		FirstName:     "测试",
		TotalSpent:    models.NewMoneyFromDecimal(decimal.NewFromInt(totalSpent)),
		OrdersCount:   1,
		LastOrderDate: &lastOrder,
	}
	if err := repo.Create(customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return customer
}

func TestListEligibleFiltersByMinSpendAndOrdersByRecency(t *testing.T) {
	repo, _ := setupCustomerRepositoryTest(t)
	now := time.Now()

	older := createCustomer(t, repo, 10, "60123000001", 200, now.Add(-48*time.Hour))
	newer := createCustomer(t, repo, 10, "60123000002", 150, now.Add(-1*time.Hour))
	createCustomer(t, repo, 10, "60123000003", 40, now)              // 低于门槛
	createCustomer(t, repo, 11, "60123000004", 500, now)             // 其他门店
	exact := createCustomer(t, repo, 10, "60123000005", 100, now.Add(-24*time.Hour))

	eligible, err := repo.ListEligible(10, models.NewMoneyFromDecimal(decimal.NewFromInt(100)))
	if err != nil {
		t.Fatalf("list eligible failed: %v", err)
	}
	if len(eligible) != 3 {
		t.Fatalf("eligible count want 3 got %d", len(eligible))
	}
	if eligible[0].ID != newer.ID {
		t.Fatalf("first eligible want id=%d got id=%d", newer.ID, eligible[0].ID)
	}
	if eligible[1].ID != exact.ID {
		t.Fatalf("second eligible want id=%d got id=%d", exact.ID, eligible[1].ID)
	}
	if eligible[2].ID != older.ID {
		t.Fatalf("third eligible want id=%d got id=%d", older.ID, eligible[2].ID)
	}
}

func TestApplyOrderAggregatesAccumulates(t *testing.T) {
	repo, db := setupCustomerRepositoryTest(t)
	first := time.Now().Add(-72 * time.Hour)
	customer := createCustomer(t, repo, 20, "60124000001", 80, first)

	orderDate := time.Now()
	amount := models.NewMoneyFromDecimal(decimal.NewFromFloat(45.50))
	if err := repo.ApplyOrderAggregates(customer.ID, amount, orderDate); err != nil {
		t.Fatalf("apply aggregates failed: %v", err)
	}
	if err := repo.ApplyOrderAggregates(customer.ID, amount, orderDate); err != nil {
		t.Fatalf("apply aggregates twice failed: %v", err)
	}

	var got models.Customer
	if err := db.First(&got, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if got.TotalSpent.String() != "171.00" {
		t.Fatalf("total spent want 171.00 got %s", got.TotalSpent.String())
	}
	if got.OrdersCount != 3 {
		t.Fatalf("orders count want 3 got %d", got.OrdersCount)
	}
	if got.LastOrderAmount.String() != "45.50" {
		t.Fatalf("last order amount want 45.50 got %s", got.LastOrderAmount.String())
	}
	if got.LastOrderDate == nil || got.LastOrderDate.Unix() != orderDate.Unix() {
		t.Fatalf("last order date not updated")
	}
}

func TestGetByStorePhoneScopesToStore(t *testing.T) {
	repo, _ := setupCustomerRepositoryTest(t)
	now := time.Now()
	created := createCustomer(t, repo, 30, "60125000001", 60, now)
	createCustomer(t, repo, 31, "60125000001", 60, now)

	got, err := repo.GetByStorePhone(30, "60125000001")
	if err != nil {
		t.Fatalf("get by store phone failed: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("get by store phone returned wrong customer")
	}

	missing, err := repo.GetByStorePhone(30, "60125999999")
	if err != nil {
		t.Fatalf("get missing phone failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expect nil for unknown phone")
	}
}
