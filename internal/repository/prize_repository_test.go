package repository

import (
	"testing"

	"github.com/loopiify-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPrizeRepositoryTest(t *testing.T) (*GormPrizeRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.LuckyDrawCampaign{}, &models.LuckyDrawPrize{}); err != nil {
		t.Fatalf("migrate campaign/prize failed: %v", err)
	}
	return NewPrizeRepository(db), db
}

func createCampaignWithPrize(t *testing.T, db *gorm.DB, remaining int) *models.LuckyDrawPrize {
	t.Helper()
	campaign := &models.LuckyDrawCampaign{
		StoreID:  1,
		Name:     "周年庆抽奖",
		MinSpend: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	prize := &models.LuckyDrawPrize{
		CampaignID:        campaign.ID,
		Name:              "免费咖啡",
		Quantity:          remaining,
		RemainingQuantity: remaining,
		Probability:       100,
	}
	if err := db.Create(prize).Error; err != nil {
		t.Fatalf("create prize failed: %v", err)
	}
	return prize
}

func TestTryDecrementStopsAtZero(t *testing.T) {
	repo, db := setupPrizeRepositoryTest(t)
	prize := createCampaignWithPrize(t, db, 2)

	for i := 0; i < 2; i++ {
		affected, err := repo.TryDecrement(prize.ID)
		if err != nil {
			t.Fatalf("decrement %d failed: %v", i, err)
		}
		if affected != 1 {
			t.Fatalf("decrement %d affected want 1 got %d", i, affected)
		}
	}

	affected, err := repo.TryDecrement(prize.ID)
	if err != nil {
		t.Fatalf("decrement exhausted failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement exhausted affected want 0 got %d", affected)
	}

	var got models.LuckyDrawPrize
	if err := db.First(&got, prize.ID).Error; err != nil {
		t.Fatalf("reload prize failed: %v", err)
	}
	if got.RemainingQuantity != 0 {
		t.Fatalf("remaining want 0 got %d", got.RemainingQuantity)
	}
}

func TestTryDecrementNeverOversells(t *testing.T) {
	repo, db := setupPrizeRepositoryTest(t)
	prize := createCampaignWithPrize(t, db, 5)

	var wins int64
	for i := 0; i < 20; i++ {
		affected, err := repo.TryDecrement(prize.ID)
		if err != nil {
			t.Fatalf("decrement attempt %d failed: %v", i, err)
		}
		wins += affected
	}
	if wins != 5 {
		t.Fatalf("total wins want 5 got %d", wins)
	}

	var got models.LuckyDrawPrize
	if err := db.First(&got, prize.ID).Error; err != nil {
		t.Fatalf("reload prize failed: %v", err)
	}
	if got.RemainingQuantity != 0 {
		t.Fatalf("remaining want 0 got %d", got.RemainingQuantity)
	}
}

func TestTryDecrementRejectsInvalidID(t *testing.T) {
	repo, _ := setupPrizeRepositoryTest(t)
	if _, err := repo.TryDecrement(0); err == nil {
		t.Fatalf("expect error for zero prize id")
	}
}
