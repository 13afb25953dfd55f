package repository

import (
	"testing"

	"github.com/loopiify-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupLoyaltyCardRepositoryTest(t *testing.T) (*GormLoyaltyCardRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.LoyaltyCard{}); err != nil {
		t.Fatalf("migrate loyalty card failed: %v", err)
	}
	return NewLoyaltyCardRepository(db), db
}

func TestGetOrCreateReturnsSameCard(t *testing.T) {
	repo, _ := setupLoyaltyCardRepositoryTest(t)

	first, err := repo.GetOrCreate(1, 100)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if first.Stamps != 0 || first.Points != 0 {
		t.Fatalf("new card should start empty, got stamps=%d points=%d", first.Stamps, first.Points)
	}

	second, err := repo.GetOrCreate(1, 100)
	if err != nil {
		t.Fatalf("get or create again failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expect same card id, want %d got %d", first.ID, second.ID)
	}

	other, err := repo.GetOrCreate(2, 100)
	if err != nil {
		t.Fatalf("get or create other store failed: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("cards must be scoped per store")
	}
}

func TestIncrementStampsAndAddPoints(t *testing.T) {
	repo, db := setupLoyaltyCardRepositoryTest(t)
	card, err := repo.GetOrCreate(3, 200)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}

	if err := repo.IncrementStamps(card.ID, 1); err != nil {
		t.Fatalf("increment stamps failed: %v", err)
	}
	if err := repo.IncrementStamps(card.ID, 1); err != nil {
		t.Fatalf("increment stamps twice failed: %v", err)
	}
	if err := repo.AddPoints(card.ID, 45); err != nil {
		t.Fatalf("add points failed: %v", err)
	}

	var got models.LoyaltyCard
	if err := db.First(&got, card.ID).Error; err != nil {
		t.Fatalf("reload card failed: %v", err)
	}
	if got.Stamps != 2 {
		t.Fatalf("stamps want 2 got %d", got.Stamps)
	}
	if got.Points != 45 {
		t.Fatalf("points want 45 got %d", got.Points)
	}

	if err := repo.IncrementStamps(card.ID, 0); err == nil {
		t.Fatalf("expect error for non-positive stamp delta")
	}
	if err := repo.AddPoints(card.ID, -1); err == nil {
		t.Fatalf("expect error for negative points delta")
	}
}
