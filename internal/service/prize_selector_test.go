package service

import (
	"errors"
	"testing"

	"github.com/loopiify-next/internal/models"
)

func makePrizes(specs ...[2]float64) []models.LuckyDrawPrize {
	prizes := make([]models.LuckyDrawPrize, 0, len(specs))
	for i, item := range specs {
		prizes = append(prizes, models.LuckyDrawPrize{
			ID:                uint(i + 1),
			Name:              "prize",
			RemainingQuantity: int(item[0]),
			Probability:       item[1],
		})
	}
	return prizes
}

func TestSelectPrizePicksByCumulativeInterval(t *testing.T) {
	prizes := makePrizes([2]float64{5, 10}, [2]float64{5, 30}, [2]float64{5, 60})

	cases := []struct {
		roll   float64
		wantID uint
	}{
		{0, 1},
		{10, 1},
		{10.5, 2},
		{40, 2},
		{40.5, 3},
		{99.9, 3},
	}
	for _, c := range cases {
		prize, err := SelectPrize(prizes, c.roll)
		if err != nil {
			t.Fatalf("roll=%v select failed: %v", c.roll, err)
		}
		if prize.ID != c.wantID {
			t.Fatalf("roll=%v want prize %d got %d", c.roll, c.wantID, prize.ID)
		}
	}
}

func TestSelectPrizeSkipsExhaustedIntervals(t *testing.T) {
	// 第一个奖品已抽干，它的区间让位给后面的奖品
	prizes := makePrizes([2]float64{0, 50}, [2]float64{5, 30}, [2]float64{5, 20})

	prize, err := SelectPrize(prizes, 25)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if prize.ID != 2 {
		t.Fatalf("want prize 2 got %d", prize.ID)
	}

	prize, err = SelectPrize(prizes, 45)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if prize.ID != 3 {
		t.Fatalf("want prize 3 got %d", prize.ID)
	}
}

func TestSelectPrizeFallsBackToLastPrize(t *testing.T) {
	// 前面的区间收缩后高位的 roll 落空，回退到最后一个奖品
	prizes := makePrizes([2]float64{0, 50}, [2]float64{5, 30}, [2]float64{5, 20})

	prize, err := SelectPrize(prizes, 90)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if prize.ID != 3 {
		t.Fatalf("fallback want last prize got %d", prize.ID)
	}
}

func TestSelectPrizeRejectsExhaustedFallback(t *testing.T) {
	// 回退对象也抽干时整体判定奖池售罄
	prizes := makePrizes([2]float64{5, 50}, [2]float64{0, 50})

	if _, err := SelectPrize(prizes, 99); !errors.Is(err, ErrPrizesExhausted) {
		t.Fatalf("want ErrPrizesExhausted got %v", err)
	}
}

func TestSelectPrizeRejectsEmptyConfig(t *testing.T) {
	if _, err := SelectPrize(nil, 10); !errors.Is(err, ErrPrizeConfigInvalid) {
		t.Fatalf("want ErrPrizeConfigInvalid got %v", err)
	}
}
