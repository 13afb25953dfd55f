package service

import (
	"errors"
	"testing"

	"github.com/loopiify-next/internal/models"

	"github.com/shopspring/decimal"
)

func (env *serviceTestEnv) newCampaignService() *CampaignService {
	return NewCampaignService(env.campaignRepo, env.entryRepo)
}

func TestCampaignCreateValidatesProbabilities(t *testing.T) {
	env := setupServiceTest(t)
	store := env.createStore(t, "campaign-validate")
	svc := env.newCampaignService()

	base := CampaignCreateInput{
		StoreID:  store.ID,
		Name:     "开业抽奖",
		MinSpend: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
	}

	input := base
	input.Prizes = []CampaignPrizeInput{
		{Name: "一等奖", Quantity: 1, Probability: 50},
		{Name: "二等奖", Quantity: 10, Probability: 40},
	}
	if _, err := svc.Create(input); !errors.Is(err, ErrProbabilityInvalid) {
		t.Fatalf("sum 90 want ErrProbabilityInvalid got %v", err)
	}

	input.Prizes = []CampaignPrizeInput{
		{Name: "一等奖", Quantity: 1, Probability: 50.005},
		{Name: "二等奖", Quantity: 10, Probability: 50},
	}
	campaign, err := svc.Create(input)
	if err != nil {
		t.Fatalf("sum within tolerance must pass: %v", err)
	}
	if len(campaign.Prizes) != 2 {
		t.Fatalf("prizes want 2 got %d", len(campaign.Prizes))
	}
	for _, prize := range campaign.Prizes {
		if prize.RemainingQuantity != prize.Quantity {
			t.Fatalf("remaining must equal quantity at creation")
		}
	}

	input.Prizes = []CampaignPrizeInput{{Name: "零库存", Quantity: 0, Probability: 100}}
	if _, err := svc.Create(input); !errors.Is(err, ErrPrizeConfigInvalid) {
		t.Fatalf("zero quantity want ErrPrizeConfigInvalid got %v", err)
	}

	input.Prizes = nil
	if _, err := svc.Create(input); !errors.Is(err, ErrPrizeConfigInvalid) {
		t.Fatalf("no prizes want ErrPrizeConfigInvalid got %v", err)
	}
}

func TestCampaignEndIsOneWay(t *testing.T) {
	env := setupServiceTest(t)
	store := env.createStore(t, "campaign-end")
	svc := env.newCampaignService()

	campaign, err := svc.Create(CampaignCreateInput{
		StoreID: store.ID,
		Name:    "限时抽奖",
		Prizes:  []CampaignPrizeInput{{Name: "奖品", Quantity: 1, Probability: 100}},
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}

	if err := svc.End(campaign.ID); err != nil {
		t.Fatalf("end campaign failed: %v", err)
	}
	got, err := svc.Get(campaign.ID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if !got.IsEnded || got.EndDate == nil {
		t.Fatalf("campaign should be ended with end date set")
	}

	if err := svc.End(campaign.ID); !errors.Is(err, ErrCampaignEnded) {
		t.Fatalf("re-end want ErrCampaignEnded got %v", err)
	}

	if err := svc.End(9999); !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("missing campaign want ErrCampaignNotFound got %v", err)
	}
}
