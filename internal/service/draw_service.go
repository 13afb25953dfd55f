package service

import (
	"context"
	"math/rand"
	"strings"

	"github.com/loopiify-next/internal/constants"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/repository"

	"gorm.io/gorm"
)

// DrawResult 一次成功抽奖的结果
type DrawResult struct {
	Campaign *models.LuckyDrawCampaign `json:"campaign"`
	Winner   models.Customer           `json:"winner"`
	Prize    models.LuckyDrawPrize     `json:"prize"`
	Entry    models.LuckyDrawEntry     `json:"entry"`
	Message  string                    `json:"message"`
}

// DrawService 抽奖服务
type DrawService struct {
	campaignRepo    repository.CampaignRepository
	customerRepo    repository.CustomerRepository
	prizeRepo       repository.PrizeRepository
	entryRepo       repository.EntryRepository
	notificationSvc *NotificationService

	rollPrize  func() float64 // 返回 [0, 100) 的随机数
	pickWinner func(n int) int
}

// NewDrawService 创建抽奖服务
func NewDrawService(
	campaignRepo repository.CampaignRepository,
	customerRepo repository.CustomerRepository,
	prizeRepo repository.PrizeRepository,
	entryRepo repository.EntryRepository,
	notificationSvc *NotificationService,
) *DrawService {
	return &DrawService{
		campaignRepo:    campaignRepo,
		customerRepo:    customerRepo,
		prizeRepo:       prizeRepo,
		entryRepo:       entryRepo,
		notificationSvc: notificationSvc,
		rollPrize:       func() float64 { return rand.Float64() * 100 },
		pickWinner:      rand.Intn,
	}
}

// RunDraw 执行一次抽奖。
// 中奖人从满足最低累计消费的顾客中等概率抽取，奖品按概率区间选择；
// 库存扣减与抽奖记录写入在同一事务内，通知在事务提交后尽力投递。
func (s *DrawService) RunDraw(ctx context.Context, campaignID uint) (*DrawResult, error) {
	campaign, err := s.campaignRepo.GetWithPrizes(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.IsEnded {
		return nil, ErrCampaignEnded
	}
	if len(campaign.Prizes) == 0 {
		return nil, ErrPrizeConfigInvalid
	}

	eligible, err := s.customerRepo.ListEligible(campaign.StoreID, campaign.MinSpend)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleCustomers
	}
	winner := eligible[s.pickWinner(len(eligible))]

	prize, err := SelectPrize(campaign.Prizes, s.rollPrize())
	if err != nil {
		return nil, err
	}

	entry := models.LuckyDrawEntry{
		CampaignID: campaign.ID,
		CustomerID: winner.ID,
		PrizeID:    prize.ID,
		IsWinner:   true,
	}
	err = s.prizeRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.prizeRepo.WithTx(tx).TryDecrement(prize.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrPrizesExhausted
		}
		return s.entryRepo.WithTx(tx).Create(&entry)
	})
	if err != nil {
		return nil, err
	}
	prize.RemainingQuantity--

	message := s.notifyWinner(ctx, campaign, &winner, prize)

	logger.Infow("lucky_draw_completed",
		"campaign_id", campaign.ID,
		"store_id", campaign.StoreID,
		"customer_id", winner.ID,
		"prize_id", prize.ID,
		"prize_remaining", prize.RemainingQuantity,
	)
	return &DrawResult{
		Campaign: campaign,
		Winner:   winner,
		Prize:    *prize,
		Entry:    entry,
		Message:  message,
	}, nil
}

// notifyWinner 渲染并投递中奖通知，失败只记录告警不影响抽奖结果
func (s *DrawService) notifyWinner(ctx context.Context, campaign *models.LuckyDrawCampaign, winner *models.Customer, prize *models.LuckyDrawPrize) string {
	template := strings.TrimSpace(campaign.WinnerMessage)
	if template == "" {
		template = DefaultWinnerMessage
	}
	vars := CustomerTemplateVars(winner)
	vars["prize_name"] = prize.Name
	message := RenderMessageTemplate(template, vars)

	if s.notificationSvc == nil {
		return message
	}
	if err := s.notificationSvc.NotifyCustomer(ctx, constants.NotificationEventDrawWinner, campaign.StoreID, winner.ID, message); err != nil {
		logger.Warnw("draw_winner_notify_failed",
			"campaign_id", campaign.ID,
			"customer_id", winner.ID,
			"error", err,
		)
	}
	return message
}
